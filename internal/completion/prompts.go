package completion

import "fmt"

const (
	FormatJSON = "json"
	FormatText = "text"
)

const expertPreamble = `You are a GPT model trained in nutrition. You know how many kcal are in basic foods,
and can also calculate an approximate number of calories for any meal from a text description or a picture.
Take everything into account: the wording, kcal per gram, what the ingredients could be, how many grams
there are in total and what the kcal per 100 g should be, then do the math.`

const jsonContract = `Your task is to extract:
1. The name of the meal.
2. The calorie content (kcal) of the meal, as accurately as possible.
3. The approximate weight of the food (grams), as accurately as possible.

Respond only with a valid JSON object in this exact format:

{
    "foodName": "example",
    "foodCalories": 0,
    "foodWeight": 0
}

If the nutritional values cannot be determined, respond with:

{
    "foodName": "Unknown",
    "foodCalories": 0,
    "foodWeight": 0
}

Do not include any Markdown formatting like ` + "```" + ` or any explanatory text. The response must be raw JSON, nothing else.`

const textContract = `Your response should only be in the following format:
Food Name: [meal name]
Calories: [calorie count] kcal
Grams: [weight in grams] g
Provide the meal name, its calorie content, and estimated weight in grams in the format above.`

// TextPrompt builds the prompt for a typed meal description.
func TextPrompt(description, format string) string {
	if format == FormatText {
		return fmt.Sprintf("%s\nGiven the food description %q, estimate the meal.\n%s", expertPreamble, description, textContract)
	}
	return fmt.Sprintf("%s\nAnalyze the food description: %s\n%s", expertPreamble, description, jsonContract)
}

// ImagePrompt accompanies a photo. Photos always use the JSON contract.
func ImagePrompt() string {
	return fmt.Sprintf("%s\nAnalyze the image attached.\n%s", expertPreamble, jsonContract)
}
