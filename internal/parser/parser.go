// Package parser turns completion-service output into meal fields. It accepts
// the JSON contract ({"foodName","foodCalories","foodWeight"}) and the older
// three-line "Label: value" contract.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"iate-log/internal/models"
)

// ParseError reports model output that could not be turned into a meal.
type ParseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse model response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(raw, reason string, err error) *ParseError {
	return &ParseError{Raw: raw, Reason: reason, Err: err}
}

// Parse detects the response shape and decodes it.
func Parse(raw string) (models.MealFields, error) {
	body := StripCodeFence(raw)
	if strings.HasPrefix(body, "{") {
		return ParseJSON(raw)
	}
	return ParseLines(raw)
}

type foodJSON struct {
	FoodName     *string `json:"foodName"`
	FoodCalories *int    `json:"foodCalories"`
	FoodWeight   *int    `json:"foodWeight"`
}

// ParseJSON decodes the JSON contract. Missing numbers become 0 and a missing
// or empty name becomes models.UnknownFood.
func ParseJSON(raw string) (models.MealFields, error) {
	body := StripCodeFence(raw)
	if body == "" {
		return models.MealFields{}, newParseError(raw, "empty response", nil)
	}

	var food foodJSON
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(&food); err != nil {
		return models.MealFields{}, newParseError(raw, "invalid JSON", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return models.MealFields{}, newParseError(raw, "trailing data after JSON object", nil)
	}

	fields := models.MealFields{Name: models.UnknownFood}
	if food.FoodName != nil && strings.TrimSpace(*food.FoodName) != "" {
		fields.Name = strings.TrimSpace(*food.FoodName)
	}
	if food.FoodCalories != nil {
		fields.Calories = *food.FoodCalories
	}
	if food.FoodWeight != nil {
		fields.Grams = *food.FoodWeight
	}
	if err := checkNonNegative(raw, fields); err != nil {
		return models.MealFields{}, err
	}
	return fields, nil
}

// ParseLines decodes the line contract:
//
//	Food Name: Chicken salad
//	Calories: 450 kcal
//	Grams: 300 g
func ParseLines(raw string) (models.MealFields, error) {
	var lines []string
	for _, line := range strings.Split(StripCodeFence(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 3 {
		return models.MealFields{}, newParseError(raw, fmt.Sprintf("expected 3 lines, got %d", len(lines)), nil)
	}

	values := make([]string, 3)
	for i, line := range lines[:3] {
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			return models.MealFields{}, newParseError(raw, fmt.Sprintf("line %d has no colon", i+1), nil)
		}
		values[i] = strings.TrimSpace(value)
	}

	calories, err := leadingInt(values[1])
	if err != nil {
		return models.MealFields{}, newParseError(raw, "calories is not an integer", err)
	}
	grams, err := leadingInt(values[2])
	if err != nil {
		return models.MealFields{}, newParseError(raw, "grams is not an integer", err)
	}

	fields := models.MealFields{Name: values[0], Calories: calories, Grams: grams}
	if fields.Name == "" {
		fields.Name = models.UnknownFood
	}
	if err := checkNonNegative(raw, fields); err != nil {
		return models.MealFields{}, err
	}
	return fields, nil
}

// StripCodeFence removes a surrounding Markdown fence such as ```json ... ```.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			// Anything on the opening fence line is a language tag.
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "json")
		}
		s = strings.TrimSpace(s)
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func leadingInt(value string) (int, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.Atoi(fields[0])
}

func checkNonNegative(raw string, f models.MealFields) error {
	if f.Calories < 0 {
		return newParseError(raw, fmt.Sprintf("negative calories %d", f.Calories), nil)
	}
	if f.Grams < 0 {
		return newParseError(raw, fmt.Sprintf("negative grams %d", f.Grams), nil)
	}
	return nil
}
