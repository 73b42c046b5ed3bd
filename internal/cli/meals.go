package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"iate-log/internal/models"
)

type LogCmd struct {
	Description string `arg:"" help:"What you ate, in your own words."`
	Date        string `help:"Day the meal was eaten (YYYY-MM-DD). Defaults to today."`
}

func (c *LogCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	meal, err := svc.AddMealFromText(context.Background(), c.Description, c.Date)
	if err != nil {
		return err
	}
	printMeal(ctx, meal)
	return nil
}

type PhotoCmd struct {
	Path string `arg:"" type:"existingfile" help:"JPEG photo of the meal."`
	Date string `help:"Day the meal was eaten (YYYY-MM-DD). Defaults to today."`
}

func (c *PhotoCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	meal, err := svc.AddMealFromImage(context.Background(), data, c.Date)
	if err != nil {
		return err
	}
	printMeal(ctx, meal)
	return nil
}

func printMeal(ctx *Context, m *models.MealRecord) {
	ctx.printf("Logged %s: %d kcal, %d g on %s (id %s)\n", m.Name, m.Calories, m.Grams, m.Date, m.ID)
}

type MealsCmd struct {
	Date string `help:"Day to list (YYYY-MM-DD). Defaults to today."`
	From string `help:"First day of a range (YYYY-MM-DD)." and:"range"`
	To   string `help:"Last day of a range (YYYY-MM-DD)." and:"range"`
	JSON bool   `name:"json" help:"Print JSON instead of a table."`
}

func (c *MealsCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	var meals []models.MealRecord
	if c.From != "" || c.To != "" {
		meals, err = svc.MealsInRange(context.Background(), c.From, c.To)
	} else {
		meals, err = svc.Meals(context.Background(), c.Date)
	}
	if err != nil {
		return err
	}

	if c.JSON {
		if meals == nil {
			meals = []models.MealRecord{}
		}
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(meals)
	}

	if len(meals) == 0 {
		ctx.printf("No meals logged.\n")
		return nil
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tNAME\tKCAL\tGRAMS\tID")
	total := 0
	for _, m := range meals {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", m.Date, m.Name, m.Calories, m.Grams, m.ID)
		total += m.Calories
	}
	fmt.Fprintf(tw, "\tTotal\t%d\t\t\n", total)
	return tw.Flush()
}

type DeleteCmd struct {
	ID string `arg:"" help:"ID of the meal to delete."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.DeleteMeal(context.Background(), c.ID); err != nil {
		return err
	}
	ctx.printf("Deleted meal %s\n", c.ID)
	return nil
}

type ClearCmd struct {
	Yes bool `short:"y" help:"Confirm deleting every logged meal."`
}

func (c *ClearCmd) Run(ctx *Context) error {
	if !c.Yes {
		return fmt.Errorf("refusing to clear the food log without --yes")
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.ClearMeals(context.Background()); err != nil {
		return err
	}
	ctx.printf("Food log cleared.\n")
	return nil
}
