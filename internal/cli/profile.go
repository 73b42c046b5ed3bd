package cli

import (
	"context"

	"iate-log/internal/models"
	"iate-log/internal/service"
	"iate-log/internal/units"
)

type ProfileCmd struct {
	Show  ProfileShowCmd  `cmd:"" help:"Show the profile and its energy estimates." default:"1"`
	Set   ProfileSetCmd   `cmd:"" help:"Update the profile. Omitted flags keep their value."`
	Reset ProfileResetCmd `cmd:"" help:"Forget the profile and go back to the default."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	p, err := svc.Profile(context.Background())
	if err != nil {
		return err
	}
	printProfile(ctx, p)
	return nil
}

type ProfileSetCmd struct {
	Metric   bool    `help:"Use centimetres and kilograms." xor:"units"`
	Imperial bool    `help:"Use inches and pounds." xor:"units"`
	Age      int     `help:"Age in years."`
	Gender   string  `enum:",Male,Female" default:"" help:"Male or Female."`
	Height   float64 `help:"Height in the profile's units."`
	Weight   float64 `help:"Weight in the profile's units."`
	Activity string  `enum:",Sedentary,Light Exercise,Moderate Exercise,Active,Very Active" default:"" help:"Activity level."`
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	cur, err := svc.Profile(context.Background())
	if err != nil {
		return err
	}

	in := c.merge(cur)
	p, err := svc.SaveProfile(context.Background(), in)
	if err != nil {
		return err
	}
	printProfile(ctx, p)
	return nil
}

// merge starts from the current profile, re-expressed in the requested
// units, and applies the flags that were given.
func (c *ProfileSetCmd) merge(cur models.UserProfile) service.ProfileInput {
	in := service.ProfileInput{
		UsesMetricUnits: cur.UsesMetricUnits,
		Age:             cur.Age,
		Gender:          cur.Gender,
		ActivityLevel:   cur.ActivityLevel,
	}
	switch {
	case c.Metric:
		in.UsesMetricUnits = true
	case c.Imperial:
		in.UsesMetricUnits = false
	}
	in.Height, in.Weight = units.FromMetric(cur.HeightCm, cur.WeightKg, in.UsesMetricUnits)

	if c.Age != 0 {
		in.Age = c.Age
	}
	if c.Gender != "" {
		in.Gender = models.Gender(c.Gender)
	}
	if c.Height != 0 {
		in.Height = c.Height
	}
	if c.Weight != 0 {
		in.Weight = c.Weight
	}
	if c.Activity != "" {
		in.ActivityLevel = models.ActivityLevel(c.Activity)
	}
	return in
}

type ProfileResetCmd struct{}

func (c *ProfileResetCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	p, err := svc.ResetProfile(context.Background())
	if err != nil {
		return err
	}
	printProfile(ctx, p)
	return nil
}

func printProfile(ctx *Context, p models.UserProfile) {
	v := service.View(p)
	ctx.printf("Age:      %d\n", v.Age)
	ctx.printf("Gender:   %s\n", v.Gender)
	ctx.printf("Height:   %d %s\n", units.Truncate(v.Height), v.HeightUnit)
	ctx.printf("Weight:   %d %s\n", units.Truncate(v.Weight), v.WeightUnit)
	ctx.printf("Activity: %s\n", v.ActivityLevel)
	ctx.printf("BMR:      %d kcal/day\n", v.BMR)
	ctx.printf("TDEE:     %d kcal/day\n", v.TDEE)
}
