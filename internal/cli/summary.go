package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"iate-log/internal/models"
	"iate-log/internal/units"
)

type SummaryCmd struct {
	Period string `arg:"" optional:"" enum:"day,week,month,year" default:"day" help:"day, week, month or year."`
	Date   string `help:"Reference day (YYYY-MM-DD). Defaults to today."`
	Chart  bool   `help:"Also print the per-day or per-month bars."`
}

func (c *SummaryCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	r, err := svc.Summary(context.Background(), models.Period(c.Period), c.Date)
	if err != nil {
		return err
	}

	s := r.Summary
	if r.From == r.To {
		ctx.printf("Summary for %s\n", r.From)
	} else {
		ctx.printf("Summary for %s to %s\n", r.From, r.To)
	}
	ctx.printf("  Calories: %d of %d kcal\n", s.TotalCalories, s.TargetCalories)
	ctx.printf("  Deficit:  %d kcal\n", s.DeficitOrSurplus)
	ctx.printf("  Estimate: %.2f kg %s\n", units.Round2(s.EstimatedWeightChangeKg), r.Label)

	if !c.Chart {
		return nil
	}
	ctx.printf("\n")
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BUCKET\tLOGGED\tCOUNTED\tTARGET\t")
	for _, b := range r.Buckets {
		mark := ""
		if b.Imputed {
			mark = "imputed"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", b.Label, b.Logged, b.Effective, b.Target, mark)
	}
	return tw.Flush()
}
