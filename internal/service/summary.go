package service

import (
	"context"

	"iate-log/internal/models"
	"iate-log/internal/summary"
)

// Summary builds the report for period around date (today when empty).
func (s *Service) Summary(ctx context.Context, period models.Period, date string) (summary.Report, error) {
	if _, err := models.ParsePeriod(string(period)); err != nil {
		return summary.Report{}, invalidf("%v", err)
	}
	date, err := s.resolveDate(date)
	if err != nil {
		return summary.Report{}, err
	}
	today, _ := models.ParseDate(date)

	from, to := summary.Range(period, today)
	records, err := s.store.MealsInRange(ctx, models.FormatDate(from), models.FormatDate(to))
	if err != nil {
		s.log.Error("load meals for summary failed", "kind", Kind(err), "err", err)
		return summary.Report{}, err
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return summary.Report{}, err
	}
	return summary.BuildSummary(records, profile, period, today), nil
}

// publish pushes the rebuilt day report for date to the notifier, if any.
func (s *Service) publish(ctx context.Context, date string) {
	if s.notifier == nil {
		return
	}
	report, err := s.Summary(ctx, models.PeriodDay, date)
	if err != nil {
		s.log.Warn("summary refresh skipped", "kind", Kind(err), "err", err)
		return
	}
	s.notifier.Publish(report)
}
