package models

import "fmt"

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

type PeriodSummary struct {
	TotalCalories           int     `json:"total_calories"`
	TargetCalories          int     `json:"target_calories"`
	DeficitOrSurplus        int     `json:"deficit_or_surplus"`
	EstimatedWeightChangeKg float64 `json:"estimated_weight_change_kg"`
}
