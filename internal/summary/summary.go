// Package summary aggregates dated meal records into period summaries.
//
// Week, month and year views impute unlogged days: a day with no calories
// logged counts as eaten exactly at the daily target. The day view does not
// impute. No function here returns an error; degenerate input produces a
// degenerate summary.
package summary

import (
	"math"
	"time"

	"iate-log/internal/energy"
	"iate-log/internal/models"
)

const (
	LabelLost   = "weight lost"
	LabelGained = "weight gained"
)

// Bucket is one bar of a period chart.
type Bucket struct {
	Label     string `json:"label"`
	Logged    int    `json:"logged"`
	Effective int    `json:"effective"`
	Target    int    `json:"target"`
	Imputed   bool   `json:"imputed"`
}

type Report struct {
	Period      models.Period        `json:"period"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	DailyTarget int                  `json:"daily_target"`
	Summary     models.PeriodSummary `json:"summary"`
	Label       string               `json:"label"`
	Buckets     []Bucket             `json:"buckets"`
}

// Summarize totals records over a period of periodLengthDays days, imputing
// targetDailyCalories for every day without a positive logged total.
func Summarize(records []models.MealRecord, targetDailyCalories, periodLengthDays int) models.PeriodSummary {
	logged, loggedDays := 0, 0
	for _, c := range dailyTotals(records) {
		if c > 0 {
			logged += c
			loggedDays++
		}
	}
	imputedDays := periodLengthDays - loggedDays
	if imputedDays < 0 {
		imputedDays = 0
	}
	return newSummary(logged+imputedDays*targetDailyCalories, targetDailyCalories*periodLengthDays)
}

// SummarizeDay totals a single day's records without imputation.
func SummarizeDay(records []models.MealRecord, targetDailyCalories int) models.PeriodSummary {
	total := 0
	for _, r := range records {
		total += r.Calories
	}
	return newSummary(total, targetDailyCalories)
}

// SummarizeRange buckets records by calendar day over the inclusive range
// [from, to]. Records outside the range are ignored.
func SummarizeRange(records []models.MealRecord, targetDailyCalories int, from, to time.Time) (models.PeriodSummary, []Bucket) {
	totals := dailyTotals(records)

	var buckets []Bucket
	total, days := 0, 0
	for d := midnight(from); !d.After(midnight(to)); d = d.AddDate(0, 0, 1) {
		key := models.FormatDate(d)
		b := Bucket{Label: key, Logged: totals[key], Target: targetDailyCalories}
		b.Effective, b.Imputed = effective(b.Logged, targetDailyCalories)
		buckets = append(buckets, b)
		total += b.Effective
		days++
	}
	return newSummary(total, targetDailyCalories*days), buckets
}

// Label names the direction of the estimated weight change. A zero deficit
// counts as lost.
func Label(deficitOrSurplus int) string {
	if deficitOrSurplus < 0 {
		return LabelGained
	}
	return LabelLost
}

// BuildSummary combines the records and the profile into the report for
// period around today. It is called again whenever either input changes.
func BuildSummary(records []models.MealRecord, profile models.UserProfile, period models.Period, today time.Time) Report {
	from, to := Range(period, today)
	target := profile.TDEE
	inRange := filterRange(records, from, to)

	r := Report{
		Period:      period,
		From:        models.FormatDate(from),
		To:          models.FormatDate(to),
		DailyTarget: target,
	}

	switch period {
	case models.PeriodWeek, models.PeriodMonth:
		r.Summary, r.Buckets = SummarizeRange(inRange, target, from, to)
	case models.PeriodYear:
		r.Summary, _ = SummarizeRange(inRange, target, from, to)
		r.Buckets = monthBuckets(inRange, target, from.Year())
	default:
		r.Period = models.PeriodDay
		r.Summary = SummarizeDay(inRange, target)
		logged := r.Summary.TotalCalories
		r.Buckets = []Bucket{{Label: r.From, Logged: logged, Effective: logged, Target: target}}
	}
	r.Label = Label(r.Summary.DeficitOrSurplus)
	return r
}

// Range returns the inclusive calendar range shown for period:
// the day itself, today±3 days, the current month or the current year.
func Range(period models.Period, today time.Time) (from, to time.Time) {
	d := midnight(today)
	switch period {
	case models.PeriodWeek:
		return d.AddDate(0, 0, -3), d.AddDate(0, 0, 3)
	case models.PeriodMonth:
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		return first, first.AddDate(0, 1, -1)
	case models.PeriodYear:
		return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, d.Location()),
			time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, d.Location())
	default:
		return d, d
	}
}

// monthBuckets groups a year by month. A month with no entries at all is
// imputed at target for each of its days.
func monthBuckets(records []models.MealRecord, target, year int) []Bucket {
	logged := make([]int, 12)
	hasEntries := make([]bool, 12)
	for _, r := range records {
		t, err := models.ParseDate(r.Date)
		if err != nil || t.Year() != year {
			continue
		}
		logged[t.Month()-1] += r.Calories
		hasEntries[t.Month()-1] = true
	}

	buckets := make([]Bucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		monthTarget := target * daysIn(year, m)
		b := Bucket{
			Label:     time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Logged:    logged[m-1],
			Effective: logged[m-1],
			Target:    monthTarget,
		}
		if !hasEntries[m-1] {
			b.Effective, b.Imputed = monthTarget, true
		}
		buckets = append(buckets, b)
	}
	return buckets
}

func newSummary(total, target int) models.PeriodSummary {
	deficit := target - total
	return models.PeriodSummary{
		TotalCalories:           total,
		TargetCalories:          target,
		DeficitOrSurplus:        deficit,
		EstimatedWeightChangeKg: math.Abs(float64(deficit)) / energy.KcalPerKg,
	}
}

func effective(logged, target int) (int, bool) {
	if logged > 0 {
		return logged, false
	}
	return target, true
}

func dailyTotals(records []models.MealRecord) map[string]int {
	totals := make(map[string]int)
	for _, r := range records {
		totals[r.Date] += r.Calories
	}
	return totals
}

func filterRange(records []models.MealRecord, from, to time.Time) []models.MealRecord {
	lo, hi := models.FormatDate(from), models.FormatDate(to)
	var out []models.MealRecord
	for _, r := range records {
		if r.Date >= lo && r.Date <= hi {
			out = append(out, r)
		}
	}
	return out
}

// midnight keeps t's calendar day and moves it to UTC, where every day has
// a midnight and AddDate steps exactly one day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
