package summary

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"iate-log/internal/models"
)

func meal(date string, calories int) models.MealRecord {
	return models.MealRecord{ID: date + "-" + time.Now().String(), Name: "meal", Calories: calories, Date: date}
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestSummarize_EmptyWeekIsFullyImputed(t *testing.T) {
	got := Summarize(nil, 2000, 7)
	require.Equal(t, models.PeriodSummary{
		TotalCalories:           14000,
		TargetCalories:          14000,
		DeficitOrSurplus:        0,
		EstimatedWeightChangeKg: 0,
	}, got)
	require.Equal(t, LabelLost, Label(got.DeficitOrSurplus))
}

func TestSummarize_SingleDay(t *testing.T) {
	got := Summarize([]models.MealRecord{meal("2026-10-19", 500)}, 2000, 1)
	require.Equal(t, 500, got.TotalCalories)
	require.Equal(t, 2000, got.TargetCalories)
	require.Equal(t, 1500, got.DeficitOrSurplus)
	require.InDelta(t, 0.1948, got.EstimatedWeightChangeKg, 0.0001)
	require.Equal(t, LabelLost, Label(got.DeficitOrSurplus))
}

func TestSummarize_Imputation(t *testing.T) {
	records := []models.MealRecord{
		meal("2026-10-13", 1500),
		meal("2026-10-13", 1000),
		meal("2026-10-14", 1800),
		meal("2026-10-15", 0),
	}
	got := Summarize(records, 2000, 7)

	// Two logged days (2500 + 1800), five imputed days including the zero-calorie one.
	require.Equal(t, 2500+1800+5*2000, got.TotalCalories)
	require.Equal(t, 14000, got.TargetCalories)
	require.Equal(t, -300, got.DeficitOrSurplus)
	require.InDelta(t, 300.0/7700, got.EstimatedWeightChangeKg, 1e-12)
	require.Equal(t, LabelGained, Label(got.DeficitOrSurplus))
}

func TestSummarize_MoreLoggedDaysThanPeriod(t *testing.T) {
	records := []models.MealRecord{meal("2026-10-01", 100), meal("2026-10-02", 100), meal("2026-10-03", 100)}
	got := Summarize(records, 2000, 2)
	require.Equal(t, 300, got.TotalCalories)
	require.Equal(t, 4000, got.TargetCalories)
}

func TestSummarize_ZeroLengthPeriod(t *testing.T) {
	got := Summarize(nil, 2000, 0)
	require.Equal(t, models.PeriodSummary{}, got)
}

func TestSummarizeDay_NoImputation(t *testing.T) {
	got := SummarizeDay(nil, 2000)
	require.Equal(t, 0, got.TotalCalories)
	require.Equal(t, 2000, got.DeficitOrSurplus)

	got = SummarizeDay([]models.MealRecord{meal("2026-10-19", 1200), meal("2026-10-19", 1300)}, 2000)
	require.Equal(t, 2500, got.TotalCalories)
	require.Equal(t, -500, got.DeficitOrSurplus)
	require.Equal(t, LabelGained, Label(got.DeficitOrSurplus))
}

func TestLabel(t *testing.T) {
	require.Equal(t, LabelLost, Label(1))
	require.Equal(t, LabelLost, Label(0), "an exact match counts as lost")
	require.Equal(t, LabelGained, Label(-1))
}

func TestSummarizeRange(t *testing.T) {
	records := []models.MealRecord{
		meal("2026-10-16", 2400),
		meal("2026-10-18", 900),
		meal("2026-10-18", 600),
		meal("2026-10-30", 5000), // outside
	}
	from, to := day(t, "2026-10-16"), day(t, "2026-10-22")

	got, buckets := SummarizeRange(records, 2000, from, to)
	require.Len(t, buckets, 7)
	require.Equal(t, Bucket{Label: "2026-10-16", Logged: 2400, Effective: 2400, Target: 2000}, buckets[0])
	require.Equal(t, Bucket{Label: "2026-10-17", Logged: 0, Effective: 2000, Target: 2000, Imputed: true}, buckets[1])
	require.Equal(t, Bucket{Label: "2026-10-18", Logged: 1500, Effective: 1500, Target: 2000}, buckets[2])

	require.Equal(t, 2400+1500+5*2000, got.TotalCalories)
	require.Equal(t, 14000, got.TargetCalories)
	require.Equal(t, 100, got.DeficitOrSurplus)

	inRange := filterRange(records, from, to)
	require.Equal(t, Summarize(inRange, 2000, 7), got)
}

func TestRange(t *testing.T) {
	today := time.Date(2024, time.February, 10, 18, 45, 0, 0, time.Local)

	tests := []struct {
		period   models.Period
		from, to string
	}{
		{models.PeriodDay, "2024-02-10", "2024-02-10"},
		{models.PeriodWeek, "2024-02-07", "2024-02-13"},
		{models.PeriodMonth, "2024-02-01", "2024-02-29"},
		{models.PeriodYear, "2024-01-01", "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			from, to := Range(tt.period, today)
			require.Equal(t, tt.from, models.FormatDate(from))
			require.Equal(t, tt.to, models.FormatDate(to))
		})
	}

	from, to := Range(models.PeriodWeek, time.Date(2026, time.December, 30, 0, 0, 0, 0, time.Local))
	require.Equal(t, "2026-12-27", models.FormatDate(from))
	require.Equal(t, "2027-01-02", models.FormatDate(to))
}

func TestBuildSummary_Week(t *testing.T) {
	profile := models.UserProfile{TDEE: 2000}
	today := day(t, "2026-10-19")
	records := []models.MealRecord{
		meal("2026-10-15", 100), // outside [16, 22]
		meal("2026-10-16", 2500),
		meal("2026-10-19", 1000),
	}

	r := BuildSummary(records, profile, models.PeriodWeek, today)
	require.Equal(t, models.PeriodWeek, r.Period)
	require.Equal(t, "2026-10-16", r.From)
	require.Equal(t, "2026-10-22", r.To)
	require.Equal(t, 2000, r.DailyTarget)
	require.Len(t, r.Buckets, 7)
	require.Equal(t, 2500+1000+5*2000, r.Summary.TotalCalories)
	require.Equal(t, 500, r.Summary.DeficitOrSurplus)
	require.Equal(t, LabelLost, r.Label)
}

func TestBuildSummary_Day(t *testing.T) {
	profile := models.UserProfile{TDEE: 2000}
	today := day(t, "2026-10-19")

	r := BuildSummary(nil, profile, models.PeriodDay, today)
	require.Equal(t, 0, r.Summary.TotalCalories)
	require.Equal(t, 2000, r.Summary.DeficitOrSurplus)
	require.Len(t, r.Buckets, 1)

	r = BuildSummary([]models.MealRecord{meal("2026-10-19", 2600), meal("2026-10-18", 500)}, profile, models.PeriodDay, today)
	require.Equal(t, 2600, r.Summary.TotalCalories)
	require.Equal(t, -600, r.Summary.DeficitOrSurplus)
	require.Equal(t, LabelGained, r.Label)
}

func TestBuildSummary_Month(t *testing.T) {
	profile := models.UserProfile{TDEE: 1000}
	r := BuildSummary([]models.MealRecord{meal("2023-02-05", 400)}, profile, models.PeriodMonth, day(t, "2023-02-14"))

	require.Len(t, r.Buckets, 28)
	require.Equal(t, 28000, r.Summary.TargetCalories)
	require.Equal(t, 400+27*1000, r.Summary.TotalCalories)
	require.Equal(t, 600, r.Summary.DeficitOrSurplus)
}

func TestBuildSummary_Year(t *testing.T) {
	profile := models.UserProfile{TDEE: 2000}
	records := []models.MealRecord{
		meal("2024-01-01", 1500),
		meal("2024-01-02", 2500),
		meal("2024-03-15", 1000),
	}
	r := BuildSummary(records, profile, models.PeriodYear, day(t, "2024-06-01"))

	require.Equal(t, "2024-01-01", r.From)
	require.Equal(t, "2024-12-31", r.To)
	require.Equal(t, 366*2000, r.Summary.TargetCalories)
	require.Equal(t, 1500+2500+1000+363*2000, r.Summary.TotalCalories)
	require.Equal(t, 1000, r.Summary.DeficitOrSurplus)

	require.Len(t, r.Buckets, 12)
	require.Equal(t, Bucket{Label: "2024-01", Logged: 4000, Effective: 4000, Target: 62000}, r.Buckets[0])
	require.Equal(t, Bucket{Label: "2024-02", Logged: 0, Effective: 58000, Target: 58000, Imputed: true}, r.Buckets[1])
	require.Equal(t, Bucket{Label: "2024-03", Logged: 1000, Effective: 1000, Target: 62000}, r.Buckets[2])
}

func TestBuildSummary_EmptyProfileTarget(t *testing.T) {
	r := BuildSummary(nil, models.UserProfile{}, models.PeriodWeek, day(t, "2026-10-19"))
	require.Equal(t, models.PeriodSummary{}, r.Summary)
	require.Equal(t, LabelLost, r.Label)
}

// Santiago skips from 23:59:59 on 2024-09-07 straight to 01:00 on 2024-09-08.
func TestBuildSummary_MidnightDSTGap(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })

	profile := models.UserProfile{TDEE: 2000}
	records := []models.MealRecord{meal("2024-09-08", 700)}

	for _, today := range []time.Time{
		time.Date(2024, time.September, 10, 12, 0, 0, 0, loc),
		day(t, "2024-09-10"),
	} {
		for _, period := range []models.Period{models.PeriodWeek, models.PeriodMonth} {
			r := BuildSummary(records, profile, period, today)

			seen := make(map[string]bool)
			for _, b := range r.Buckets {
				require.False(t, seen[b.Label], "%s: duplicate bucket %s", period, b.Label)
				seen[b.Label] = true
			}
			require.True(t, seen["2024-09-08"], "%s: missing 2024-09-08", period)
			require.Equal(t, 700+(len(r.Buckets)-1)*2000, r.Summary.TotalCalories)
			require.Equal(t, len(r.Buckets)*2000, r.Summary.TargetCalories)
		}
	}

	week := BuildSummary(records, profile, models.PeriodWeek, day(t, "2024-09-10"))
	require.Equal(t, "2024-09-07", week.From)
	require.Equal(t, "2024-09-13", week.To)
	require.Len(t, week.Buckets, 7)

	month := BuildSummary(records, profile, models.PeriodMonth, day(t, "2024-09-10"))
	require.Len(t, month.Buckets, 30)
}
