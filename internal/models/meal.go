// internal/models/meal.go
package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO 8601 calendar date used for every stored date.
const DateLayout = "2006-01-02"

// UnknownFood is the name used when the model could not identify the meal.
const UnknownFood = "Unknown"

type MealRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Grams    int    `json:"grams"`
	Date     string `json:"date"`
}

// MealFields is what the completion service tells us about a meal before it
// becomes a record.
type MealFields struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Grams    int    `json:"grams"`
}

// ParseDate parses a YYYY-MM-DD date. Dates are calendar days with no zone,
// so the result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
