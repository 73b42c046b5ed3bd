// Package units converts profile measurements between metric and imperial.
// Conversions never round; Truncate and Round2 are display helpers.
package units

import "math"

const (
	cmPerInch   = 2.54
	poundsPerKg = 2.20462
)

func CmToInches(cm float64) float64 { return cm / cmPerInch }

func InchesToCm(inches float64) float64 { return inches * cmPerInch }

func KgToPounds(kg float64) float64 { return kg * poundsPerKg }

func PoundsToKg(pounds float64) float64 { return pounds / poundsPerKg }

// ToMetric converts height and weight entered in the user's preferred units
// to centimetres and kilograms.
func ToMetric(height, weight float64, usesMetric bool) (heightCm, weightKg float64) {
	if usesMetric {
		return height, weight
	}
	return InchesToCm(height), PoundsToKg(weight)
}

// FromMetric is the inverse of ToMetric.
func FromMetric(heightCm, weightKg float64, usesMetric bool) (height, weight float64) {
	if usesMetric {
		return heightCm, weightKg
	}
	return CmToInches(heightCm), KgToPounds(weightKg)
}

// Truncate drops the fractional part, as the profile form shows whole units.
func Truncate(x float64) int { return int(x) }

// Round2 rounds to two decimal places for summary views.
func Round2(x float64) float64 { return math.Round(x*100) / 100 }
