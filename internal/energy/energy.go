// Package energy estimates basal and total daily energy expenditure.
package energy

import "iate-log/internal/models"

// KcalPerKg is the energy content of one kilogram of body weight.
const KcalPerKg = 7700.0

// DefaultActivityFactor applies to any activity label not in the table.
const DefaultActivityFactor = 1.2

var activityFactors = map[models.ActivityLevel]float64{
	models.Sedentary:        1.2,
	models.LightExercise:    1.375,
	models.ModerateExercise: 1.55,
	models.Active:           1.725,
	models.VeryActive:       1.9,
}

// ActivityFactor returns the TDEE multiplier for level, falling back to the
// sedentary factor for labels it does not know.
func ActivityFactor(level models.ActivityLevel) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return DefaultActivityFactor
}

// ComputeBMR uses the revised Harris-Benedict coefficients. Height is in
// centimetres, weight in kilograms. Any gender other than male takes the
// female branch.
func ComputeBMR(age int, gender models.Gender, heightCm, weightKg float64) float64 {
	if gender == models.GenderMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
}

func ComputeTDEE(bmr float64, level models.ActivityLevel) float64 {
	return bmr * ActivityFactor(level)
}

// Derive fills in BMR and TDEE, truncated to whole kilocalories. TDEE is
// computed from the untruncated BMR.
func Derive(p models.UserProfile) models.UserProfile {
	bmr := ComputeBMR(p.Age, p.Gender, p.HeightCm, p.WeightKg)
	p.BMR = int(bmr)
	p.TDEE = int(ComputeTDEE(bmr, p.ActivityLevel))
	return p
}
