package models

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary"
	LightExercise    ActivityLevel = "Light Exercise"
	ModerateExercise ActivityLevel = "Moderate Exercise"
	Active           ActivityLevel = "Active"
	VeryActive       ActivityLevel = "Very Active"
)

// ActivityLevels lists the five tiers from least to most active.
var ActivityLevels = []ActivityLevel{Sedentary, LightExercise, ModerateExercise, Active, VeryActive}

// UserProfile is the single settings row. BMR and TDEE are derived on every
// save and never set on their own.
type UserProfile struct {
	UsesMetricUnits bool          `json:"uses_metric_units"`
	Age             int           `json:"age"`
	Gender          Gender        `json:"gender"`
	HeightCm        float64       `json:"height_cm"`
	WeightKg        float64       `json:"weight_kg"`
	ActivityLevel   ActivityLevel `json:"activity_level"`
	BMR             int           `json:"bmr"`
	TDEE            int           `json:"tdee"`
}

// DefaultProfile is shown until the user saves their own. BMR and TDEE are
// left at zero here; callers run it through energy.Derive.
var DefaultProfile = UserProfile{
	UsesMetricUnits: true,
	Age:             30,
	Gender:          GenderMale,
	HeightCm:        170,
	WeightKg:        70,
	ActivityLevel:   Sedentary,
}
