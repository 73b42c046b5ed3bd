package energy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"iate-log/internal/models"
)

func TestComputeBMR(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		gender   models.Gender
		heightCm float64
		weightKg float64
		want     float64
	}{
		{name: "male", age: 30, gender: models.GenderMale, heightCm: 170, weightKg: 70, want: 1671.672},
		{name: "female", age: 30, gender: models.GenderFemale, heightCm: 170, weightKg: 70, want: 1491.643},
		{name: "female older", age: 55, gender: models.GenderFemale, heightCm: 160, weightKg: 60, want: 1259.943},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBMR(tt.age, tt.gender, tt.heightCm, tt.weightKg)
			require.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestComputeTDEE(t *testing.T) {
	require.InDelta(t, 1882.344, ComputeTDEE(1568.62, models.Sedentary), 0.001)

	tests := []struct {
		level models.ActivityLevel
		want  float64
	}{
		{models.Sedentary, 1200},
		{models.LightExercise, 1375},
		{models.ModerateExercise, 1550},
		{models.Active, 1725},
		{models.VeryActive, 1900},
		{models.ActivityLevel("Couch Potato"), 1200},
		{models.ActivityLevel(""), 1200},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			require.InDelta(t, tt.want, ComputeTDEE(1000, tt.level), 1e-9)
		})
	}
}

func TestActivityFactor_UnknownFallsBack(t *testing.T) {
	require.Equal(t, DefaultActivityFactor, ActivityFactor("very very active"))
	require.Equal(t, 1.2, ActivityFactor("sedentary"), "labels are case sensitive")
}

func TestDerive(t *testing.T) {
	p := Derive(models.DefaultProfile)

	require.Equal(t, 1671, p.BMR)
	// 1671.672 * 1.2 = 2006.0064, derived from the untruncated BMR.
	require.Equal(t, 2006, p.TDEE)
	require.Equal(t, models.DefaultProfile.WeightKg, p.WeightKg)

	active := models.DefaultProfile
	active.ActivityLevel = models.VeryActive
	active.BMR, active.TDEE = 99999, 99999
	p = Derive(active)
	require.Equal(t, 1671, p.BMR)
	require.Equal(t, 3176, p.TDEE)
}
