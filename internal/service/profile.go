package service

import (
	"context"
	"errors"

	"iate-log/internal/energy"
	"iate-log/internal/models"
	"iate-log/internal/storage"
	"iate-log/internal/units"
)

// ProfileInput is a profile as entered, in the user's preferred units:
// centimetres and kilograms when UsesMetricUnits, inches and pounds otherwise.
type ProfileInput struct {
	UsesMetricUnits bool                 `json:"uses_metric_units"`
	Age             int                  `json:"age"`
	Gender          models.Gender        `json:"gender"`
	Height          float64              `json:"height"`
	Weight          float64              `json:"weight"`
	ActivityLevel   models.ActivityLevel `json:"activity_level"`
}

// ProfileView is the stored profile with height and weight shown in the
// user's units.
type ProfileView struct {
	models.UserProfile
	Height     float64 `json:"height"`
	Weight     float64 `json:"weight"`
	HeightUnit string  `json:"height_unit"`
	WeightUnit string  `json:"weight_unit"`
}

func View(p models.UserProfile) ProfileView {
	h, w := units.FromMetric(p.HeightCm, p.WeightKg, p.UsesMetricUnits)
	v := ProfileView{
		UserProfile: p,
		Height:      units.Round2(h),
		Weight:      units.Round2(w),
		HeightUnit:  "in",
		WeightUnit:  "lb",
	}
	if p.UsesMetricUnits {
		v.HeightUnit, v.WeightUnit = "cm", "kg"
	}
	return v
}

// Profile returns the saved profile, or the default one when none is saved.
func (s *Service) Profile(ctx context.Context) (models.UserProfile, error) {
	p, err := s.store.Profile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return energy.Derive(models.DefaultProfile), nil
	}
	if err != nil {
		s.log.Error("load profile failed", "kind", Kind(err), "err", err)
		return models.UserProfile{}, err
	}
	return *p, nil
}

// SaveProfile converts in to metric, derives BMR and TDEE and stores it.
func (s *Service) SaveProfile(ctx context.Context, in ProfileInput) (models.UserProfile, error) {
	if err := in.validate(); err != nil {
		return models.UserProfile{}, err
	}

	heightCm, weightKg := units.ToMetric(in.Height, in.Weight, in.UsesMetricUnits)
	p := energy.Derive(models.UserProfile{
		UsesMetricUnits: in.UsesMetricUnits,
		Age:             in.Age,
		Gender:          in.Gender,
		HeightCm:        heightCm,
		WeightKg:        weightKg,
		ActivityLevel:   in.ActivityLevel,
	})

	if err := s.store.SaveProfile(ctx, p); err != nil {
		s.log.Error("save profile failed", "kind", Kind(err), "err", err)
		return models.UserProfile{}, err
	}
	s.log.Info("profile saved", "bmr", p.BMR, "tdee", p.TDEE)
	s.publish(ctx, "")
	return p, nil
}

// ResetProfile removes the saved profile so the default applies again.
func (s *Service) ResetProfile(ctx context.Context) (models.UserProfile, error) {
	if err := s.store.DeleteProfile(ctx); err != nil {
		s.log.Error("reset profile failed", "kind", Kind(err), "err", err)
		return models.UserProfile{}, err
	}
	s.publish(ctx, "")
	return energy.Derive(models.DefaultProfile), nil
}

func (in ProfileInput) validate() error {
	if in.Age <= 0 || in.Age > 150 {
		return invalidf("age must be between 1 and 150, got %d", in.Age)
	}
	if !in.Gender.Valid() {
		return invalidf("gender must be %s or %s, got %q", models.GenderMale, models.GenderFemale, in.Gender)
	}
	if in.Height <= 0 {
		return invalidf("height must be positive")
	}
	if in.Weight <= 0 {
		return invalidf("weight must be positive")
	}
	for _, level := range models.ActivityLevels {
		if in.ActivityLevel == level {
			return nil
		}
	}
	return invalidf("unknown activity level %q", in.ActivityLevel)
}
