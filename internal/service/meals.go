package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"iate-log/internal/completion"
	"iate-log/internal/models"
	"iate-log/internal/parser"
)

// AddMealFromText asks the model to estimate a described meal and stores the
// result under date (today when empty). Nothing is stored on any failure.
func (s *Service) AddMealFromText(ctx context.Context, description, date string) (*models.MealRecord, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, invalidf("description is required")
	}
	return s.addMeal(ctx, completion.Request{Description: description}, date)
}

// AddMealFromImage is AddMealFromText for a JPEG photo of the meal.
func (s *Service) AddMealFromImage(ctx context.Context, jpeg []byte, date string) (*models.MealRecord, error) {
	if len(jpeg) == 0 {
		return nil, invalidf("image is required")
	}
	return s.addMeal(ctx, completion.Request{Image: jpeg}, date)
}

func (s *Service) addMeal(ctx context.Context, req completion.Request, date string) (*models.MealRecord, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	raw, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.log.Error("meal estimate failed", "kind", Kind(err), "err", err)
		return nil, err
	}

	fields, err := parser.Parse(raw)
	if err != nil {
		s.log.Warn("meal estimate not understood", "kind", Kind(err), "err", err)
		return nil, err
	}

	meal := &models.MealRecord{
		ID:       uuid.NewString(),
		Name:     fields.Name,
		Calories: fields.Calories,
		Grams:    fields.Grams,
		Date:     date,
	}
	if err := s.store.SaveMeal(ctx, meal); err != nil {
		s.log.Error("save meal failed", "kind", Kind(err), "err", err)
		return nil, err
	}

	s.log.Info("meal logged", "id", meal.ID, "name", meal.Name, "calories", meal.Calories, "date", meal.Date)
	s.publish(ctx, date)
	return meal, nil
}

// Meals lists the meals logged on date (today when empty) in insertion order.
func (s *Service) Meals(ctx context.Context, date string) ([]models.MealRecord, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.MealsByDate(ctx, date)
	if err != nil {
		s.log.Error("list meals failed", "kind", Kind(err), "err", err)
		return nil, err
	}
	return meals, nil
}

func (s *Service) MealsInRange(ctx context.Context, from, to string) ([]models.MealRecord, error) {
	if _, err := models.ParseDate(from); err != nil {
		return nil, invalidf("from: %v", err)
	}
	if _, err := models.ParseDate(to); err != nil {
		return nil, invalidf("to: %v", err)
	}
	if from > to {
		return nil, invalidf("from %s is after to %s", from, to)
	}
	meals, err := s.store.MealsInRange(ctx, from, to)
	if err != nil {
		s.log.Error("list meals failed", "kind", Kind(err), "err", err)
		return nil, err
	}
	return meals, nil
}

// DeleteMeal removes one meal and republishes the day it was logged on.
func (s *Service) DeleteMeal(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidf("meal id is required")
	}
	meal, err := s.store.DeleteMeal(ctx, id)
	if err != nil {
		return err
	}
	s.log.Info("meal deleted", "id", id, "date", meal.Date)
	s.publish(ctx, meal.Date)
	return nil
}

// ClearMeals deletes the whole food log. The profile is kept.
func (s *Service) ClearMeals(ctx context.Context) error {
	if err := s.store.ClearMeals(ctx); err != nil {
		s.log.Error("clear meals failed", "kind", Kind(err), "err", err)
		return err
	}
	s.log.Info("food log cleared")
	s.publish(ctx, "")
	return nil
}

func (s *Service) resolveDate(date string) (string, error) {
	if date == "" {
		return models.FormatDate(s.now()), nil
	}
	if _, err := models.ParseDate(date); err != nil {
		return "", invalidf("%v", err)
	}
	return date, nil
}
