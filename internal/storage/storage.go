package storage

import (
	"context"
	"errors"
	"fmt"

	"iate-log/internal/models"
)

// ErrNotFound is returned when a meal or the profile does not exist.
var ErrNotFound = errors.New("not found")

// StorageError wraps a failed store operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

type MealStorage interface {
	// SaveMeal inserts the meal or replaces the one with the same ID.
	SaveMeal(ctx context.Context, meal *models.MealRecord) error
	MealsByDate(ctx context.Context, date string) ([]models.MealRecord, error)
	// MealsInRange returns meals dated within [from, to], both inclusive.
	MealsInRange(ctx context.Context, from, to string) ([]models.MealRecord, error)
	// DeleteMeal removes the meal and returns it as it was stored.
	DeleteMeal(ctx context.Context, id string) (*models.MealRecord, error)
	ClearMeals(ctx context.Context) error
}

type ProfileStorage interface {
	// SaveProfile overwrites the single profile row.
	SaveProfile(ctx context.Context, profile models.UserProfile) error
	Profile(ctx context.Context) (*models.UserProfile, error)
	DeleteProfile(ctx context.Context) error
}

type Storage interface {
	MealStorage
	ProfileStorage
	Close() error
}
