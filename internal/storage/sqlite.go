package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"iate-log/internal/models"
)

type SQLiteStorage struct {
	db *sql.DB
}

var _ Storage = (*SQLiteStorage)(nil)

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meals (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        calories INTEGER NOT NULL CHECK (calories >= 0),
        grams INTEGER NOT NULL CHECK (grams >= 0),
        date TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS user_settings (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        metric INTEGER NOT NULL,
        age INTEGER NOT NULL,
        gender TEXT NOT NULL,
        height REAL NOT NULL,
        weight REAL NOT NULL,
        activity_level TEXT NOT NULL,
        bmr INTEGER NOT NULL,
        tdee INTEGER NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_meals_date ON meals(date);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) SaveMeal(ctx context.Context, meal *models.MealRecord) error {
	query := `
        INSERT OR REPLACE INTO meals (id, name, calories, grams, date)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, query, meal.ID, meal.Name, meal.Calories, meal.Grams, meal.Date)
	return wrap("save meal", err)
}

func (s *SQLiteStorage) MealsByDate(ctx context.Context, date string) ([]models.MealRecord, error) {
	query := `
        SELECT id, name, calories, grams, date
        FROM meals
        WHERE date = ?
        ORDER BY rowid
    `
	return s.queryMeals(ctx, "query meals by date", query, date)
}

func (s *SQLiteStorage) MealsInRange(ctx context.Context, from, to string) ([]models.MealRecord, error) {
	query := `
        SELECT id, name, calories, grams, date
        FROM meals
        WHERE date BETWEEN ? AND ?
        ORDER BY date, rowid
    `
	return s.queryMeals(ctx, "query meals in range", query, from, to)
}

func (s *SQLiteStorage) queryMeals(ctx context.Context, op, query string, args ...interface{}) ([]models.MealRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var meals []models.MealRecord
	for rows.Next() {
		var meal models.MealRecord
		if err := rows.Scan(&meal.ID, &meal.Name, &meal.Calories, &meal.Grams, &meal.Date); err != nil {
			return nil, wrap(op, fmt.Errorf("scan meal: %w", err))
		}
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return meals, nil
}

func (s *SQLiteStorage) DeleteMeal(ctx context.Context, id string) (*models.MealRecord, error) {
	query := `
        DELETE FROM meals
        WHERE id = ?
        RETURNING id, name, calories, grams, date
    `
	var meal models.MealRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(&meal.ID, &meal.Name, &meal.Calories, &meal.Grams, &meal.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("delete meal", err)
	}
	return &meal, nil
}

func (s *SQLiteStorage) ClearMeals(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM meals`)
	return wrap("clear meals", err)
}

func (s *SQLiteStorage) SaveProfile(ctx context.Context, p models.UserProfile) error {
	query := `
        INSERT OR REPLACE INTO user_settings (id, metric, age, gender, height, weight, activity_level, bmr, tdee)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.ExecContext(ctx, query,
		p.UsesMetricUnits, p.Age, string(p.Gender), p.HeightCm, p.WeightKg,
		string(p.ActivityLevel), p.BMR, p.TDEE)
	return wrap("save profile", err)
}

func (s *SQLiteStorage) Profile(ctx context.Context) (*models.UserProfile, error) {
	query := `
        SELECT metric, age, gender, height, weight, activity_level, bmr, tdee
        FROM user_settings
        LIMIT 1
    `
	var (
		p                     models.UserProfile
		gender, activityLevel string
	)
	err := s.db.QueryRowContext(ctx, query).Scan(
		&p.UsesMetricUnits, &p.Age, &gender, &p.HeightCm, &p.WeightKg,
		&activityLevel, &p.BMR, &p.TDEE)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("load profile", err)
	}

	p.Gender = models.Gender(gender)
	p.ActivityLevel = models.ActivityLevel(activityLevel)
	return &p, nil
}

func (s *SQLiteStorage) DeleteProfile(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM user_settings`)
	return wrap("delete profile", err)
}
