package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"iate-log/internal/completion"
	"iate-log/internal/config"
	"iate-log/internal/mocks"
	"iate-log/internal/models"
	"iate-log/internal/service"
	"iate-log/internal/storage"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer, *mocks.MockCompleter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	dbPath := filepath.Join(t.TempDir(), "iate.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)

	var out bytes.Buffer
	ctx := NewContext(&config.Config{DB: config.DBConfig{Path: dbPath}}, &out)
	ctx.store = store
	ctx.svc = service.New(store, completer,
		service.WithNotifier(ctx.Hub()),
		service.WithClock(func() time.Time { return time.Date(2024, time.March, 15, 8, 0, 0, 0, time.Local) }),
		service.WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
	)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, &out, completer
}

func TestLogAndListMeals(t *testing.T) {
	ctx, out, completer := newTestContext(t)
	completer.EXPECT().
		Complete(gomock.Any(), completion.Request{Description: "bowl of porridge"}).
		Return("Food Name: Porridge\nCalories: 250\nGrams: 300", nil)

	require.NoError(t, (&LogCmd{Description: "bowl of porridge"}).Run(ctx))
	require.Contains(t, out.String(), "Logged Porridge: 250 kcal, 300 g on 2024-03-15")

	out.Reset()
	require.NoError(t, (&MealsCmd{}).Run(ctx))
	require.Contains(t, out.String(), "Porridge")
	require.Contains(t, out.String(), "Total")

	out.Reset()
	require.NoError(t, (&MealsCmd{JSON: true, From: "2024-03-01", To: "2024-03-31"}).Run(ctx))
	var meals []models.MealRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &meals))
	require.Len(t, meals, 1)
	require.Equal(t, 250, meals[0].Calories)

	out.Reset()
	require.NoError(t, (&MealsCmd{Date: "2024-03-16"}).Run(ctx))
	require.Equal(t, "No meals logged.\n", out.String())
}

func TestPhotoCmd(t *testing.T) {
	ctx, out, completer := newTestContext(t)
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xDB}
	path := filepath.Join(t.TempDir(), "lunch.jpg")
	require.NoError(t, os.WriteFile(path, jpeg, 0o600))

	completer.EXPECT().
		Complete(gomock.Any(), completion.Request{Image: jpeg}).
		Return(`{"foodName": "Sandwich", "foodCalories": 420, "foodWeight": 220}`, nil)

	require.NoError(t, (&PhotoCmd{Path: path, Date: "2024-03-14"}).Run(ctx))
	require.Contains(t, out.String(), "Logged Sandwich: 420 kcal, 220 g on 2024-03-14")
}

func TestLogCmd_PropagatesParseError(t *testing.T) {
	ctx, out, completer := newTestContext(t)
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("I am not sure.", nil)

	err := (&LogCmd{Description: "something"}).Run(ctx)
	require.Error(t, err)
	require.Equal(t, service.KindParse, service.Kind(err))
	require.Empty(t, out.String())
}

func TestDeleteAndClear(t *testing.T) {
	ctx, out, _ := newTestContext(t)
	require.NoError(t, ctx.store.SaveMeal(context.Background(), &models.MealRecord{ID: "m1", Name: "Tea", Calories: 5, Grams: 250, Date: "2024-03-15"}))

	require.NoError(t, (&DeleteCmd{ID: "m1"}).Run(ctx))
	require.Contains(t, out.String(), "Deleted meal m1")

	err := (&DeleteCmd{ID: "m1"}).Run(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.Error(t, (&ClearCmd{}).Run(ctx))
	require.NoError(t, (&ClearCmd{Yes: true}).Run(ctx))
	require.Contains(t, out.String(), "Food log cleared.")
}

func TestSummaryCmd(t *testing.T) {
	ctx, out, _ := newTestContext(t)
	require.NoError(t, ctx.store.SaveMeal(context.Background(), &models.MealRecord{ID: "m1", Name: "Pasta", Calories: 2506, Grams: 600, Date: "2024-03-15"}))

	require.NoError(t, (&SummaryCmd{Period: "day"}).Run(ctx))
	require.Contains(t, out.String(), "Summary for 2024-03-15\n")
	require.Contains(t, out.String(), "Calories: 2506 of 2006 kcal")
	require.Contains(t, out.String(), "Deficit:  -500 kcal")
	require.Contains(t, out.String(), "0.06 kg weight gained")

	out.Reset()
	require.NoError(t, (&SummaryCmd{Period: "week", Chart: true}).Run(ctx))
	require.Contains(t, out.String(), "Summary for 2024-03-12 to 2024-03-18")
	require.Contains(t, out.String(), "imputed")
	require.Contains(t, out.String(), "2024-03-15")

	require.Error(t, (&SummaryCmd{Period: "century"}).Run(ctx))
}

func TestProfileCommands(t *testing.T) {
	ctx, out, _ := newTestContext(t)

	require.NoError(t, (&ProfileShowCmd{}).Run(ctx))
	require.Contains(t, out.String(), "Height:   170 cm")
	require.Contains(t, out.String(), "TDEE:     2006 kcal/day")

	out.Reset()
	require.NoError(t, (&ProfileSetCmd{Imperial: true, Weight: 160}).Run(ctx))
	require.Contains(t, out.String(), "Height:   66 in")
	require.Contains(t, out.String(), "Weight:   160 lb")

	p, err := ctx.svc.Profile(context.Background())
	require.NoError(t, err)
	require.False(t, p.UsesMetricUnits)
	require.InDelta(t, 170.0, p.HeightCm, 1e-9)
	require.InDelta(t, 72.5749, p.WeightKg, 1e-3)
	require.Equal(t, 30, p.Age)

	out.Reset()
	require.NoError(t, (&ProfileResetCmd{}).Run(ctx))
	require.Contains(t, out.String(), "Weight:   70 kg")
}

func TestProfileSetCmd_Merge(t *testing.T) {
	cur := models.UserProfile{UsesMetricUnits: true, Age: 41, Gender: models.GenderFemale, HeightCm: 160, WeightKg: 55, ActivityLevel: models.Active}

	in := (&ProfileSetCmd{Age: 42, Activity: string(models.VeryActive)}).merge(cur)
	require.Equal(t, service.ProfileInput{
		UsesMetricUnits: true,
		Age:             42,
		Gender:          models.GenderFemale,
		Height:          160,
		Weight:          55,
		ActivityLevel:   models.VeryActive,
	}, in)

	in = (&ProfileSetCmd{Imperial: true, Gender: "Male"}).merge(cur)
	require.False(t, in.UsesMetricUnits)
	require.Equal(t, models.GenderMale, in.Gender)
	require.InDelta(t, 62.992, in.Height, 1e-3)
	require.InDelta(t, 121.254, in.Weight, 1e-3)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	ctx := NewContext(&config.Config{}, &out)

	require.NoError(t, (&VersionCmd{}).Run(ctx))
	require.Equal(t, "iate-log version 1.0.0\n", out.String())
	require.NoError(t, ctx.Close())
}
