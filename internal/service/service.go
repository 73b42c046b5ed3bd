// Package service runs the food-log use cases: each call is one sequential
// chain (ask the model, parse, persist, notify) that either completes or
// leaves nothing behind.
package service

import (
	"context"
	"log/slog"
	"time"

	"iate-log/internal/completion"
	"iate-log/internal/storage"
	"iate-log/internal/summary"
)

//go:generate mockgen -destination=../mocks/service.go -package=mocks iate-log/internal/service Completer,Notifier

// Completer returns the raw model text for a meal description or photo.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (string, error)
}

// Notifier receives the rebuilt day report after every change.
type Notifier interface {
	Publish(report summary.Report)
}

type Service struct {
	store     storage.Storage
	completer Completer
	notifier  Notifier
	now       func() time.Time
	log       *slog.Logger
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func New(store storage.Storage, completer Completer, opts ...Option) *Service {
	s := &Service{
		store:     store,
		completer: completer,
		now:       time.Now,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
