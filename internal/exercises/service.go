package exercises

import (
	"context"
	"fmt"
	"time"

	"github.com/mfarag11047/RepCoach/internal/telemetry/metrics"
	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=exercises_test

type exercisesRepo interface {
	List(ctx context.Context) ([]Exercise, error)
	Add(ctx context.Context, ex Exercise) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, library []Exercise) error
	Count(ctx context.Context) (int, error)
}

// Service owns the active exercise library. The library is seeded with the
// built-in default when empty.
type Service struct {
	repo           exercisesRepo
	metricsManager *metrics.Manager
}

func NewService(repo exercisesRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

// Library returns the active exercise library.
func (s *Service) Library(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.library")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	library, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	span.SetAttributes(attribute.Int("library.size", len(library)))
	return library, nil
}

// KnownMuscles returns the muscle names declared by the active library.
func (s *Service) KnownMuscles(ctx context.Context) ([]string, error) {
	library, err := s.Library(ctx)
	if err != nil {
		return nil, err
	}
	return KnownMuscles(library), nil
}

// SeedDefault loads the default library if no exercises are stored yet.
func (s *Service) SeedDefault(ctx context.Context) (seeded bool, err error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.Reset(ctx); err != nil {
		return false, err
	}
	log.Infoln("exercise library empty, seeded with the default one")
	return true, nil
}

// AddUserExercise adds a custom exercise to the active library.
func (s *Service) AddUserExercise(ctx context.Context, ex Exercise) (*Exercise, error) {
	if ex.ID == "" {
		ex.ID = IDFromName(ex.Name)
	}
	if ex.SecondaryMuscles == nil {
		ex.SecondaryMuscles = []string{}
	}
	ex.IsUserAdded = true
	ex.CreatedAt = time.Now()

	if err := ex.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, ex); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	return &ex, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ReplaceLibrary activates a custom library in place of the current one.
func (s *Service) ReplaceLibrary(ctx context.Context, library []Exercise) error {
	if err := ValidateLibrary(library); err != nil {
		return err
	}

	stored := make([]Exercise, len(library))
	copy(stored, library)
	now := time.Now()
	for i := range stored {
		// keep the file order stable when listing by created_at
		stored[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
	}

	if err := s.repo.ReplaceAll(ctx, stored); err != nil {
		return fmt.Errorf("replace library: %w", err)
	}
	s.metricsManager.CounterExerciseLibraryResets.Inc()
	log.Debugf("exercise library replaced, %d exercises", len(library))
	return nil
}

// Reset restores the built-in default library.
func (s *Service) Reset(ctx context.Context) error {
	library, err := DefaultLibrary()
	if err != nil {
		return err
	}
	return s.ReplaceLibrary(ctx, library)
}
