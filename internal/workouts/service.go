package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mfarag11047/RepCoach/internal/telemetry/metrics"
	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrInvalidPeriod = errors.New("invalid progress period")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, entry Entry) error
	Get(ctx context.Context, key string) (*Entry, error)
	Delete(ctx context.Context, key string) error
	History(ctx context.Context) (History, error)
	List(ctx context.Context, params ListParams) (_ []Entry, total int, err error)
	Range(ctx context.Context, from, to *time.Time) ([]Entry, error)
}

type Period string

const (
	PeriodMonth        Period = "1M"
	PeriodThreeMonths  Period = "3M"
	PeriodYear         Period = "1Y"
	PeriodAll          Period = "All"
	DefaultPeriod             = PeriodThreeMonths
	baseStrengthScore         = 100.0
	strengthVolumeUnit        = 1000.0
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodMonth, PeriodThreeMonths, PeriodYear, PeriodAll:
		return p, nil
	case "":
		return DefaultPeriod, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidPeriod, s)
}

// Start returns the beginning of the period ending at now, or nil for PeriodAll.
func (p Period) Start(now time.Time) *time.Time {
	var start time.Time
	switch p {
	case PeriodMonth:
		start = now.AddDate(0, -1, 0)
	case PeriodThreeMonths:
		start = now.AddDate(0, -3, 0)
	case PeriodYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &start
}

type ProgressPoint struct {
	Key      string  `json:"key"`
	Date     string  `json:"date"`
	Volume   float64 `json:"volume"`
	Calories int     `json:"calories"`
}

type Progress struct {
	Period        Period          `json:"period"`
	Points        []ProgressPoint `json:"points"`
	StrengthScore float64         `json:"strengthScore"`
}

type FinishRequest struct {
	Exercises []LoggedExercise `json:"exercises"`
	TotalTime int              `json:"totalTime"`
	// FinishedAt defaults to the current time.
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

type Service struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo workoutsRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// FinishWorkout stores the logged part of a session in the history.
func (s *Service) FinishWorkout(ctx context.Context, req FinishRequest) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workout, err := Finish(req.Exercises, req.TotalTime)
	if err != nil {
		return nil, err
	}

	finishedAt := s.now()
	if req.FinishedAt != nil {
		finishedAt = *req.FinishedAt
	}
	entry := Entry{
		Key:     NewKey(finishedAt),
		Workout: workout,
	}
	span.SetAttributes(
		attribute.String("workout.key", entry.Key),
		attribute.Int("workout.exercises", len(workout.Exercises)),
	)

	if err := s.repo.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}

	s.metricsManager.CounterWorkoutsFinished.Inc()
	s.metricsManager.HistWorkoutVolume.Observe(workout.TotalVolume)
	log.Debugf(
		"workout [%s] saved: %d exercises, volume %.1f, %d kcal",
		entry.Key, len(workout.Exercises), workout.TotalVolume, workout.Calories,
	)

	return &entry, nil
}

func (s *Service) History(ctx context.Context) (History, error) {
	return s.repo.History(ctx)
}

func (s *Service) Get(ctx context.Context, key string) (*Entry, error) {
	return s.repo.Get(ctx, key)
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Entry, int, error) {
	return s.repo.List(ctx, params)
}

// Between returns the workouts finished in [from, to), oldest first.
func (s *Service) Between(ctx context.Context, from, to *time.Time) ([]Entry, error) {
	return s.repo.Range(ctx, from, to)
}

// Progress returns the volume series of the given period and the overall
// strength score, which is computed over the whole history.
func (s *Service) Progress(ctx context.Context, period Period) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("period", string(period)))

	entries, err := s.repo.Range(ctx, period.Start(s.now()), nil)
	if err != nil {
		return nil, fmt.Errorf("range workouts: %w", err)
	}
	history, err := s.repo.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	points := make([]ProgressPoint, 0, len(entries))
	for _, e := range entries {
		date := e.Key
		if at, err := ParseKey(e.Key); err == nil {
			date = at.Format("2006-01-02")
		}
		points = append(points, ProgressPoint{
			Key:      e.Key,
			Date:     date,
			Volume:   e.Workout.TotalVolume,
			Calories: e.Workout.Calories,
		})
	}

	return &Progress{
		Period:        period,
		Points:        points,
		StrengthScore: StrengthScore(history),
	}, nil
}

// StrengthScore is 100 plus one point per 1000 units of lifted volume.
func StrengthScore(history History) float64 {
	totalVolume := 0.0
	for _, w := range history {
		totalVolume += w.TotalVolume
	}
	return baseStrengthScore + totalVolume/strengthVolumeUnit
}
