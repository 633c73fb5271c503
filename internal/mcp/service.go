package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mfarag11047/RepCoach/internal/exercises"
	"github.com/mfarag11047/RepCoach/internal/profile"
	"github.com/mfarag11047/RepCoach/internal/recovery"
	"github.com/mfarag11047/RepCoach/internal/workouts"
)

type recoveryStatuser interface {
	Status(ctx context.Context, at time.Time) (recovery.GroupedStatus, error)
}

type workoutsRanger interface {
	Between(ctx context.Context, from, to *time.Time) ([]workouts.Entry, error)
}

type libraryLister interface {
	Library(ctx context.Context) ([]exercises.Exercise, error)
}

type profileGetter interface {
	Get(ctx context.Context) (*profile.UserProfile, error)
	GetPreferences(ctx context.Context) (profile.Preferences, error)
}

// contextService is what the tool handlers need.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	RecoveryStatus(ctx context.Context, at time.Time) (recovery.GroupedStatus, error)
	WorkoutHistory(ctx context.Context, from, to *time.Time) ([]workouts.Entry, error)
	ExerciseLibrary(ctx context.Context) ([]exercises.Exercise, error)
	Profile(ctx context.Context) (*ProfileContext, error)
}

// ProfileContext is the athlete data handed to the plan generator.
// Profile is nil when none was saved yet.
type ProfileContext struct {
	Profile     *profile.UserProfile `json:"profile"`
	Preferences profile.Preferences  `json:"preferences"`
}

type ContextServiceParams struct {
	Schema    SchemaRepo
	Recovery  recoveryStatuser
	Workouts  workoutsRanger
	Exercises libraryLister
	Profiles  profileGetter
}

// ContextService gathers the data the AI plan generator works from.
type ContextService struct {
	schema    SchemaRepo
	recovery  recoveryStatuser
	workouts  workoutsRanger
	exercises libraryLister
	profiles  profileGetter
}

func NewContextService(params ContextServiceParams) *ContextService {
	return &ContextService{
		schema:    params.Schema,
		recovery:  params.Recovery,
		workouts:  params.Workouts,
		exercises: params.Exercises,
		profiles:  params.Profiles,
	}
}

func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# RepCoach DB Schema\n\nNo RepCoach tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tableNames := make([]string, 0, len(byTable))
	for t := range byTable {
		tableNames = append(tableNames, t)
	}
	sort.Strings(tableNames)

	var b strings.Builder
	b.WriteString("# RepCoach DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(tableNames, ", ") + " (schema: public).\n")
	for _, tableName := range tableNames {
		b.WriteString("\n## " + tableName + "\n\n")
		b.WriteString("| Column | Type | Nullable | Default |\n|--------|------|----------|---------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
	}
	return b.String()
}

func (s *ContextService) RecoveryStatus(ctx context.Context, at time.Time) (recovery.GroupedStatus, error) {
	return s.recovery.Status(ctx, at)
}

func (s *ContextService) WorkoutHistory(ctx context.Context, from, to *time.Time) ([]workouts.Entry, error) {
	return s.workouts.Between(ctx, from, to)
}

func (s *ContextService) ExerciseLibrary(ctx context.Context) ([]exercises.Exercise, error) {
	return s.exercises.Library(ctx)
}

func (s *ContextService) Profile(ctx context.Context) (*ProfileContext, error) {
	p, err := s.profiles.Get(ctx)
	if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, err
	}
	prefs, err := s.profiles.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}
	return &ProfileContext{
		Profile:     p,
		Preferences: prefs,
	}, nil
}
