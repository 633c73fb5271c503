package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const pgUniqueViolation = "23505"

type ListParams struct {
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, entry Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.key", entry.Key))

	finishedAt, err := ParseKey(entry.Key)
	if err != nil {
		return err
	}
	exercisesJson, err := json.Marshal(entry.Workout.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO workout
				(key, finished_at, total_time, total_volume, calories, exercises)
				VALUES ($1, $2, $3, $4, $5, $6);`,
		entry.Key, finishedAt, entry.Workout.TotalTime, entry.Workout.TotalVolume,
		entry.Workout.Calories, exercisesJson,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrWorkoutExists
		}
		return err
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, key string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(
		ctx,
		`SELECT key, total_time, total_volume, calories, exercises FROM workout WHERE key = $1`,
		key,
	)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *Repo) Delete(ctx context.Context, key string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout WHERE key = $1`, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// History returns the whole workout history.
func (r *Repo) History(ctx context.Context) (_ History, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := r.queryEntries(
		ctx,
		`SELECT key, total_time, total_volume, calories, exercises FROM workout`,
	)
	if err != nil {
		return nil, err
	}

	history := make(History, len(entries))
	for _, e := range entries {
		history[e.Key] = e.Workout
	}
	span.SetAttributes(attribute.Int("history.size", len(history)))
	return history, nil
}

// List returns a page of the history, newest first, and the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Entry, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout`).Scan(&total); err != nil {
		return nil, -1, fmt.Errorf("count workouts: %w", err)
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	entries, err := r.queryEntries(
		ctx,
		`
			SELECT key, total_time, total_volume, calories, exercises
			FROM workout
			ORDER BY finished_at DESC, key DESC
			LIMIT $1 OFFSET $2;
		`,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}

	return entries, total, nil
}

// Range returns the workouts finished in [from, to), oldest first.
// A nil bound is open.
func (r *Repo) Range(ctx context.Context, from, to *time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.range")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.queryEntries(
		ctx,
		`
			SELECT key, total_time, total_volume, calories, exercises
			FROM workout
			WHERE ($1::timestamptz IS NULL OR finished_at >= $1)
				AND ($2::timestamptz IS NULL OR finished_at < $2)
			ORDER BY finished_at, key;
		`,
		from, to,
	)
}

func (r *Repo) queryEntries(ctx context.Context, sql string, args ...any) ([]Entry, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("workouts [query]: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("workouts [rows scan]: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workouts [rows]: %w", err)
	}

	return entries, nil
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		entry         Entry
		exercisesJson []byte
	)
	if err := row.Scan(
		&entry.Key,
		&entry.Workout.TotalTime,
		&entry.Workout.TotalVolume,
		&entry.Workout.Calories,
		&exercisesJson,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(exercisesJson, &entry.Workout.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises [%s]: %w", entry.Key, err)
	}
	return &entry, nil
}
