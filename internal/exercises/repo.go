package exercises

import (
	"context"
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

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, description, video_url, primary_muscle, secondary_muscles,
				equipment, type, is_user_added, created_at
			FROM exercise
			ORDER BY created_at, id;
		`,
	)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}
	defer rows.Close()

	library := make([]Exercise, 0)
	for rows.Next() {
		var ex Exercise
		if err := rows.Scan(
			&ex.ID,
			&ex.Name,
			&ex.Description,
			&ex.VideoURL,
			&ex.PrimaryMuscle,
			&ex.SecondaryMuscles,
			&ex.Equipment,
			&ex.Type,
			&ex.IsUserAdded,
			&ex.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("exercises [rows scan]: %w", err)
		}
		if ex.SecondaryMuscles == nil {
			ex.SecondaryMuscles = []string{}
		}
		library = append(library, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows]: %w", err)
	}

	return library, nil
}

func (r *Repo) Add(ctx context.Context, ex Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", ex.ID))

	if err := insertExercise(ctx, r.db, ex); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrExerciseExists
		}
		return err
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// ReplaceAll swaps the whole library for the given one in a single transaction.
func (r *Repo) ReplaceAll(ctx context.Context, library []Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.replace_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("library.size", len(library)))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM exercise`); err != nil {
		return fmt.Errorf("delete library: %w", err)
	}

	for _, ex := range library {
		if err = insertExercise(ctx, tx, ex); err != nil {
			return fmt.Errorf("insert exercise [%s]: %w", ex.ID, err)
		}
	}

	return nil
}

func (r *Repo) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercise`).Scan(&count); err != nil {
		return -1, fmt.Errorf("count exercises: %w", err)
	}
	return count, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var (
	_ execer = (*pgxpool.Pool)(nil)
	_ execer = (pgx.Tx)(nil)
)

func insertExercise(ctx context.Context, db execer, ex Exercise) error {
	createdAt := ex.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	secondary := ex.SecondaryMuscles
	if secondary == nil {
		secondary = []string{}
	}

	_, err := db.Exec(
		ctx,
		`INSERT INTO exercise
				(id, name, description, video_url, primary_muscle, secondary_muscles, equipment, type, is_user_added, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		ex.ID, ex.Name, ex.Description, ex.VideoURL, ex.PrimaryMuscle, secondary,
		ex.Equipment, ex.Type, ex.IsUserAdded, createdAt,
	)
	return err
}
