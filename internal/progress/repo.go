package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrNoProgress = errors.New("no progress for the given day")

const progressColumns = `id, user_id, date, calories_consumed, calories_burned, workout_completed,
		water_intake, meals_completed, current_weight, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert creates the user's record for the day, or applies the non-nil patch fields to the existing one.
func (r *Repo) Upsert(ctx context.Context, userID int, day time.Time, patch Patch, now time.Time) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO progress
				(user_id, date, calories_consumed, calories_burned, workout_completed,
				 water_intake, meals_completed, current_weight, created_at, updated_at)
				VALUES ($1, $2, COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, FALSE),
				        COALESCE($6, 0), COALESCE($7, 0), $8, $9, $9)
			ON CONFLICT (user_id, date) DO UPDATE SET
				calories_consumed = COALESCE($3, progress.calories_consumed),
				calories_burned   = COALESCE($4, progress.calories_burned),
				workout_completed = COALESCE($5, progress.workout_completed),
				water_intake      = COALESCE($6, progress.water_intake),
				meals_completed   = COALESCE($7, progress.meals_completed),
				current_weight    = COALESCE($8, progress.current_weight),
				updated_at        = $9
			RETURNING `+progressColumns+`;`,
		userID, day, patch.CaloriesConsumed, patch.CaloriesBurned, patch.WorkoutCompleted,
		patch.WaterIntake, patch.MealsCompleted, patch.CurrentWeight, now,
	)
	if err != nil {
		return nil, err
	}

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("unexpected error [no rows returned]")
	}

	return records[0], nil
}

func (r *Repo) Get(ctx context.Context, userID int, day time.Time) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+progressColumns+` FROM progress WHERE user_id = $1 AND date = $2;`,
		userID, day,
	)
	if err != nil {
		return nil, err
	}

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoProgress
	}

	return records[0], nil
}

// List returns the user's records, newest first. A limit <= 0 returns all of them.
func (r *Repo) List(ctx context.Context, userID int, limit int) (_ []*Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("limit", limit),
	)

	var rows pgx.Rows
	if limit > 0 {
		rows, err = r.db.Query(
			ctx,
			`SELECT `+progressColumns+` FROM progress WHERE user_id = $1 ORDER BY date DESC LIMIT $2;`,
			userID, limit,
		)
	} else {
		rows, err = r.db.Query(
			ctx,
			`SELECT `+progressColumns+` FROM progress WHERE user_id = $1 ORDER BY date DESC;`,
			userID,
		)
	}
	if err != nil {
		return nil, err
	}

	return rows2records(rows)
}

// Range returns the user's records with from <= date <= to, newest first.
func (r *Repo) Range(ctx context.Context, userID int, from, to time.Time) (_ []*Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.range")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+progressColumns+`
			FROM progress
			WHERE user_id = $1 AND date BETWEEN $2 AND $3
			ORDER BY date DESC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}

	return rows2records(rows)
}

func (r *Repo) CountCompletedWorkouts(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.count.workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM progress WHERE user_id = $1 AND workout_completed;`,
		userID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completed workouts: %w", err)
	}

	return count, nil
}

func rows2records(rows pgx.Rows) ([]*Record, error) {
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			rec  Record
			date time.Time
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &date, &rec.CaloriesConsumed, &rec.CaloriesBurned, &rec.WorkoutCompleted,
			&rec.WaterIntake, &rec.MealsCompleted, &rec.CurrentWeight, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		rec.Date = NewDate(date)
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
