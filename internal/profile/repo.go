package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const pgUniqueViolation = "23505"

const userColumns = `id, email, name, age, gender, weight, height, fitness_goal,
		workout_preference, diet_preference, focus_areas, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user *User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO users
				(email, name, age, gender, weight, height, fitness_goal,
				 workout_preference, diet_preference, focus_areas, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id;`,
		user.Email, user.Name, user.Age, string(user.Gender), user.Weight, user.Height,
		string(user.FitnessGoal), string(user.WorkoutPreference), string(user.DietPreference),
		focusAreasToStrings(user.FocusAreas), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, mapPgErr(err)
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", id))
	user.ID = id
	return user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}

	return firstUser(rows)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get.email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1);`,
		email,
	)
	if err != nil {
		return nil, err
	}

	return firstUser(rows)
}

func (r *Repo) Update(ctx context.Context, user *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", user.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET
				email = $1, name = $2, age = $3, gender = $4, weight = $5, height = $6,
				fitness_goal = $7, workout_preference = $8, diet_preference = $9,
				focus_areas = $10, updated_at = $11
			WHERE id = $12;`,
		user.Email, user.Name, user.Age, string(user.Gender), user.Weight, user.Height,
		string(user.FitnessGoal), string(user.WorkoutPreference), string(user.DietPreference),
		focusAreasToStrings(user.FocusAreas), user.UpdatedAt, user.ID,
	)
	if err != nil {
		return mapPgErr(err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) Exists(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	if err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1);`,
		id,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func firstUser(rows pgx.Rows) (*User, error) {
	users, err := rows2users(rows)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users[0], nil
}

func rows2users(rows pgx.Rows) ([]*User, error) {
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var (
			u                                   User
			gender, goal, workoutPref, dietPref string
			focusAreas                          []string
			createdAt, updatedAt                time.Time
		)
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.Age, &gender, &u.Weight, &u.Height,
			&goal, &workoutPref, &dietPref, &focusAreas, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		u.Gender = Gender(gender)
		u.FitnessGoal = FitnessGoal(goal)
		u.WorkoutPreference = WorkoutPreference(workoutPref)
		u.DietPreference = DietPreference(dietPref)
		u.FocusAreas = make([]FocusArea, 0, len(focusAreas))
		for _, fa := range focusAreas {
			u.FocusAreas = append(u.FocusAreas, FocusArea(fa))
		}
		u.CreatedAt = createdAt
		u.UpdatedAt = updatedAt

		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func focusAreasToStrings(areas []FocusArea) []string {
	res := make([]string, 0, len(areas))
	for _, a := range areas {
		res = append(res, string(a))
	}
	return res
}

func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrEmailTaken
	}
	return err
}
