package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/bmi"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrNoRecords = errors.New("no bmi records")

const recordColumns = `id, user_id, weight_kg, height_cm, bmi_value, category,
		min_healthy_weight, max_healthy_weight, calculated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, record *Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bmi.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", record.UserID))

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO bmi_record
				(user_id, weight_kg, height_cm, bmi_value, category,
				 min_healthy_weight, max_healthy_weight, calculated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		record.UserID, record.WeightKg, record.HeightCm, record.BMIValue, string(record.Category),
		record.MinHealthyWeight, record.MaxHealthyWeight, record.CalculatedAt,
	).Scan(&id); err != nil {
		return nil, fmt.Errorf("insert bmi record: %w", err)
	}

	record.ID = id
	return record, nil
}

// ListByUser returns all records of the user, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID int) (_ []*Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bmi.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+recordColumns+`
			FROM bmi_record
			WHERE user_id = $1
			ORDER BY calculated_at DESC, id DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("records.count", len(records)))

	return records, nil
}

func (r *Repo) Latest(ctx context.Context, userID int) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bmi.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+recordColumns+`
			FROM bmi_record
			WHERE user_id = $1
			ORDER BY calculated_at DESC, id DESC
			LIMIT 1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	records, err := rows2records(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	return records[0], nil
}

func rows2records(rows pgx.Rows) ([]*Record, error) {
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			rec      Record
			category string
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.WeightKg, &rec.HeightCm, &rec.BMIValue, &category,
			&rec.MinHealthyWeight, &rec.MaxHealthyWeight, &rec.CalculatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		rec.Category = bmi.Category(category)
		if !rec.Category.IsValid() {
			return nil, fmt.Errorf("record %d: %w", rec.ID, &bmi.UnknownCategoryError{Category: rec.Category})
		}

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
