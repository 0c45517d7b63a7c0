package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRange = errors.New("start date is after end date")
)

var validate = validator.New()

type progressRepo interface {
	Upsert(ctx context.Context, userID int, day time.Time, patch Patch, now time.Time) (*Record, error)
	Get(ctx context.Context, userID int, day time.Time) (*Record, error)
	List(ctx context.Context, userID int, limit int) ([]*Record, error)
	Range(ctx context.Context, userID int, from, to time.Time) ([]*Record, error)
	CountCompletedWorkouts(ctx context.Context, userID int) (int, error)
}

type usersChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type summaryInvalidator interface {
	Invalidate(userID int)
}

type Service struct {
	repo        progressRepo
	users       usersChecker
	invalidator summaryInvalidator
	now         func() time.Time
}

func NewService(repo progressRepo, users usersChecker, invalidator summaryInvalidator) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// Update applies the patch to the user's record for the day, creating it if needed.
func (s *Service) Update(ctx context.Context, userID int, day time.Time, patch Patch) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("day", day.Format(pkg.DayLayout)),
	)

	if err := validate.Struct(patch); err != nil {
		return nil, &InvalidPatchError{err: err}
	}

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	record, err := s.repo.Upsert(ctx, userID, pkg.Day(day), patch, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	s.invalidator.Invalidate(userID)
	return record, nil
}

// Today returns today's record, or an unsaved empty one when nothing was tracked yet.
func (s *Service) Today(ctx context.Context, userID int) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	today := pkg.Day(s.now().UTC())
	record, err := s.repo.Get(ctx, userID, today)
	switch {
	case errors.Is(err, ErrNoProgress):
		return &Record{UserID: userID, Date: NewDate(today)}, nil
	case err != nil:
		return nil, fmt.Errorf("get today progress: %w", err)
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, userID int) (_ []*Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return nonNil(records), nil
}

// Range returns records between from and to, both inclusive, newest first.
func (s *Service) Range(ctx context.Context, userID int, from, to time.Time) (_ []*Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.range")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from, to = pkg.Day(from), pkg.Day(to)
	if from.After(to) {
		return nil, ErrInvalidRange
	}

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	records, err := s.repo.Range(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("progress range: %w", err)
	}
	return nonNil(records), nil
}

func (s *Service) Stats(ctx context.Context, userID int) (_ Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.checkUser(ctx, userID); err != nil {
		return Stats{}, err
	}

	total, err := s.repo.CountCompletedWorkouts(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	recent, err := s.repo.List(ctx, userID, StatsWindow)
	if err != nil {
		return Stats{}, fmt.Errorf("list recent progress: %w", err)
	}

	return ComputeStats(total, recent), nil
}

func (s *Service) checkUser(ctx context.Context, userID int) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user %d: %w", userID, err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func nonNil(records []*Record) []*Record {
	if records == nil {
		return []*Record{}
	}
	return records
}

type InvalidPatchError struct {
	err error
}

func (e *InvalidPatchError) Error() string {
	return "invalid progress update: " + e.err.Error()
}

func (e *InvalidPatchError) Unwrap() error {
	return e.err
}
