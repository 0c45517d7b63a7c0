package history

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fittrack/internal/bmi"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=history_test

var ErrUserNotFound = errors.New("user not found")

type recordsRepo interface {
	Add(ctx context.Context, record *Record) (*Record, error)
	ListByUser(ctx context.Context, userID int) ([]*Record, error)
	Latest(ctx context.Context, userID int) (*Record, error)
}

type usersChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// summaryInvalidator drops cached per-user summaries built from BMI data.
type summaryInvalidator interface {
	Invalidate(userID int)
}

type Service struct {
	repo           recordsRepo
	users          usersChecker
	invalidator    summaryInvalidator
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo recordsRepo,
	users usersChecker,
	invalidator summaryInvalidator,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		users:          users,
		invalidator:    invalidator,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// Calculate evaluates and stores a BMI record for an existing user.
func (s *Service) Calculate(ctx context.Context, userID int, weightKg, heightCm float64) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bmi.calculate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	result, err := bmi.Compute(weightKg, heightCm)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Add(ctx, &Record{
		UserID:       userID,
		WeightKg:     weightKg,
		HeightCm:     heightCm,
		Result:       result,
		CalculatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("add bmi record: %w", err)
	}

	s.countCalculation(result.Category, true)
	s.invalidator.Invalidate(userID)
	span.SetAttributes(attribute.String("bmi.category", result.Category.String()))

	return record, nil
}

// Record stores a BMI record and discards the returned record. Used when a profile's measurements are set.
func (s *Service) Record(ctx context.Context, userID int, weightKg, heightCm float64) error {
	_, err := s.Calculate(ctx, userID, weightKg, heightCm)
	return err
}

// History returns the user's records, newest first.
func (s *Service) History(ctx context.Context, userID int) (_ []*Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bmi.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bmi records: %w", err)
	}
	if records == nil {
		records = []*Record{}
	}
	return records, nil
}

func (s *Service) Latest(ctx context.Context, userID int) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.bmi.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.repo.Latest(ctx, userID)
}

// QuickCalculate evaluates the measurements without storing anything.
func (s *Service) QuickCalculate(weightKg, heightCm float64) (bmi.Gauge, error) {
	result, err := bmi.Compute(weightKg, heightCm)
	if err != nil {
		return bmi.Gauge{}, err
	}
	s.countCalculation(result.Category, false)
	return bmi.NewGauge(result)
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

func (s *Service) countCalculation(category bmi.Category, stored bool) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterBMICalculations.
		WithLabelValues(category.String(), strconv.FormatBool(stored)).
		Inc()
}
