package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/bmi"
	"github.com/2beens/fittrack/internal/bmi/history"
	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/progress"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dashboard_test

var ErrUserNotFound = errors.New("user not found")

type profileGetter interface {
	Get(ctx context.Context, id int) (*profile.User, error)
}

type latestBMIGetter interface {
	Latest(ctx context.Context, userID int) (*history.Record, error)
}

type todayProgressGetter interface {
	Today(ctx context.Context, userID int) (*progress.Record, error)
}

type summaryCache interface {
	Get(userID int, day time.Time) (*Summary, bool)
	Set(userID int, day time.Time, summary *Summary)
}

type Service struct {
	profiles   profileGetter
	bmiRecords latestBMIGetter
	progress   todayProgressGetter
	cache      summaryCache
	now        func() time.Time
}

func NewService(
	profiles profileGetter,
	bmiRecords latestBMIGetter,
	todayProgress todayProgressGetter,
	cache summaryCache,
) *Service {
	return &Service{
		profiles:   profiles,
		bmiRecords: bmiRecords,
		progress:   todayProgress,
		cache:      cache,
		now:        time.Now,
	}
}

// Summary builds the user's dashboard for today. Without BMI history the gauge is computed from the profile.
func (s *Service) Summary(ctx context.Context, userID int) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	today := pkg.Day(s.now().UTC())
	if cached, ok := s.cache.Get(userID, today); ok {
		span.SetAttributes(attribute.Bool("dashboard.cached", true))
		return cached, nil
	}

	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	result, source, err := s.latestResult(ctx, user)
	if err != nil {
		return nil, err
	}

	gauge, err := bmi.NewGauge(result)
	if err != nil {
		return nil, fmt.Errorf("bmi gauge: %w", err)
	}

	todayProgress, err := s.progress.Today(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("today progress: %w", err)
	}

	summary := &Summary{
		UserID:    userID,
		FirstName: user.FirstName(),
		Date:      today.Format(pkg.DayLayout),
		BMI:       gauge,
		BMISource: source,
		Today:     todayProgress,
	}
	s.cache.Set(userID, today, summary)

	return summary, nil
}

func (s *Service) latestResult(ctx context.Context, user *profile.User) (bmi.Result, string, error) {
	latest, err := s.bmiRecords.Latest(ctx, user.ID)
	switch {
	case err == nil:
		return latest.Result, BMISourceHistory, nil
	case !errors.Is(err, history.ErrNoRecords):
		return bmi.Result{}, "", fmt.Errorf("latest bmi: %w", err)
	}

	result, err := bmi.Compute(user.Weight, user.Height)
	if err != nil {
		return bmi.Result{}, "", fmt.Errorf("profile bmi: %w", err)
	}
	return result, BMISourceProfile, nil
}
