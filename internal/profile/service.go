package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profile_test

type usersRepo interface {
	Add(ctx context.Context, user *User) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
}

// bmiRecorder stores a BMI record for the user's current measurements.
type bmiRecorder interface {
	Record(ctx context.Context, userID int, weightKg, heightCm float64) error
}

// summaryInvalidator drops cached per-user summaries built from profile data.
type summaryInvalidator interface {
	Invalidate(userID int)
}

type Service struct {
	repo        usersRepo
	bmiRecorder bmiRecorder
	invalidator summaryInvalidator
	now         func() time.Time
}

func NewService(repo usersRepo, bmiRecorder bmiRecorder, invalidator summaryInvalidator) *Service {
	return &Service{
		repo:        repo,
		bmiRecorder: bmiRecorder,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// Register validates and stores a new user, then records the initial BMI from the profile measurements.
func (s *Service) Register(ctx context.Context, user *User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user.Email = normalizeEmail(user.Email)
	user.Name = strings.TrimSpace(user.Name)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	_, err = s.repo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("check email: %w", err)
	}

	now := s.now().UTC()
	user.ID = 0
	user.CreatedAt = now
	user.UpdatedAt = now

	added, err := s.repo.Add(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	span.SetAttributes(attribute.Int("user.id", added.ID))

	// the user exists at this point, a missing BMI record is not worth failing registration
	if err := s.bmiRecorder.Record(ctx, added.ID, added.Weight, added.Height); err != nil {
		log.Errorf("register user %d, record initial bmi: %s", added.ID, err)
	}

	return added, nil
}

func (s *Service) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.Get(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.get.email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// Update replaces the profile of an existing user. A changed weight or height is recorded as a new BMI entry.
func (s *Service) Update(ctx context.Context, id int, user *User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.ID = id
	user.Email = normalizeEmail(user.Email)
	user.Name = strings.TrimSpace(user.Name)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if user.Email != existing.Email {
		other, err := s.repo.GetByEmail(ctx, user.Email)
		switch {
		case err == nil && other.ID != id:
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, ErrUserNotFound):
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(id)

	if user.Weight != existing.Weight || user.Height != existing.Height {
		if err := s.bmiRecorder.Record(ctx, id, user.Weight, user.Height); err != nil {
			log.Errorf("update user %d, record bmi: %s", id, err)
		}
	}

	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.Invalidate(id)
	return nil
}

func (s *Service) Exists(ctx context.Context, id int) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
