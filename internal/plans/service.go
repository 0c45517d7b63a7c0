package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=plans_test

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMealNotFound     = errors.New("meal not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type completionStore interface {
	Completed(ctx context.Context, key string) (map[string]bool, error)
	Toggle(ctx context.Context, key, id string) (bool, error)
}

type profileGetter interface {
	Get(ctx context.Context, id int) (*profile.User, error)
}

type Service struct {
	catalog  *Catalog
	store    completionStore
	profiles profileGetter
}

func NewService(catalog *Catalog, store completionStore, profiles profileGetter) *Service {
	return &Service{
		catalog:  catalog,
		store:    store,
		profiles: profiles,
	}
}

// DietPlan builds the user's meal plan for the day. An empty diet type falls back to the profile's diet preference.
func (s *Service) DietPlan(ctx context.Context, userID int, dietType DietType, day time.Time) (_ *DietPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.diet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if dietType == "" {
		dietType = DefaultDietType(user.DietPreference)
	}
	span.SetAttributes(attribute.String("plans.diet_type", string(dietType)))

	day = pkg.Day(day)
	completed, err := s.store.Completed(ctx, DietKey(userID, dietType, day))
	if err != nil {
		return nil, fmt.Errorf("diet plan completion: %w", err)
	}

	plan := &DietPlan{
		UserID:   userID,
		Type:     dietType,
		Date:     day.Format(pkg.DayLayout),
		Sections: make([]MealSection, 0, len(MealTypes)),
	}
	for _, mealType := range MealTypes {
		section := MealSection{
			MealType: mealType,
			Meals:    []PlannedMeal{},
		}
		for _, meal := range s.catalog.Meals(dietType, mealType) {
			pm := PlannedMeal{Meal: meal, Completed: completed[meal.ID]}
			section.Meals = append(section.Meals, pm)
			plan.Summary.add(pm)
		}
		plan.Sections = append(plan.Sections, section)
	}

	return plan, nil
}

// WorkoutPlan builds the user's schedule for the week containing day.
// An empty workout type falls back to the profile's workout preference.
func (s *Service) WorkoutPlan(ctx context.Context, userID int, workoutType WorkoutType, day time.Time) (_ *WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if workoutType == "" {
		workoutType = DefaultWorkoutType(user.WorkoutPreference)
	}
	span.SetAttributes(attribute.String("plans.workout_type", string(workoutType)))

	weekStart := WeekStart(day)
	plan := &WorkoutPlan{
		UserID:    userID,
		Type:      workoutType,
		WeekStart: weekStart.Format(pkg.DayLayout),
		Days:      []PlannedDay{},
	}

	for _, wd := range s.catalog.Days(workoutType) {
		date := dateInWeek(weekStart, wd.Weekday())
		completed, err := s.store.Completed(ctx, WorkoutKey(userID, workoutType, date))
		if err != nil {
			return nil, fmt.Errorf("workout plan completion: %w", err)
		}

		pd := PlannedDay{
			WorkoutDay: wd,
			Date:       date.Format(pkg.DayLayout),
			Exercises:  make([]PlannedExercise, 0, len(wd.Exercises)),
		}
		for _, e := range wd.Exercises {
			pd.Exercises = append(pd.Exercises, PlannedExercise{Exercise: e, Completed: completed[e.ID]})
		}
		pd.summarize()
		plan.Summary.add(pd)
		plan.Days = append(plan.Days, pd)
	}

	return plan, nil
}

// ToggleMeal flips the completion flag of a meal for the day and reports the new flag.
// An empty diet type resolves to the diet type the meal belongs to.
func (s *Service) ToggleMeal(ctx context.Context, userID int, dietType DietType, mealID string, day time.Time) (_ ToggleResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.togglemeal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.String("plans.meal_id", mealID))

	ref, ok := s.catalog.lookupMeal(mealID)
	if !ok || (dietType != "" && ref.dietType != dietType) {
		return ToggleResponse{}, ErrMealNotFound
	}

	if _, err := s.user(ctx, userID); err != nil {
		return ToggleResponse{}, err
	}

	day = pkg.Day(day)
	completed, err := s.store.Toggle(ctx, DietKey(userID, ref.dietType, day), mealID)
	if err != nil {
		return ToggleResponse{}, fmt.Errorf("toggle meal %s: %w", mealID, err)
	}
	return ToggleResponse{ID: mealID, Date: day.Format(pkg.DayLayout), Completed: completed}, nil
}

// ToggleExercise flips the completion flag of an exercise. The flag is stored against the date of the
// exercise's weekday within the week containing day.
func (s *Service) ToggleExercise(ctx context.Context, userID int, workoutType WorkoutType, exerciseID string, day time.Time) (_ ToggleResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.toggleexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID), attribute.String("plans.exercise_id", exerciseID))

	ref, ok := s.catalog.lookupExercise(exerciseID)
	if !ok || (workoutType != "" && ref.workoutType != workoutType) {
		return ToggleResponse{}, ErrExerciseNotFound
	}

	if _, err := s.user(ctx, userID); err != nil {
		return ToggleResponse{}, err
	}

	date := dateInWeek(WeekStart(day), ref.day.Weekday())
	completed, err := s.store.Toggle(ctx, WorkoutKey(userID, ref.workoutType, date), exerciseID)
	if err != nil {
		return ToggleResponse{}, fmt.Errorf("toggle exercise %s: %w", exerciseID, err)
	}
	return ToggleResponse{ID: exerciseID, Date: date.Format(pkg.DayLayout), Completed: completed}, nil
}

func (s *Service) user(ctx context.Context, userID int) (*profile.User, error) {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return user, nil
}

func DefaultDietType(pref profile.DietPreference) DietType {
	switch pref {
	case profile.DietNonVeg:
		return DietNonVeg
	case profile.DietVegan:
		return DietVegan
	default:
		return DietVeg
	}
}

func DefaultWorkoutType(pref profile.WorkoutPreference) WorkoutType {
	if pref == profile.WorkoutHome {
		return WorkoutHome
	}
	return WorkoutGym
}

// WeekStart returns the Monday of the week containing day, at midnight UTC.
func WeekStart(day time.Time) time.Time {
	day = pkg.Day(day)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func dateInWeek(weekStart time.Time, weekday time.Weekday) time.Time {
	return weekStart.AddDate(0, 0, (int(weekday)+6)%7)
}
