package plans

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	//go:embed catalog/diet.toml
	dietCatalogTOML string
	//go:embed catalog/workout.toml
	workoutCatalogTOML string
)

type DietType string

const (
	DietVeg    DietType = "VEG"
	DietNonVeg DietType = "NON_VEG"
	DietVegan  DietType = "VEGAN"
)

var DietTypes = []DietType{DietVeg, DietNonVeg, DietVegan}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes is the order in which meal sections are served during the day.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

type WorkoutType string

const (
	WorkoutHome WorkoutType = "home"
	WorkoutGym  WorkoutType = "gym"
)

var WorkoutTypes = []WorkoutType{WorkoutHome, WorkoutGym}

type Meal struct {
	ID          string `toml:"id" json:"id"`
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Calories    int    `toml:"calories" json:"calories"`
	Protein     int    `toml:"protein" json:"protein"`
	Carbs       int    `toml:"carbs" json:"carbs"`
	Fat         int    `toml:"fat" json:"fat"`
	PrepMinutes int    `toml:"prep_minutes" json:"prepMinutes"`
	Time        string `toml:"time" json:"time"`
}

type Exercise struct {
	ID              string `toml:"id" json:"id"`
	Name            string `toml:"name" json:"name"`
	BodyPart        string `toml:"body_part" json:"bodyPart"`
	Difficulty      string `toml:"difficulty" json:"difficulty"`
	Sets            int    `toml:"sets" json:"sets"`
	Reps            string `toml:"reps" json:"reps"`
	DurationMinutes int    `toml:"duration_minutes" json:"durationMinutes"`
	Calories        int    `toml:"calories" json:"calories"`
	RestSeconds     int    `toml:"rest_seconds" json:"restSeconds"`
	Description     string `toml:"description" json:"description"`
}

type WorkoutDay struct {
	ID        string     `toml:"id" json:"id"`
	Day       string     `toml:"day" json:"day"`
	Focus     string     `toml:"focus" json:"focus"`
	Exercises []Exercise `toml:"exercises" json:"-"`

	weekday time.Weekday
}

func (d WorkoutDay) Weekday() time.Weekday {
	return d.weekday
}

type mealRef struct {
	dietType DietType
	mealType MealType
	meal     Meal
}

type exerciseRef struct {
	workoutType WorkoutType
	day         WorkoutDay
	exercise    Exercise
}

// Catalog holds the static diet and workout plans, indexed by item id.
type Catalog struct {
	diets     map[DietType]map[MealType][]Meal
	workouts  map[WorkoutType][]WorkoutDay
	meals     map[string]mealRef
	exercises map[string]exerciseRef
}

// LoadCatalog decodes the embedded plan catalogs.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(dietCatalogTOML, workoutCatalogTOML)
}

func ParseCatalog(dietTOML, workoutTOML string) (*Catalog, error) {
	var rawDiets map[string]map[string][]Meal
	if _, err := toml.Decode(dietTOML, &rawDiets); err != nil {
		return nil, fmt.Errorf("decode diet catalog: %w", err)
	}
	var rawWorkouts map[string][]WorkoutDay
	if _, err := toml.Decode(workoutTOML, &rawWorkouts); err != nil {
		return nil, fmt.Errorf("decode workout catalog: %w", err)
	}

	c := &Catalog{
		diets:     make(map[DietType]map[MealType][]Meal, len(rawDiets)),
		workouts:  make(map[WorkoutType][]WorkoutDay, len(rawWorkouts)),
		meals:     map[string]mealRef{},
		exercises: map[string]exerciseRef{},
	}

	for rawDietType, sections := range rawDiets {
		dietType, err := ParseDietType(rawDietType)
		if err != nil {
			return nil, fmt.Errorf("diet catalog: %w", err)
		}
		c.diets[dietType] = make(map[MealType][]Meal, len(sections))
		for rawMealType, meals := range sections {
			mealType := MealType(rawMealType)
			if !knownMealType(mealType) {
				return nil, fmt.Errorf("diet catalog: unknown meal type [%s]", rawMealType)
			}
			for _, m := range meals {
				if m.ID == "" {
					return nil, fmt.Errorf("diet catalog: meal without id in %s/%s", dietType, mealType)
				}
				if _, ok := c.meals[m.ID]; ok {
					return nil, fmt.Errorf("diet catalog: duplicate meal id [%s]", m.ID)
				}
				c.meals[m.ID] = mealRef{dietType: dietType, mealType: mealType, meal: m}
			}
			c.diets[dietType][mealType] = meals
		}
	}

	for rawWorkoutType, days := range rawWorkouts {
		workoutType, err := ParseWorkoutType(rawWorkoutType)
		if err != nil {
			return nil, fmt.Errorf("workout catalog: %w", err)
		}
		for i := range days {
			weekday, ok := weekdays[days[i].Day]
			if !ok {
				return nil, fmt.Errorf("workout catalog: unknown day [%s]", days[i].Day)
			}
			days[i].weekday = weekday
			for _, e := range days[i].Exercises {
				if e.ID == "" {
					return nil, fmt.Errorf("workout catalog: exercise without id in %s", days[i].ID)
				}
				if _, ok := c.exercises[e.ID]; ok {
					return nil, fmt.Errorf("workout catalog: duplicate exercise id [%s]", e.ID)
				}
				c.exercises[e.ID] = exerciseRef{workoutType: workoutType, day: days[i], exercise: e}
			}
		}
		c.workouts[workoutType] = days
	}

	for _, dt := range DietTypes {
		if _, ok := c.diets[dt]; !ok {
			return nil, fmt.Errorf("diet catalog: missing diet type [%s]", dt)
		}
	}
	for _, wt := range WorkoutTypes {
		if _, ok := c.workouts[wt]; !ok {
			return nil, fmt.Errorf("workout catalog: missing workout type [%s]", wt)
		}
	}

	return c, nil
}

// Meals returns the meals of a diet type in serving order.
func (c *Catalog) Meals(dietType DietType, mealType MealType) []Meal {
	return c.diets[dietType][mealType]
}

func (c *Catalog) Days(workoutType WorkoutType) []WorkoutDay {
	return c.workouts[workoutType]
}

func (c *Catalog) lookupMeal(mealID string) (mealRef, bool) {
	ref, ok := c.meals[mealID]
	return ref, ok
}

func (c *Catalog) lookupExercise(exerciseID string) (exerciseRef, bool) {
	ref, ok := c.exercises[exerciseID]
	return ref, ok
}

var (
	ErrUnknownDietType    = errors.New("unknown diet type")
	ErrUnknownWorkoutType = errors.New("unknown workout type")
)

func ParseDietType(s string) (DietType, error) {
	for _, dt := range DietTypes {
		if string(dt) == s {
			return dt, nil
		}
	}
	return "", fmt.Errorf("%w: [%s]", ErrUnknownDietType, s)
}

func ParseWorkoutType(s string) (WorkoutType, error) {
	for _, wt := range WorkoutTypes {
		if string(wt) == s {
			return wt, nil
		}
	}
	return "", fmt.Errorf("%w: [%s]", ErrUnknownWorkoutType, s)
}

func knownMealType(mt MealType) bool {
	for _, known := range MealTypes {
		if known == mt {
			return true
		}
	}
	return false
}

var weekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}
