package progress

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/2beens/fittrack/pkg"
)

// StatsWindow is the number of most recent records the averages are computed over.
const StatsWindow = 30

// Date is a calendar day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{pkg.Day(t)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(pkg.DayLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	t, err := time.Parse(pkg.DayLayout, s)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	d.Time = t
	return nil
}

// Record is one user's progress for a single day.
type Record struct {
	ID               int       `json:"id,omitempty"`
	UserID           int       `json:"userId"`
	Date             Date      `json:"date"`
	CaloriesConsumed int       `json:"caloriesConsumed"`
	CaloriesBurned   int       `json:"caloriesBurned"`
	WorkoutCompleted bool      `json:"workoutCompleted"`
	WaterIntake      int       `json:"waterIntake"`
	MealsCompleted   int       `json:"mealsCompleted"`
	CurrentWeight    *float64  `json:"currentWeight,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Patch holds the fields of an update. Nil fields keep their stored value.
type Patch struct {
	CaloriesConsumed *int     `json:"caloriesConsumed" validate:"omitempty,min=0,max=20000"`
	CaloriesBurned   *int     `json:"caloriesBurned" validate:"omitempty,min=0,max=20000"`
	WorkoutCompleted *bool    `json:"workoutCompleted"`
	WaterIntake      *int     `json:"waterIntake" validate:"omitempty,min=0,max=50"`
	MealsCompleted   *int     `json:"mealsCompleted" validate:"omitempty,min=0,max=20"`
	CurrentWeight    *float64 `json:"currentWeight" validate:"omitempty,min=1,max=500"`
}

type UpdateRequest struct {
	// Date defaults to today when empty.
	Date string `json:"date"`
	Patch
}

type Stats struct {
	TotalCompletedWorkouts  int   `json:"totalCompletedWorkouts"`
	AvgCaloriesConsumed     int64 `json:"avgCaloriesConsumed"`
	AvgCaloriesBurned       int64 `json:"avgCaloriesBurned"`
	WorkoutStreakLast30Days int   `json:"workoutStreakLast30Days"`
}

// ComputeStats aggregates the most recent records (at most StatsWindow of them are expected).
// The "streak" counts completed workouts among those records, not consecutive days.
func ComputeStats(totalCompletedWorkouts int, recent []*Record) Stats {
	stats := Stats{TotalCompletedWorkouts: totalCompletedWorkouts}
	if len(recent) == 0 {
		return stats
	}

	var consumed, burned int
	for _, r := range recent {
		consumed += r.CaloriesConsumed
		burned += r.CaloriesBurned
		if r.WorkoutCompleted {
			stats.WorkoutStreakLast30Days++
		}
	}

	n := float64(len(recent))
	stats.AvgCaloriesConsumed = int64(math.Round(float64(consumed) / n))
	stats.AvgCaloriesBurned = int64(math.Round(float64(burned) / n))
	return stats
}
