package plans

type PlannedMeal struct {
	Meal
	Completed bool `json:"completed"`
}

type MealSection struct {
	MealType MealType      `json:"mealType"`
	Meals    []PlannedMeal `json:"meals"`
}

// DietSummary sums macros over completed meals only. TargetCalories covers the whole plan.
type DietSummary struct {
	TotalMeals       int `json:"totalMeals"`
	CompletedMeals   int `json:"completedMeals"`
	TargetCalories   int `json:"targetCalories"`
	ConsumedCalories int `json:"consumedCalories"`
	Protein          int `json:"protein"`
	Carbs            int `json:"carbs"`
	Fat              int `json:"fat"`
}

func (s *DietSummary) add(pm PlannedMeal) {
	s.TotalMeals++
	s.TargetCalories += pm.Calories
	if !pm.Completed {
		return
	}
	s.CompletedMeals++
	s.ConsumedCalories += pm.Calories
	s.Protein += pm.Protein
	s.Carbs += pm.Carbs
	s.Fat += pm.Fat
}

type DietPlan struct {
	UserID   int           `json:"userId"`
	Type     DietType      `json:"type"`
	Date     string        `json:"date"`
	Sections []MealSection `json:"sections"`
	Summary  DietSummary   `json:"summary"`
}

type PlannedExercise struct {
	Exercise
	Completed bool `json:"completed"`
}

type PlannedDay struct {
	WorkoutDay
	Date               string            `json:"date"`
	Exercises          []PlannedExercise `json:"exercises"`
	Completed          bool              `json:"completed"`
	CompletedExercises int               `json:"completedExercises"`
	CaloriesBurned     int               `json:"caloriesBurned"`
}

// summarize marks the day completed only when every exercise is. A day without exercises is never completed.
func (d *PlannedDay) summarize() {
	d.CompletedExercises = 0
	d.CaloriesBurned = 0
	for _, e := range d.Exercises {
		if e.Completed {
			d.CompletedExercises++
			d.CaloriesBurned += e.Calories
		}
	}
	d.Completed = len(d.Exercises) > 0 && d.CompletedExercises == len(d.Exercises)
}

type WorkoutSummary struct {
	TotalDays          int `json:"totalDays"`
	CompletedDays      int `json:"completedDays"`
	TotalExercises     int `json:"totalExercises"`
	CompletedExercises int `json:"completedExercises"`
	CaloriesBurned     int `json:"caloriesBurned"`
}

func (s *WorkoutSummary) add(d PlannedDay) {
	s.TotalDays++
	if d.Completed {
		s.CompletedDays++
	}
	s.TotalExercises += len(d.Exercises)
	s.CompletedExercises += d.CompletedExercises
	s.CaloriesBurned += d.CaloriesBurned
}

type WorkoutPlan struct {
	UserID    int            `json:"userId"`
	Type      WorkoutType    `json:"type"`
	WeekStart string         `json:"weekStart"`
	Days      []PlannedDay   `json:"days"`
	Summary   WorkoutSummary `json:"summary"`
}

type ToggleResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}
