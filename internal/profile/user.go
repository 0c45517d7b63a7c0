package profile

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type FitnessGoal string

const (
	GoalLoseWeight  FitnessGoal = "LOSE_WEIGHT"
	GoalBuildMuscle FitnessGoal = "BUILD_MUSCLE"
	GoalStayFit     FitnessGoal = "STAY_FIT"
)

type WorkoutPreference string

const (
	WorkoutHome WorkoutPreference = "HOME"
	WorkoutGym  WorkoutPreference = "GYM"
	WorkoutBoth WorkoutPreference = "BOTH"
)

type DietPreference string

const (
	DietVeg    DietPreference = "VEG"
	DietNonVeg DietPreference = "NON_VEG"
	DietVegan  DietPreference = "VEGAN"
)

type FocusArea string

const (
	FocusFullBody  FocusArea = "FULL_BODY"
	FocusArms      FocusArea = "ARMS"
	FocusChest     FocusArea = "CHEST"
	FocusAbs       FocusArea = "ABS"
	FocusLegs      FocusArea = "LEGS"
	FocusBack      FocusArea = "BACK"
	FocusShoulders FocusArea = "SHOULDERS"
	FocusGlutes    FocusArea = "GLUTES"
)

type User struct {
	ID                int               `json:"id"`
	Email             string            `json:"email" validate:"required,email,max=255"`
	Name              string            `json:"name" validate:"required,max=100"`
	Age               int               `json:"age" validate:"min=1,max=120"`
	Gender            Gender            `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Weight            float64           `json:"weight" validate:"min=1,max=500"`
	Height            float64           `json:"height" validate:"min=50,max=300"`
	FitnessGoal       FitnessGoal       `json:"fitnessGoal" validate:"required,oneof=LOSE_WEIGHT BUILD_MUSCLE STAY_FIT"`
	WorkoutPreference WorkoutPreference `json:"workoutPreference" validate:"required,oneof=HOME GYM BOTH"`
	DietPreference    DietPreference    `json:"dietPreference" validate:"required,oneof=VEG NON_VEG VEGAN"`
	FocusAreas        []FocusArea       `json:"focusAreas" validate:"unique,dive,oneof=FULL_BODY ARMS CHEST ABS LEGS BACK SHOULDERS GLUTES"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// FirstName is the first word of the user's name, used in greetings.
func (u *User) FirstName() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
