//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/bmi"
	"github.com/2beens/fittrack/internal/bmi/history"
	"github.com/2beens/fittrack/internal/dashboard"
	"github.com/2beens/fittrack/internal/plans"
	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/progress"
	"github.com/2beens/fittrack/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any) (int, []byte) {
	t := s.T()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bodyReader)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) registerUser(ctx context.Context, weight, height float64) *profile.User {
	t := s.T()

	user := &profile.User{
		Email:             gofakeit.Email(),
		Name:              gofakeit.FirstName() + " " + gofakeit.LastName(),
		Age:               gofakeit.Number(18, 80),
		Gender:            profile.GenderFemale,
		Weight:            weight,
		Height:            height,
		FitnessGoal:       profile.GoalStayFit,
		WorkoutPreference: profile.WorkoutHome,
		DietPreference:    profile.DietVegan,
		FocusAreas:        []profile.FocusArea{profile.FocusLegs, profile.FocusAbs},
	}

	status, respBytes := s.doRequest(ctx, "POST", "/api/users/register", user)
	require.Equal(t, http.StatusCreated, status, string(respBytes))

	var added profile.User
	require.NoError(t, json.Unmarshal(respBytes, &added))
	require.Positive(t, added.ID)
	return &added
}

func (s *IntegrationTestSuite) TestUsers() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := s.registerUser(ctx, 70, 170)

	status, respBytes := s.doRequest(ctx, "GET", fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var fetched profile.User
	require.NoError(t, json.Unmarshal(respBytes, &fetched))
	assert.Equal(t, user.Email, fetched.Email)
	assert.ElementsMatch(t, user.FocusAreas, fetched.FocusAreas)

	status, _ = s.doRequest(ctx, "GET", "/api/users/email/"+user.Email, nil)
	assert.Equal(t, http.StatusOK, status)

	// duplicate email
	dup := *user
	dup.ID = 0
	status, _ = s.doRequest(ctx, "POST", "/api/users/register", dup)
	assert.Equal(t, http.StatusConflict, status)

	// invalid profile
	invalid := *user
	invalid.Email = gofakeit.Email()
	invalid.Age = 0
	status, respBytes = s.doRequest(ctx, "POST", "/api/users/register", invalid)
	require.Equal(t, http.StatusBadRequest, status)
	var validationResp profile.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(respBytes, &validationResp))
	assert.Contains(t, validationResp.Fields, "age")

	updated := fetched
	updated.Weight = 80
	status, respBytes = s.doRequest(ctx, "PUT", fmt.Sprintf("/api/users/%d", user.ID), updated)
	require.Equal(t, http.StatusOK, status, string(respBytes))

	// the weight change is recorded in the bmi history
	status, respBytes = s.doRequest(ctx, "GET", fmt.Sprintf("/api/bmi/user/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var records []history.RecordResponse
	require.NoError(t, json.Unmarshal(respBytes, &records))
	require.Len(t, records, 2)
	assert.Equal(t, 27.7, records[0].BMIValue)
	assert.Equal(t, 24.2, records[1].BMIValue)

	status, respBytes = s.doRequest(ctx, "DELETE", fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var deleteResp profile.DeleteUserResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
	assert.Equal(t, user.ID, deleteResp.DeletedID)

	status, _ = s.doRequest(ctx, "GET", fmt.Sprintf("/api/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = s.doRequest(ctx, "DELETE", fmt.Sprintf("/api/users/%d", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestBMI() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := s.registerUser(ctx, 50, 170)

	status, respBytes := s.doRequest(ctx, "POST", fmt.Sprintf("/api/bmi/calculate/%d", user.ID),
		history.CalculateRequest{WeightKg: 90, HeightCm: 170})
	require.Equal(t, http.StatusCreated, status, string(respBytes))

	var created history.RecordResponse
	require.NoError(t, json.Unmarshal(respBytes, &created))
	assert.Equal(t, 31.1, created.BMIValue)
	assert.Equal(t, bmi.CategoryObese, created.Category)
	assert.Equal(t, "Obese", created.Label)
	assert.Equal(t, bmi.ColorRed, created.ColorToken)

	status, respBytes = s.doRequest(ctx, "GET", fmt.Sprintf("/api/bmi/latest/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var latest history.RecordResponse
	require.NoError(t, json.Unmarshal(respBytes, &latest))
	assert.Equal(t, created.ID, latest.ID)

	status, respBytes = s.doRequest(ctx, "GET", fmt.Sprintf("/api/bmi/user/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var records []history.RecordResponse
	require.NoError(t, json.Unmarshal(respBytes, &records))
	require.Len(t, records, 2)
	assert.Equal(t, 31.1, records[0].BMIValue)
	assert.Equal(t, bmi.CategoryUnderweight, records[1].Category)

	status, _ = s.doRequest(ctx, "POST", fmt.Sprintf("/api/bmi/calculate/%d", user.ID),
		history.CalculateRequest{WeightKg: 0, HeightCm: 170})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.doRequest(ctx, "POST", "/api/bmi/calculate/999999",
		history.CalculateRequest{WeightKg: 70, HeightCm: 170})
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestBMIQuickCalculate_RateLimited() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	status, respBytes := s.doRequest(ctx, "POST", "/api/bmi/quick-calculate",
		history.CalculateRequest{WeightKg: 75, HeightCm: 170})
	require.Equal(t, http.StatusOK, status)

	var gauge bmi.Gauge
	require.NoError(t, json.Unmarshal(respBytes, &gauge))
	assert.Equal(t, 26.0, gauge.BMIValue)
	assert.Equal(t, bmi.CategoryOverweight, gauge.Category)
	assert.InDelta(t, 79.2, gauge.GaugeAngle, 1e-9)

	limited := false
	for i := 0; i < testQuickCalcRatePerMin+1; i++ {
		status, _ = s.doRequest(ctx, "POST", "/api/bmi/quick-calculate",
			history.CalculateRequest{WeightKg: 75, HeightCm: 170})
		if status == http.StatusTooManyRequests {
			limited = true
			break
		}
		require.Equal(t, http.StatusOK, status)
	}
	assert.True(t, limited)
}

func (s *IntegrationTestSuite) TestProgress() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := s.registerUser(ctx, 65, 165)
	today := pkg.Day(time.Now().UTC())
	yesterday := today.AddDate(0, 0, -1)

	status, respBytes := s.doRequest(ctx, "GET", fmt.Sprintf("/api/progress/user/%d/today", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var empty progress.Record
	require.NoError(t, json.Unmarshal(respBytes, &empty))
	assert.Zero(t, empty.ID)
	assert.Zero(t, empty.CaloriesConsumed)

	for _, update := range []map[string]any{
		{"date": yesterday.Format(pkg.DayLayout), "caloriesConsumed": 2000, "caloriesBurned": 300, "workoutCompleted": true},
		{"date": today.Format(pkg.DayLayout), "caloriesConsumed": 1500, "waterIntake": 5},
		{"date": today.Format(pkg.DayLayout), "caloriesBurned": 401},
	} {
		status, respBytes = s.doRequest(ctx, "POST", fmt.Sprintf("/api/progress/update/%d", user.ID), update)
		require.Equal(t, http.StatusOK, status, string(respBytes))
	}

	status, respBytes = s.doRequest(ctx, "GET", fmt.Sprintf("/api/progress/user/%d/today", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var todayRecord progress.Record
	require.NoError(t, json.Unmarshal(respBytes, &todayRecord))
	assert.Equal(t, 1500, todayRecord.CaloriesConsumed)
	assert.Equal(t, 401, todayRecord.CaloriesBurned)
	assert.Equal(t, 5, todayRecord.WaterIntake)
	assert.False(t, todayRecord.WorkoutCompleted)

	path := fmt.Sprintf("/api/progress/user/%d/range?startDate=%s&endDate=%s",
		user.ID, yesterday.Format(pkg.DayLayout), today.Format(pkg.DayLayout))
	status, respBytes = s.doRequest(ctx, "GET", path, nil)
	require.Equal(t, http.StatusOK, status)
	var ranged []progress.Record
	require.NoError(t, json.Unmarshal(respBytes, &ranged))
	require.Len(t, ranged, 2)
	assert.Equal(t, today.Format(pkg.DayLayout), ranged[0].Date.Format(pkg.DayLayout))

	path = fmt.Sprintf("/api/progress/user/%d/range?startDate=%s&endDate=%s",
		user.ID, today.Format(pkg.DayLayout), yesterday.Format(pkg.DayLayout))
	status, _ = s.doRequest(ctx, "GET", path, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, respBytes = s.doRequest(ctx, "GET", fmt.Sprintf("/api/progress/user/%d/stats", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var stats progress.Stats
	require.NoError(t, json.Unmarshal(respBytes, &stats))
	assert.Equal(t, progress.Stats{
		TotalCompletedWorkouts:  1,
		AvgCaloriesConsumed:     1750,
		AvgCaloriesBurned:       351,
		WorkoutStreakLast30Days: 1,
	}, stats)
}

func (s *IntegrationTestSuite) TestPlans() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := s.registerUser(ctx, 60, 168)
	date := "2026-10-21"

	status, respBytes := s.doRequest(ctx, "POST",
		fmt.Sprintf("/api/plans/diet/%d/meals/vg-bf-1/toggle?date=%s", user.ID, date), nil)
	require.Equal(t, http.StatusOK, status, string(respBytes))
	var toggled plans.ToggleResponse
	require.NoError(t, json.Unmarshal(respBytes, &toggled))
	assert.True(t, toggled.Completed)

	status, respBytes = s.doRequest(ctx, "GET", fmt.Sprintf("/api/plans/diet/%d?date=%s", user.ID, date), nil)
	require.Equal(t, http.StatusOK, status)
	var dietPlan plans.DietPlan
	require.NoError(t, json.Unmarshal(respBytes, &dietPlan))
	assert.Equal(t, plans.DietVegan, dietPlan.Type)
	assert.Equal(t, 1, dietPlan.Summary.CompletedMeals)
	assert.Equal(t, dietPlan.Sections[0].Meals[0].Calories, dietPlan.Summary.ConsumedCalories)

	// toggling again clears the flag
	status, respBytes = s.doRequest(ctx, "POST",
		fmt.Sprintf("/api/plans/diet/%d/meals/vg-bf-1/toggle?date=%s", user.ID, date), nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(respBytes, &toggled))
	assert.False(t, toggled.Completed)

	for _, exerciseID := range []string{"home-tue-1", "home-tue-2"} {
		status, _ = s.doRequest(ctx, "POST",
			fmt.Sprintf("/api/plans/workout/%d/exercises/%s/toggle?date=%s", user.ID, exerciseID, date), nil)
		require.Equal(t, http.StatusOK, status)
	}

	status, respBytes = s.doRequest(ctx, "GET", fmt.Sprintf("/api/plans/workout/%d?date=%s", user.ID, date), nil)
	require.Equal(t, http.StatusOK, status)
	var workoutPlan plans.WorkoutPlan
	require.NoError(t, json.Unmarshal(respBytes, &workoutPlan))
	assert.Equal(t, plans.WorkoutHome, workoutPlan.Type)
	require.Len(t, workoutPlan.Days, 5)
	assert.False(t, workoutPlan.Days[0].Completed)
	assert.True(t, workoutPlan.Days[1].Completed)
	assert.Equal(t, "2026-10-20", workoutPlan.Days[1].Date)
	assert.Equal(t, 1, workoutPlan.Summary.CompletedDays)

	status, _ = s.doRequest(ctx, "POST",
		fmt.Sprintf("/api/plans/workout/%d/exercises/no-such-exercise/toggle", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestDashboard() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	user := s.registerUser(ctx, 70, 170)

	getSummary := func() dashboard.Summary {
		status, respBytes := s.doRequest(ctx, "GET", fmt.Sprintf("/api/dashboard/%d", user.ID), nil)
		require.Equal(t, http.StatusOK, status, string(respBytes))
		var summary dashboard.Summary
		require.NoError(t, json.Unmarshal(respBytes, &summary))
		return summary
	}

	summary := getSummary()
	assert.Equal(t, user.FirstName(), summary.FirstName)
	assert.Equal(t, dashboard.BMISourceHistory, summary.BMISource)
	assert.Equal(t, 24.2, summary.BMI.BMIValue)
	assert.Equal(t, "Normal Weight", summary.BMI.Label)
	assert.Equal(t, bmi.ColorGreen, summary.BMI.ColorToken)
	assert.InDelta(t, 66.24, summary.BMI.GaugeAngle, 1e-9)

	// a new calculation invalidates the cached summary
	status, _ := s.doRequest(ctx, "POST", fmt.Sprintf("/api/bmi/calculate/%d", user.ID),
		history.CalculateRequest{WeightKg: 75, HeightCm: 170})
	require.Equal(t, http.StatusCreated, status)

	summary = getSummary()
	assert.Equal(t, 26.0, summary.BMI.BMIValue)
	assert.Equal(t, bmi.ColorYellow, summary.BMI.ColorToken)

	status, _ = s.doRequest(ctx, "POST", fmt.Sprintf("/api/progress/update/%d", user.ID),
		map[string]any{"waterIntake": 3})
	require.Equal(t, http.StatusOK, status)

	summary = getSummary()
	require.NotNil(t, summary.Today)
	assert.Equal(t, 3, summary.Today.WaterIntake)

	status, _ = s.doRequest(ctx, "GET", "/api/dashboard/999999", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// deleting the user drops the cached summary with it
	status, _ = s.doRequest(ctx, "DELETE", fmt.Sprintf("/api/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.doRequest(ctx, "GET", fmt.Sprintf("/api/dashboard/%d", user.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}
