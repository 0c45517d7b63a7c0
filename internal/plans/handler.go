package plans

import (
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/api/plans/diet/{userId}", h.HandleDietPlan).Methods("GET", "OPTIONS").Name("plans-diet")
	r.HandleFunc("/api/plans/diet/{userId}/meals/{mealId}/toggle", h.HandleToggleMeal).Methods("POST", "OPTIONS").Name("plans-diet-toggle")
	r.HandleFunc("/api/plans/workout/{userId}", h.HandleWorkoutPlan).Methods("GET", "OPTIONS").Name("plans-workout")
	r.HandleFunc("/api/plans/workout/{userId}/exercises/{exerciseId}/toggle", h.HandleToggleExercise).Methods("POST", "OPTIONS").Name("plans-workout-toggle")
}

func (h *Handler) HandleDietPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.diet")
	defer span.End()

	userID, dietType, day, ok := parseDietParams(w, r)
	if !ok {
		return
	}

	plan, err := h.service.DietPlan(ctx, userID, dietType, day)
	if err != nil {
		writeServiceError(w, "diet plan", err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (h *Handler) HandleToggleMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.togglemeal")
	defer span.End()

	userID, dietType, day, ok := parseDietParams(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ToggleMeal(ctx, userID, dietType, mux.Vars(r)["mealId"], day)
	if err != nil {
		writeServiceError(w, "toggle meal", err)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.workout")
	defer span.End()

	userID, workoutType, day, ok := parseWorkoutParams(w, r)
	if !ok {
		return
	}

	plan, err := h.service.WorkoutPlan(ctx, userID, workoutType, day)
	if err != nil {
		writeServiceError(w, "workout plan", err)
		return
	}

	pkg.WriteJSON(w, plan, http.StatusOK)
}

func (h *Handler) HandleToggleExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.toggleexercise")
	defer span.End()

	userID, workoutType, day, ok := parseWorkoutParams(w, r)
	if !ok {
		return
	}

	resp, err := h.service.ToggleExercise(ctx, userID, workoutType, mux.Vars(r)["exerciseId"], day)
	if err != nil {
		writeServiceError(w, "toggle exercise", err)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

// parseDietParams reads the user id and the optional type and date query params.
func parseDietParams(w http.ResponseWriter, r *http.Request) (int, DietType, time.Time, bool) {
	userID, day, ok := parseUserAndDay(w, r)
	if !ok {
		return 0, "", time.Time{}, false
	}

	var dietType DietType
	if rawType := r.URL.Query().Get("type"); rawType != "" {
		dt, err := ParseDietType(rawType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return 0, "", time.Time{}, false
		}
		dietType = dt
	}

	return userID, dietType, day, true
}

func parseWorkoutParams(w http.ResponseWriter, r *http.Request) (int, WorkoutType, time.Time, bool) {
	userID, day, ok := parseUserAndDay(w, r)
	if !ok {
		return 0, "", time.Time{}, false
	}

	var workoutType WorkoutType
	if rawType := r.URL.Query().Get("type"); rawType != "" {
		wt, err := ParseWorkoutType(rawType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return 0, "", time.Time{}, false
		}
		workoutType = wt
	}

	return userID, workoutType, day, true
}

func parseUserAndDay(w http.ResponseWriter, r *http.Request) (int, time.Time, bool) {
	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return 0, time.Time{}, false
	}

	day, err := pkg.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		log.Tracef("plans: %s", err)
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return 0, time.Time{}, false
	}

	return userID, day, true
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrMealNotFound):
		http.Error(w, "meal not found", http.StatusNotFound)
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}
