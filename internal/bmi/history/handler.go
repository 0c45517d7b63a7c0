package history

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/bmi"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
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

// SetupRoutes registers the BMI routes. Quick calculate is public, so it is rate limited per client IP.
func (h *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	quickCalcAllowedPerMin int,
) {
	r.HandleFunc("/api/bmi/calculate/{userId}", h.HandleCalculate).Methods("POST", "OPTIONS").Name("bmi-calculate")
	r.HandleFunc("/api/bmi/user/{userId}", h.HandleHistory).Methods("GET", "OPTIONS").Name("bmi-history")
	r.HandleFunc("/api/bmi/latest/{userId}", h.HandleLatest).Methods("GET", "OPTIONS").Name("bmi-latest")

	quickCalc := middleware.RateLimit(rateLimiter, "bmi-quick-calc", quickCalcAllowedPerMin, metricsManager)(
		http.HandlerFunc(h.HandleQuickCalculate),
	)
	r.Handle("/api/bmi/quick-calculate", quickCalc).Methods("POST", "OPTIONS").Name("bmi-quick-calculate")
}

func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bmi.calculate")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	req, ok := decodeCalculateRequest(w, r)
	if !ok {
		return
	}

	record, err := h.service.Calculate(ctx, userID, req.WeightKg, req.HeightCm)
	if err != nil {
		writeServiceError(w, "calculate bmi", err)
		return
	}

	resp, err := NewRecordResponse(record)
	if err != nil {
		log.Errorf("calculate bmi: %s", err)
		http.Error(w, "calculate bmi failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bmi.history")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	records, err := h.service.History(ctx, userID)
	if err != nil {
		writeServiceError(w, "bmi history", err)
		return
	}

	resp := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		rr, err := NewRecordResponse(rec)
		if err != nil {
			log.Errorf("bmi history: %s", err)
			http.Error(w, "bmi history failed", http.StatusInternalServerError)
			return
		}
		resp = append(resp, rr)
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bmi.latest")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	record, err := h.service.Latest(ctx, userID)
	if err != nil {
		writeServiceError(w, "latest bmi", err)
		return
	}

	resp, err := NewRecordResponse(record)
	if err != nil {
		log.Errorf("latest bmi: %s", err)
		http.Error(w, "latest bmi failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleQuickCalculate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.bmi.quickcalculate")
	defer span.End()

	req, ok := decodeCalculateRequest(w, r)
	if !ok {
		return
	}

	gauge, err := h.service.QuickCalculate(req.WeightKg, req.HeightCm)
	if err != nil {
		writeServiceError(w, "quick calculate bmi", err)
		return
	}

	pkg.WriteJSON(w, gauge, http.StatusOK)
}

func decodeCalculateRequest(w http.ResponseWriter, r *http.Request) (CalculateRequest, bool) {
	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return CalculateRequest{}, false
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("calculate bmi, unmarshal json params: %s", err)
		http.Error(w, "invalid bmi calculation request", http.StatusBadRequest)
		return CalculateRequest{}, false
	}

	return req, true
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	var invalidInputErr *bmi.InvalidInputError
	switch {
	case errors.As(err, &invalidInputErr):
		http.Error(w, invalidInputErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrNoRecords):
		http.Error(w, "no bmi records found", http.StatusNotFound)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}
