package progress

import (
	"encoding/json"
	"errors"
	"net/http"

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
	r.HandleFunc("/api/progress/update/{userId}", h.HandleUpdate).Methods("POST", "OPTIONS").Name("progress-update")
	r.HandleFunc("/api/progress/user/{userId}", h.HandleList).Methods("GET", "OPTIONS").Name("progress-list")
	r.HandleFunc("/api/progress/user/{userId}/today", h.HandleToday).Methods("GET", "OPTIONS").Name("progress-today")
	r.HandleFunc("/api/progress/user/{userId}/range", h.HandleRange).Methods("GET", "OPTIONS").Name("progress-range")
	r.HandleFunc("/api/progress/user/{userId}/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("progress-stats")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.update")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update progress, unmarshal json params: %s", err)
		http.Error(w, "update progress failed", http.StatusBadRequest)
		return
	}

	day, err := pkg.ParseDay(req.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	record, err := h.service.Update(ctx, userID, day, req.Patch)
	if err != nil {
		writeServiceError(w, "update progress", err)
		return
	}

	pkg.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	records, err := h.service.List(ctx, userID)
	if err != nil {
		writeServiceError(w, "list progress", err)
		return
	}

	pkg.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.today")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	record, err := h.service.Today(ctx, userID)
	if err != nil {
		writeServiceError(w, "today progress", err)
		return
	}

	pkg.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.range")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		http.Error(w, "startDate and endDate are required", http.StatusBadRequest)
		return
	}

	from, err := pkg.ParseDay(startDate)
	if err != nil {
		http.Error(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := pkg.ParseDay(endDate)
	if err != nil {
		http.Error(w, "invalid endDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	records, err := h.service.Range(ctx, userID, from, to)
	if err != nil {
		writeServiceError(w, "progress range", err)
		return
	}

	pkg.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.stats")
	defer span.End()

	userID, err := pkg.IntPathVar(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	stats, err := h.service.Stats(ctx, userID)
	if err != nil {
		writeServiceError(w, "progress stats", err)
		return
	}

	pkg.WriteJSON(w, stats, http.StatusOK)
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	var invalidPatchErr *InvalidPatchError
	switch {
	case errors.As(err, &invalidPatchErr):
		http.Error(w, invalidPatchErr.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}
