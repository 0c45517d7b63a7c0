package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type DeleteUserResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/api/users/register", h.HandleRegister).Methods("POST", "OPTIONS").Name("users-register")
	r.HandleFunc("/api/users/email/{email}", h.HandleGetByEmail).Methods("GET", "OPTIONS").Name("users-get-email")
	r.HandleFunc("/api/users/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("users-get")
	r.HandleFunc("/api/users/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("users-update")
	r.HandleFunc("/api/users/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("users-delete")
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var user User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Tracef("register user, unmarshal json params: %s", err)
		http.Error(w, "register user failed", http.StatusBadRequest)
		return
	}

	added, err := h.service.Register(ctx, &user)
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.service.Get(ctx, id)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) HandleGetByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get.email")
	defer span.End()

	email := mux.Vars(r)["email"]
	if email == "" {
		http.Error(w, "email missing", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetByEmail(ctx, email)
	if err != nil {
		writeServiceError(w, "get user by email", err)
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var user User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Tracef("update user, unmarshal json params: %s", err)
		http.Error(w, "update user failed", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(ctx, id, &user)
	if err != nil {
		writeServiceError(w, "update user", err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.delete")
	defer span.End()

	id, err := pkg.IntPathVar(r, "id")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		writeServiceError(w, "delete user", err)
		return
	}

	pkg.WriteJSON(w, DeleteUserResponse{DeletedID: id}, http.StatusOK)
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		pkg.WriteJSON(w, ValidationErrorResponse{
			Error:  "invalid user profile",
			Fields: validationErr.Fields,
		}, http.StatusBadRequest)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, "email already registered", http.StatusConflict)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, op+" failed", http.StatusInternalServerError)
	}
}
