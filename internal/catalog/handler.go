package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

type catalogService interface {
	AddCustom(ctx context.Context, userID, name string, muscles []string) (*CustomExercise, error)
	ListCustom(ctx context.Context, userID string) ([]CustomExercise, error)
	DeleteCustom(ctx context.Context, userID string, id int) error
	Options(ctx context.Context, userID string) ([]Option, error)
}

type addCustomRequest struct {
	Name    string     `json:"name"`
	Muscles MuscleList `json:"muscles"`
}

type Handler struct {
	service catalogService
}

func NewHandler(service catalogService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercises/options", handler.HandleOptions).Methods("GET", "OPTIONS").Name("exercise-options")
	r.HandleFunc("/exercises/custom", handler.HandleListCustom).Methods("GET", "OPTIONS").Name("list-custom-exercises")
	r.HandleFunc("/exercises/custom", handler.HandleAddCustom).Methods("POST", "OPTIONS").Name("new-custom-exercise")
	r.HandleFunc("/exercises/custom/{id}", handler.HandleDeleteCustom).Methods("DELETE", "OPTIONS").Name("delete-custom-exercise")
}

func (handler *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.options")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	options, err := handler.service.Options(ctx, userID)
	if err != nil {
		log.Errorf("get exercise options: %s", err)
		http.Error(w, "failed to load exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, options)
}

func (handler *Handler) HandleListCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.listCustom")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exercises, err := handler.service.ListCustom(ctx, userID)
	if err != nil {
		log.Errorf("list custom exercises: %s", err)
		http.Error(w, "failed to load custom exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, exercises)
}

func (handler *Handler) HandleAddCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.addCustom")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req addCustomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid exercise json", http.StatusBadRequest)
		return
	}

	added, err := handler.service.AddCustom(ctx, userID, req.Name, req.Muscles)
	if err != nil {
		if errors.Is(err, ErrInvalidExercise) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add custom exercise: %s", err)
		http.Error(w, "failed to add exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, added)
}

func (handler *Handler) HandleDeleteCustom(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.deleteCustom")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid exercise id", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteCustom(ctx, userID, id); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete custom exercise %d: %s", id, err)
		http.Error(w, "failed to delete exercise", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}
