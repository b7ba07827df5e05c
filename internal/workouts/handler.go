package workouts

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	GetDay(ctx context.Context, userID, date string) (*DaySessionRecord, error)
	ListDays(ctx context.Context, userID, from, to string) ([]DaySessionRecord, error)
	CalendarDates(ctx context.Context, userID, month string) ([]string, error)
	SaveSession(ctx context.Context, userID, date string, session WorkoutSession, index int) (*DaySessionRecord, error)
	DeleteSession(ctx context.Context, userID, date string, index int) (*DaySessionRecord, error)
	ImportDays(ctx context.Context, userID string, rawDays []json.RawMessage) (*ImportResult, error)
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts/days", handler.HandleListDays).Methods("GET", "OPTIONS").Name("list-workout-days")
	r.HandleFunc("/workouts/days/import", handler.HandleImport).Methods("POST", "OPTIONS").Name("import-workout-days")
	r.HandleFunc("/workouts/days/{date}", handler.HandleGetDay).Methods("GET", "OPTIONS").Name("get-workout-day")
	r.HandleFunc("/workouts/days/{date}/sessions", handler.HandleAddSession).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/workouts/days/{date}/sessions/{index}", handler.HandleUpdateSession).Methods("PUT", "OPTIONS").Name("update-session")
	r.HandleFunc("/workouts/days/{date}/sessions/{index}", handler.HandleDeleteSession).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/workouts/calendar/{month}", handler.HandleCalendar).Methods("GET", "OPTIONS").Name("workouts-calendar")
}

func (handler *Handler) HandleListDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listDays")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	days, err := handler.service.ListDays(ctx, userID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		handler.writeServiceError(w, "list workout days", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, days)
}

func (handler *Handler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.getDay")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	day, err := handler.service.GetDay(ctx, userID, mux.Vars(r)["date"])
	if err != nil {
		handler.writeServiceError(w, "get workout day", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, day)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.calendar")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	dates, err := handler.service.CalendarDates(ctx, userID, mux.Vars(r)["month"])
	if err != nil {
		handler.writeServiceError(w, "calendar dates", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string][]string{"dates": dates})
}

func (handler *Handler) HandleAddSession(w http.ResponseWriter, r *http.Request) {
	handler.saveSession(w, r, -1, http.StatusCreated)
}

func (handler *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}
	handler.saveSession(w, r, index, http.StatusOK)
}

func (handler *Handler) saveSession(w http.ResponseWriter, r *http.Request, index, okStatus int) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.saveSession")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session WorkoutSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("save session, decode: %s", err)
		http.Error(w, "invalid session body", http.StatusBadRequest)
		return
	}

	record, err := handler.service.SaveSession(ctx, userID, mux.Vars(r)["date"], session, index)
	if err != nil {
		handler.writeServiceError(w, "save session", err)
		return
	}

	pkg.WriteJSON(w, okStatus, record)
}

func (handler *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteSession")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "error, index NaN", http.StatusBadRequest)
		return
	}

	record, err := handler.service.DeleteSession(ctx, userID, mux.Vars(r)["date"], index)
	if err != nil {
		handler.writeServiceError(w, "delete session", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, record)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.import")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var rawDays []json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 10<<20)).Decode(&rawDays); err != nil {
		http.Error(w, "expected an array of day documents", http.StatusBadRequest)
		return
	}

	res, err := handler.service.ImportDays(ctx, userID, rawDays)
	if err != nil {
		handler.writeServiceError(w, "import days", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, res)
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidSession), errors.Is(err, ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrDayNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("failed to %s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
