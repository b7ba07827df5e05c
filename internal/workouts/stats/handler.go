package stats

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type reporter interface {
	Report(ctx context.Context, userID, timeframe, exercise string) (*Report, error)
}

type Handler struct {
	reporter reporter
}

func NewHandler(reporter reporter) *Handler {
	return &Handler{
		reporter: reporter,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/stats", handler.HandleGetStats).Methods("GET", "OPTIONS").Name("get-stats")
}

func (handler *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	report, err := handler.reporter.Report(ctx, userID, query.Get("timeframe"), query.Get("exercise"))
	if err != nil {
		if errors.Is(err, ErrUnknownTimeframe) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("get stats for %s: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, report)
}
