package coach

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=coach_test

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type promptResponse struct {
	Text string `json:"text"`
}

type Handler struct {
	generator      generator
	metricsManager *metrics.Manager
}

func NewHandler(generator generator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		generator:      generator,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/aicoach", handler.HandlePrompt).Name("ai-coach")
}

func (handler *Handler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		pkg.WriteJSONError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.prompt")
	defer span.End()

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		handler.countPrompt("rejected")
		pkg.WriteJSONError(w, http.StatusBadRequest, "No prompt provided.")
		return
	}

	text, err := handler.generator.Generate(ctx, req.Prompt)
	if err != nil {
		handler.countPrompt("failed")
		log.Errorf("ai coach: generate content: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	handler.countPrompt("ok")
	pkg.WriteJSON(w, http.StatusOK, promptResponse{Text: text})
}

func (handler *Handler) countPrompt(outcome string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterCoachPrompts.WithLabelValues(outcome).Inc()
}
