package mcp

import (
	"crypto/subtle"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

// SecretHeader guards the MCP endpoint mounted on the backend.
const SecretHeader = "X-MCP-Secret"

// NewServer builds an MCP server with liftlog tools: schema, workout stats, workout days, e1RM.
// Used both over stdio (cmd/liftlog_mcp) and mounted at /mcp on the backend.
func NewServer(pool *pgxpool.Pool, days daysRepo, reporter statsReporter) *mcp.Server {
	svc := NewContextService(NewPoolSchemaRepo(pool), days, reporter)
	return newServer(NewHandler(svc))
}

func newServer(h *Handler) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "liftlog-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_liftlog_schema",
		Description: "Returns the DB schema of the liftlog tables (users, workout days, custom exercises, forum, profiles): table names, columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_stats",
		Description: "Returns the stats report of a user: volume over time, session, muscle group and exercise frequency, and the estimated 1RM progress of an exercise. Args: user_id; optional: timeframe (7days, 30days, all), exercise.",
	}, h.GetWorkoutStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_days",
		Description: "Returns the logged workout days (sessions, exercises, sets) of a user within a date range. Args: user_id, from_date, to_date (YYYY-MM-DD).",
	}, h.GetWorkoutDaysTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_estimated_one_rep_max",
		Description: "Returns the estimated one rep max (Brzycki) of a set. Args: weight, reps.",
	}, h.GetOneRepMaxTool())

	return s
}

// NewHTTPHandler serves the MCP server over streamable HTTP, for requests carrying the secret.
func NewHTTPHandler(server *mcp.Server, secret string) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if secret == "" {
			http.Error(w, "mcp disabled", http.StatusNotFound)
			return
		}
		got := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			log.Warnf("mcp: unauthorized request from %s", r.RemoteAddr)
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		streamable.ServeHTTP(w, r)
	})
}
