package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// net/http uses it to abort a response on purpose, it must reach the server
				if r == http.ErrAbortHandler {
					panic(r)
				}

				fields := log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
				}
				if route := mux.CurrentRoute(req); route != nil && route.GetName() != "" {
					fields["route"] = route.GetName()
				}
				if userID, ok := auth.UserIDFromContext(req.Context()); ok {
					fields["user"] = userID
				}
				log.WithFields(fields).Errorf("http: panic: %v\n%s", r, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(respWriter, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
