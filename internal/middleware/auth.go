package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type loginChecker interface {
	IsLogged(ctx context.Context, token string) (string, bool, error)
}

// liveTokenParam carries the session token on websocket upgrades, browsers cannot set headers there.
const liveTokenParam = "token"

type AuthMiddlewareHandler struct {
	loginChecker         loginChecker
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(loginChecker loginChecker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		allowedPaths: map[string]bool{
			"/":       true,
			"/forums": true,

			// login-register:
			"/a/login":    true,
			"/a/register": true,
		},
		allowedPathsPrefixes: []string{
			"/avatars/",
			// guarded by its own secret
			"/mcp",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func readAuthToken(r *http.Request) string {
	if token := r.Header.Get(auth.TokenHeader); token != "" {
		return token
	}
	if strings.HasPrefix(r.URL.Path, "/live/") {
		return r.URL.Query().Get(liveTokenParam)
	}
	return ""
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusNoContent)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := readAuthToken(r)
			if authToken == "" {
				unauthorized(w, span, r.URL.Path, "missing-auth-token")
				return
			}

			userID, isLogged, err := h.loginChecker.IsLogged(ctx, authToken)
			if err != nil {
				log.Errorf("auth middleware: login check for %s: %s", r.URL.Path, err)
				span.RecordError(err)
				unauthorized(w, span, r.URL.Path, "check-logged-err")
				return
			}
			if !isLogged {
				unauthorized(w, span, r.URL.Path, "not-logged")
				return
			}

			span.SetAttributes(attribute.String("user.id", userID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, span trace.Span, path, reason string) {
	log.Tracef("auth middleware: %s => %s", reason, path)
	span.SetStatus(codes.Error, reason)
	http.Error(w, "no can do", http.StatusUnauthorized)
}
