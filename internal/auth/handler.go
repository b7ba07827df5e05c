package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "X-LIFTLOG-TOKEN"

type accounts interface {
	Register(ctx context.Context, creds Credentials) (*User, error)
	Authenticate(ctx context.Context, creds Credentials) (*User, error)
}

type sessions interface {
	Login(ctx context.Context, userID string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type Handler struct {
	accounts accounts
	sessions sessions
}

func NewHandler(accounts accounts, sessions sessions) *Handler {
	return &Handler{
		accounts: accounts,
		sessions: sessions,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/a/register", handler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	r.HandleFunc("/a/login", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", handler.HandleLogout).Methods("GET", "POST", "OPTIONS").Name("logout")
}

func readCredentials(r *http.Request) (Credentials, error) {
	var creds Credentials
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return Credentials{}, err
		}
		return creds, nil
	}

	if err := r.ParseForm(); err != nil {
		return Credentials{}, err
	}
	return Credentials{
		Username: r.Form.Get("username"),
		Password: r.Form.Get("password"),
	}, nil
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Errorf("register, read credentials: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	user, err := handler.accounts.Register(ctx, creds)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUsernameTaken):
			http.Error(w, "username taken", http.StatusConflict)
		default:
			log.Errorf("register: %s", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	pkg.WriteJSON(w, http.StatusCreated, map[string]string{"id": user.ID})
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	creds, err := readCredentials(r)
	if err != nil {
		log.Errorf("login, read credentials: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}
	if creds.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.accounts.Authenticate(ctx, creds)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrWrongCredentials) || errors.Is(err, ErrInvalidCredentials) {
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Trace("new login success")
	pkg.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	authToken := r.Header.Get(TokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
