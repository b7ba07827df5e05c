package forum

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=forum_test

type forumService interface {
	ListThreads(ctx context.Context, forumID string) ([]Thread, error)
	GetThread(ctx context.Context, id int) (*Thread, error)
	ListReplies(ctx context.Context, threadID int) ([]Reply, error)
	CreateThread(ctx context.Context, userID, forumID, title, content string) (*Thread, error)
	AddReply(ctx context.Context, userID string, threadID int, content string) (*Reply, error)
}

type liveServer interface {
	Serve(w http.ResponseWriter, r *http.Request, topic string) error
}

type newThreadRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type newReplyRequest struct {
	Content string `json:"content"`
}

type Handler struct {
	service forumService
	live    liveServer
}

func NewHandler(service forumService, live liveServer) *Handler {
	return &Handler{
		service: service,
		live:    live,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/forums", handler.HandleListForums).Methods("GET", "OPTIONS").Name("list-forums")
	r.HandleFunc("/forums/{forumId}/threads", handler.HandleListThreads).Methods("GET", "OPTIONS").Name("list-threads")
	r.HandleFunc("/forums/{forumId}/threads", handler.HandleNewThread).Methods("POST", "OPTIONS").Name("new-thread")
	r.HandleFunc("/threads/{id}", handler.HandleGetThread).Methods("GET", "OPTIONS").Name("get-thread")
	r.HandleFunc("/threads/{id}/replies", handler.HandleListReplies).Methods("GET", "OPTIONS").Name("list-replies")
	r.HandleFunc("/threads/{id}/replies", handler.HandleNewReply).Methods("POST", "OPTIONS").Name("new-reply")
	r.HandleFunc("/live/{topic}", handler.HandleLive).Methods("GET").Name("forum-live")
}

func (handler *Handler) HandleListForums(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, Forums)
}

func (handler *Handler) HandleListThreads(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.forum.listThreads")
	defer span.End()

	threads, err := handler.service.ListThreads(ctx, mux.Vars(r)["forumId"])
	if err != nil {
		handler.writeServiceError(w, "list threads", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, threads)
}

func (handler *Handler) HandleNewThread(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.forum.newThread")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req newThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid thread json", http.StatusBadRequest)
		return
	}

	thread, err := handler.service.CreateThread(ctx, userID, mux.Vars(r)["forumId"], req.Title, req.Content)
	if err != nil {
		handler.writeServiceError(w, "create thread", err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, thread)
}

func (handler *Handler) HandleGetThread(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.forum.getThread")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid thread id", http.StatusBadRequest)
		return
	}

	thread, err := handler.service.GetThread(ctx, id)
	if err != nil {
		handler.writeServiceError(w, "get thread", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, thread)
}

func (handler *Handler) HandleListReplies(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.forum.listReplies")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid thread id", http.StatusBadRequest)
		return
	}

	replies, err := handler.service.ListReplies(ctx, id)
	if err != nil {
		handler.writeServiceError(w, "list replies", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, replies)
}

func (handler *Handler) HandleNewReply(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.forum.newReply")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid thread id", http.StatusBadRequest)
		return
	}

	var req newReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid reply json", http.StatusBadRequest)
		return
	}

	reply, err := handler.service.AddReply(ctx, userID, id, req.Content)
	if err != nil {
		handler.writeServiceError(w, "add reply", err)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, reply)
}

func (handler *Handler) HandleLive(w http.ResponseWriter, r *http.Request) {
	topic := mux.Vars(r)["topic"]
	if !ValidTopic(topic) {
		http.Error(w, "unknown topic", http.StatusNotFound)
		return
	}

	if err := handler.live.Serve(w, r, topic); err != nil {
		// the upgrader already replied to the client
		log.Debugf("forum live %s: %s", topic, err)
	}
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidPost):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForumNotFound), errors.Is(err, ErrThreadNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("forum: failed to %s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
