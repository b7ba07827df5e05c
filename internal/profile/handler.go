package profile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/blobstore"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profile_test

type profileService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
	GetSettings(ctx context.Context, userID string) (*Settings, error)
	UpdateSettings(ctx context.Context, userID string, update SettingsUpdate) (*Settings, error)
	UploadAvatar(ctx context.Context, userID, contentType string, body io.Reader, size int64) (*Profile, error)
	DeleteAvatar(ctx context.Context, userID string) (*Profile, error)
	GetAvatar(ctx context.Context, key string) (*blobstore.Blob, error)
}

const avatarFormField = "avatar"

type Handler struct {
	service profileService
}

func NewHandler(service profileService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/profile", handler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profile", handler.HandleUpdateProfile).Methods("PUT", "OPTIONS").Name("update-profile")
	r.HandleFunc("/profile/settings", handler.HandleGetSettings).Methods("GET", "OPTIONS").Name("get-settings")
	r.HandleFunc("/profile/settings", handler.HandleUpdateSettings).Methods("PUT", "OPTIONS").Name("update-settings")
	r.HandleFunc("/profile/avatar", handler.HandleUploadAvatar).Methods("POST", "OPTIONS").Name("upload-avatar")
	r.HandleFunc("/profile/avatar", handler.HandleDeleteAvatar).Methods("DELETE", "OPTIONS").Name("delete-avatar")
	r.HandleFunc("/avatars/{key}", handler.HandleGetAvatar).Methods("GET").Name("get-avatar")
}

func (handler *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	p, err := handler.service.GetProfile(ctx, userID)
	if err != nil {
		handler.writeServiceError(w, "get profile", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid profile json", http.StatusBadRequest)
		return
	}

	p, err := handler.service.UpdateProfile(ctx, userID, update)
	if err != nil {
		handler.writeServiceError(w, "update profile", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.getSettings")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	settings, err := handler.service.GetSettings(ctx, userID)
	if err != nil {
		handler.writeServiceError(w, "get settings", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, settings)
}

func (handler *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.updateSettings")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var update SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid settings json", http.StatusBadRequest)
		return
	}

	settings, err := handler.service.UpdateSettings(ctx, userID, update)
	if err != nil {
		handler.writeServiceError(w, "update settings", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, settings)
}

func (handler *Handler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.uploadAvatar")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	// some room on top of the file for the multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, MaxAvatarSize+64<<10)
	if err := r.ParseMultipartForm(MaxAvatarSize); err != nil {
		http.Error(w, "avatar too large or malformed, max 5MB", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Errorf("remove multipart form files: %s", err)
		}
	}()

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		http.Error(w, "avatar file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		sniff := make([]byte, 512)
		n, _ := io.ReadFull(file, sniff)
		contentType = http.DetectContentType(sniff[:n])
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			log.Errorf("rewind avatar file: %s", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	p, err := handler.service.UploadAvatar(ctx, userID, contentType, file, header.Size)
	if err != nil {
		handler.writeServiceError(w, "upload avatar", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleDeleteAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.deleteAvatar")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	p, err := handler.service.DeleteAvatar(ctx, userID)
	if err != nil {
		handler.writeServiceError(w, "delete avatar", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, p)
}

func (handler *Handler) HandleGetAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.getAvatar")
	defer span.End()

	blob, err := handler.service.GetAvatar(ctx, mux.Vars(r)["key"])
	if err != nil {
		switch {
		case errors.Is(err, blobstore.ErrBlobNotFound), errors.Is(err, blobstore.ErrInvalidKey):
			http.Error(w, "avatar not found", http.StatusNotFound)
		default:
			log.Errorf("get avatar: %s", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if blob.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, blob.Body); err != nil {
		log.Errorf("write avatar %s: %s", blob.Key, err)
	}
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidProfile), errors.Is(err, ErrInvalidSettings), errors.Is(err, ErrInvalidAvatar):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNoAvatar):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Errorf("profile: failed to %s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
