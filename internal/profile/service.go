package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/blobstore"
	"github.com/2beens/liftlog/internal/forum"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profile_test

type profileRepo interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
	GetSettings(ctx context.Context, userID string) ([]byte, error)
	SaveSettings(ctx context.Context, userID string, settings Settings) error
}

type blobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (*blobstore.Blob, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	repo          profileRepo
	blobs         blobStore
	publicBaseURL string
	now           func() time.Time
	newKey        func() string
}

// NewService creates the service. Avatar URLs are publicBaseURL + blob key,
// publicBaseURL defaults to the /avatars/ route of this service.
func NewService(repo profileRepo, blobs blobStore, publicBaseURL string) *Service {
	if publicBaseURL == "" {
		publicBaseURL = avatarURLPrefix
	}
	if !strings.HasSuffix(publicBaseURL, "/") {
		publicBaseURL += "/"
	}

	return &Service{
		repo:          repo,
		blobs:         blobs,
		publicBaseURL: publicBaseURL,
		now:           time.Now,
		newKey:        uuid.NewString,
	}
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := update.apply(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = s.now()
	if err := s.repo.SaveProfile(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetSettings returns the user's settings on top of the defaults.
func (s *Service) GetSettings(ctx context.Context, userID string) (*Settings, error) {
	stored, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if len(stored) > 0 {
		if err := json.Unmarshal(stored, &settings); err != nil {
			log.Errorf("profile: stored settings of %s are malformed, using defaults: %s", userID, err)
			settings = DefaultSettings()
		}
	}
	return &settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, userID string, update SettingsUpdate) (_ *Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.updateSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := update.apply(settings); err != nil {
		return nil, err
	}

	if err := s.repo.SaveSettings(ctx, userID, *settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UploadAvatar stores a new avatar image and replaces the previous one.
func (s *Service) UploadAvatar(ctx context.Context, userID, contentType string, body io.Reader, size int64) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.uploadAvatar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidAvatar, contentType)
	}
	if size <= 0 || size > MaxAvatarSize {
		return nil, fmt.Errorf("%w: size must be between 1 byte and %d bytes", ErrInvalidAvatar, MaxAvatarSize)
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := s.newKey() + ext
	if err := s.blobs.Put(ctx, key, contentType, body, size); err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	oldKey := p.PhotoKey
	p.PhotoKey = key
	p.PhotoURL = s.publicBaseURL + key
	p.UpdatedAt = s.now()
	if err := s.repo.SaveProfile(ctx, *p); err != nil {
		s.deleteBlob(ctx, key)
		return nil, err
	}

	if oldKey != "" {
		s.deleteBlob(ctx, oldKey)
	}
	return p, nil
}

func (s *Service) DeleteAvatar(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.deleteAvatar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.PhotoKey == "" && p.PhotoURL == "" {
		return nil, ErrNoAvatar
	}

	oldKey := p.PhotoKey
	p.PhotoKey = ""
	p.PhotoURL = ""
	p.UpdatedAt = s.now()
	if err := s.repo.SaveProfile(ctx, *p); err != nil {
		return nil, err
	}

	if oldKey != "" {
		s.deleteBlob(ctx, oldKey)
	}
	return p, nil
}

func (s *Service) GetAvatar(ctx context.Context, key string) (*blobstore.Blob, error) {
	return s.blobs.Get(ctx, key)
}

// Author gives the name and avatar shown next to the user's forum posts.
func (s *Service) Author(ctx context.Context, userID string) (forum.Author, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return forum.Author{}, err
	}
	return forum.Author{
		DisplayName: p.DisplayName,
		Avatar:      p.PhotoURL,
	}, nil
}

func (s *Service) deleteBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, blobstore.ErrBlobNotFound) {
		log.Errorf("profile: delete avatar blob %s: %s", key, err)
	}
}
