package forum

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=forum_test

type forumRepo interface {
	AddThread(ctx context.Context, thread Thread) (*Thread, error)
	ListThreads(ctx context.Context, forumID string) ([]Thread, error)
	GetThread(ctx context.Context, id int) (*Thread, error)
	ListReplies(ctx context.Context, threadID int) ([]Reply, error)
	AddReply(ctx context.Context, reply Reply) (*Reply, error)
}

type authorLookup interface {
	Author(ctx context.Context, userID string) (Author, error)
}

type publisher interface {
	Publish(event Event)
}

type Service struct {
	repo           forumRepo
	authors        authorLookup
	publisher      publisher
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo forumRepo, authors authorLookup, publisher publisher, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		authors:        authors,
		publisher:      publisher,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) ListThreads(ctx context.Context, forumID string) ([]Thread, error) {
	if _, ok := ForumByID(forumID); !ok {
		return nil, ErrForumNotFound
	}
	return s.repo.ListThreads(ctx, forumID)
}

func (s *Service) GetThread(ctx context.Context, id int) (*Thread, error) {
	return s.repo.GetThread(ctx, id)
}

func (s *Service) ListReplies(ctx context.Context, threadID int) ([]Reply, error) {
	if _, err := s.repo.GetThread(ctx, threadID); err != nil {
		return nil, err
	}
	return s.repo.ListReplies(ctx, threadID)
}

func (s *Service) CreateThread(ctx context.Context, userID, forumID, title, content string) (*Thread, error) {
	if _, ok := ForumByID(forumID); !ok {
		return nil, ErrForumNotFound
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidPost)
	}

	contentHTML, err := RenderMarkdown(content)
	if err != nil {
		return nil, err
	}

	author := s.author(ctx, userID)
	thread, err := s.repo.AddThread(ctx, Thread{
		ForumID:     forumID,
		UserID:      userID,
		DisplayName: author.DisplayName,
		Avatar:      author.Avatar,
		Title:       title,
		Content:     content,
		ContentHTML: contentHTML,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.countPost("thread")
	s.publisher.Publish(Event{
		Type:    EventThreadCreated,
		Topic:   ForumTopic(forumID),
		Payload: thread,
	})

	return thread, nil
}

func (s *Service) AddReply(ctx context.Context, userID string, threadID int, content string) (*Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: reply content is required", ErrInvalidPost)
	}

	contentHTML, err := RenderMarkdown(content)
	if err != nil {
		return nil, err
	}

	author := s.author(ctx, userID)
	reply, err := s.repo.AddReply(ctx, Reply{
		ThreadID:    threadID,
		UserID:      userID,
		DisplayName: author.DisplayName,
		Avatar:      author.Avatar,
		Content:     content,
		ContentHTML: contentHTML,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.countPost("reply")
	s.publisher.Publish(Event{
		Type:    EventReplyCreated,
		Topic:   ThreadTopic(threadID),
		Payload: reply,
	})

	return reply, nil
}

// author never fails, a post is made even when the profile can't be read.
func (s *Service) author(ctx context.Context, userID string) Author {
	author, err := s.authors.Author(ctx, userID)
	if err != nil {
		log.Warnf("forum: get author %s: %s", userID, err)
		return Author{}.withDefaults()
	}
	return author.withDefaults()
}

func (s *Service) countPost(kind string) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterForumPosts.WithLabelValues(kind).Inc()
}
