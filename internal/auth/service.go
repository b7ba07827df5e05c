package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftlog/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftlog::session::"
	tokensSetKey     = "liftlog::sessions"
)

var ErrInvalidSession = errors.New("invalid session value")

type LoginSession struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

// Service keeps login sessions in redis, keyed by token.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func sessionValue(userID string, createdAt time.Time) string {
	return fmt.Sprintf("%s|%d", userID, createdAt.Unix())
}

func parseSessionValue(val string) (string, time.Time, error) {
	userID, createdAtUnixStr, found := strings.Cut(val, "|")
	if !found || userID == "" {
		return "", time.Time{}, ErrInvalidSession
	}
	createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %s", ErrInvalidSession, err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (as *Service) Login(ctx context.Context, userID string, createdAt time.Time) (string, error) {
	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	if err := as.redisClient.Set(ctx, sessionKey(token), sessionValue(userID, createdAt), 0).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	// the set is what ScanAndClean walks
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("track session: %w", err)
	}

	return token, nil
}

// Logout removes the session. It reports false if there was no such session.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	return as.removeSession(ctx, token)
}

func (as *Service) removeSession(ctx context.Context, token string) (bool, error) {
	deleted, err := as.redisClient.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, fmt.Errorf("untrack session: %w", err)
	}
	return deleted > 0, nil
}

// ScanAndClean removes sessions older than the service TTL, along with
// tokens whose session key is already gone.
func (as *Service) ScanAndClean(ctx context.Context) {
	tokens, err := as.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("auth service: list sessions: %s", err)
		return
	}
	if len(tokens) == 0 {
		log.Debugln("auth service: no sessions to clean")
		return
	}

	stale := as.staleSessions(ctx, tokens)
	log.Debugf("auth service: cleaning %d of %d sessions", len(stale), len(tokens))
	for _, token := range stale {
		if _, err := as.removeSession(ctx, token); err != nil {
			log.Errorf("auth service: clean session %s: %s", token, err)
		}
	}
}

func (as *Service) staleSessions(ctx context.Context, tokens []string) []string {
	var stale []string
	for _, token := range tokens {
		val, err := as.redisClient.Get(ctx, sessionKey(token)).Result()
		if errors.Is(err, redis.Nil) {
			stale = append(stale, token)
			continue
		}
		if err != nil {
			log.Errorf("auth service: get session %s: %s", token, err)
			continue
		}

		_, createdAt, err := parseSessionValue(val)
		if err != nil {
			log.Errorf("auth service: session %s: %s", token, err)
			stale = append(stale, token)
			continue
		}
		if time.Since(createdAt) > as.ttl {
			stale = append(stale, token)
		}
	}
	return stale
}
