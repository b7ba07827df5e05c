package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// IsLogged resolves the token to the id of the logged user.
// Unknown and expired tokens are reported as not logged, without an error.
func (lc *LoginChecker) IsLogged(ctx context.Context, token string) (string, bool, error) {
	val, err := lc.redisClient.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	userID, createdAt, err := parseSessionValue(val)
	if err != nil {
		return "", false, err
	}

	if time.Since(createdAt) > lc.ttl {
		return "", false, nil
	}

	return userID, true, nil
}
