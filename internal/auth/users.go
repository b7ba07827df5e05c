package auth

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=auth_test

type usersRepo interface {
	Add(ctx context.Context, user User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Users registers and authenticates accounts.
type Users struct {
	repo usersRepo
	now  func() time.Time
}

func NewUsers(repo usersRepo) *Users {
	return &Users{
		repo: repo,
		now:  time.Now,
	}
}

func (u *Users) Register(ctx context.Context, creds Credentials) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	creds = creds.normalized()
	if err := creds.validate(); err != nil {
		return nil, err
	}

	hash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     creds.Username,
		PasswordHash: hash,
		CreatedAt:    u.now(),
	}
	if err := u.repo.Add(ctx, user); err != nil {
		return nil, err
	}

	log.Debugf("new user registered: %s", user.ID)
	return &user, nil
}

// Authenticate returns ErrWrongCredentials both for unknown users and wrong passwords.
func (u *Users) Authenticate(ctx context.Context, creds Credentials) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.users.authenticate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	creds = creds.normalized()
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Tracef("[username] failed login attempt for user: %s", creds.Username)
			return nil, ErrWrongCredentials
		}
		return nil, err
	}

	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", creds.Username)
		return nil, ErrWrongCredentials
	}

	return user, nil
}
