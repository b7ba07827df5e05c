package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 6
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongCredentials   = errors.New("wrong credentials")
	ErrUsernameTaken      = errors.New("username taken")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) normalized() Credentials {
	return Credentials{
		Username: strings.TrimSpace(c.Username),
		Password: c.Password,
	}
}

func (c Credentials) validate() error {
	usernameLen := utf8.RuneCountInString(c.Username)
	if usernameLen < MinUsernameLen || usernameLen > MaxUsernameLen {
		return fmt.Errorf("%w: username length", ErrInvalidCredentials)
	}
	if strings.ContainsAny(c.Username, " \t\n|") {
		return fmt.Errorf("%w: username contains forbidden characters", ErrInvalidCredentials)
	}
	if utf8.RuneCountInString(c.Password) < MinPasswordLen {
		return fmt.Errorf("%w: password too short", ErrInvalidCredentials)
	}
	return nil
}
