package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxAvatarSize   = 5 << 20
	maxDisplayName  = 64
	maxBioLength    = 1000
	avatarURLPrefix = "/avatars/"
)

var (
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrInvalidAvatar   = errors.New("invalid avatar")
	ErrNoAvatar        = errors.New("no avatar")
)

type Profile struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio"`
	PhotoURL    string    `json:"photoUrl"`
	PhotoKey    string    `json:"-"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProfileUpdate struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
}

func (u ProfileUpdate) apply(p *Profile) error {
	if u.DisplayName != nil {
		name := strings.TrimSpace(*u.DisplayName)
		if len(name) > maxDisplayName {
			return fmt.Errorf("%w: display name longer than %d", ErrInvalidProfile, maxDisplayName)
		}
		p.DisplayName = name
	}
	if u.Bio != nil {
		if len(*u.Bio) > maxBioLength {
			return fmt.Errorf("%w: bio longer than %d", ErrInvalidProfile, maxBioLength)
		}
		p.Bio = *u.Bio
	}
	return nil
}

type Reminders struct {
	Enabled   bool   `json:"enabled"`
	Frequency int    `json:"frequency"` // days
	Label     string `json:"label"`
	Message   string `json:"message"`
}

type Settings struct {
	DarkMode  bool      `json:"darkMode"`
	Reminders Reminders `json:"reminders"`
}

func DefaultSettings() Settings {
	return Settings{
		DarkMode: false,
		Reminders: Reminders{
			Enabled:   false,
			Frequency: 3,
			Label:     "Time to hit the gym!",
			Message:   "A little progress each day adds up to big results.",
		},
	}
}

type RemindersUpdate struct {
	Enabled   *bool   `json:"enabled"`
	Frequency *int    `json:"frequency"`
	Label     *string `json:"label"`
	Message   *string `json:"message"`
}

// SettingsUpdate holds the fields to change, nil fields are kept as they are.
type SettingsUpdate struct {
	DarkMode  *bool            `json:"darkMode"`
	Reminders *RemindersUpdate `json:"reminders"`
}

func (u SettingsUpdate) apply(s *Settings) error {
	if u.DarkMode != nil {
		s.DarkMode = *u.DarkMode
	}
	if u.Reminders == nil {
		return nil
	}

	r := u.Reminders
	if r.Enabled != nil {
		s.Reminders.Enabled = *r.Enabled
	}
	if r.Frequency != nil {
		if *r.Frequency < 1 {
			return fmt.Errorf("%w: reminder frequency must be at least 1 day", ErrInvalidSettings)
		}
		s.Reminders.Frequency = *r.Frequency
	}
	if r.Label != nil {
		s.Reminders.Label = *r.Label
	}
	if r.Message != nil {
		s.Reminders.Message = *r.Message
	}
	return nil
}

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}
