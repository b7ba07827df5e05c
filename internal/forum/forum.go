package forum

import (
	"errors"
	"time"
)

const (
	DefaultDisplayName = "Anonymous"
	DefaultAvatar      = "/default.png"
)

var (
	ErrForumNotFound  = errors.New("forum not found")
	ErrThreadNotFound = errors.New("thread not found")
	ErrInvalidPost    = errors.New("invalid post")
)

type Forum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Forums are fixed, listed in display order.
var Forums = []Forum{
	{ID: "gym", Name: "Gym Related", Description: "Discuss workouts, nutrition, and progress."},
	{ID: "unrelated", Name: "The Lounge", Description: "Talk about anything else on your mind."},
}

func ForumByID(id string) (Forum, bool) {
	for _, f := range Forums {
		if f.ID == id {
			return f, true
		}
	}
	return Forum{}, false
}

type Author struct {
	DisplayName string
	Avatar      string
}

// withDefaults fills in what the author never set.
func (a Author) withDefaults() Author {
	if a.DisplayName == "" {
		a.DisplayName = DefaultDisplayName
	}
	if a.Avatar == "" {
		a.Avatar = DefaultAvatar
	}
	return a
}

type Thread struct {
	ID          int       `json:"id"`
	ForumID     string    `json:"forumId"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	ReplyCount  int       `json:"replyCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Reply struct {
	ID          int       `json:"id"`
	ThreadID    int       `json:"threadId"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	CreatedAt   time.Time `json:"createdAt"`
}
