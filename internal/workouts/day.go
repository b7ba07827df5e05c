package workouts

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of DaySessionRecord.Date.
const DateLayout = "2006-01-02"

var (
	ErrInvalidSession  = errors.New("invalid session")
	ErrInvalidDate     = errors.New("invalid date")
	ErrSessionNotFound = errors.New("session not found")
	ErrDayNotFound     = errors.New("workout day not found")
)

type SetEntry struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type ExerciseEntry struct {
	Name string     `json:"name"`
	Sets []SetEntry `json:"sets"`
}

// WorkoutSession is one named training block (e.g. "Push day") on a date.
type WorkoutSession struct {
	Label     string          `json:"label"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// DaySessionRecord holds all sessions of one user on one day. It is the unit of persistence.
type DaySessionRecord struct {
	UserID    string           `json:"userId"`
	Date      string           `json:"date"`
	Sessions  []WorkoutSession `json:"sessions"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ExerciseMuscleMap maps an exercise name to the muscle groups it works.
type ExerciseMuscleMap map[string][]string

func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}
	return t, nil
}

// ValidateSession checks the rules a session must satisfy to be saved and
// returns a trimmed copy of it.
func ValidateSession(session WorkoutSession) (WorkoutSession, error) {
	validated := WorkoutSession{
		Label:     strings.TrimSpace(session.Label),
		Exercises: make([]ExerciseEntry, 0, len(session.Exercises)),
	}
	if validated.Label == "" {
		return WorkoutSession{}, fmt.Errorf("%w: session label is required", ErrInvalidSession)
	}

	for i, ex := range session.Exercises {
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			return WorkoutSession{}, fmt.Errorf("%w: exercise #%d has no name", ErrInvalidSession, i+1)
		}
		if len(ex.Sets) == 0 {
			return WorkoutSession{}, fmt.Errorf("%w: exercise %q needs at least one set", ErrInvalidSession, name)
		}
		for j, set := range ex.Sets {
			if set.Weight < 0 {
				return WorkoutSession{}, fmt.Errorf("%w: %q set #%d has negative weight", ErrInvalidSession, name, j+1)
			}
			if set.Reps <= 0 {
				return WorkoutSession{}, fmt.Errorf("%w: %q set #%d needs positive reps", ErrInvalidSession, name, j+1)
			}
		}
		validated.Exercises = append(validated.Exercises, ExerciseEntry{
			Name: name,
			Sets: append([]SetEntry(nil), ex.Sets...),
		})
	}

	return validated, nil
}
