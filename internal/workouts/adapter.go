package workouts

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Stored and imported day documents are not trusted to have the right shape.
// The functions below turn them into typed records, skipping whatever can't be
// used: a record without a date string or a sessions array, a session without
// an exercises array, an exercise without a name or a sets array, and a set
// whose weight or reps is not a usable number.

type rawDay struct {
	Date     json.RawMessage `json:"date"`
	Sessions json.RawMessage `json:"sessions"`
}

type rawSession struct {
	Label     json.RawMessage `json:"label"`
	Exercises json.RawMessage `json:"exercises"`
}

type rawExercise struct {
	Name json.RawMessage `json:"name"`
	Sets json.RawMessage `json:"sets"`
}

type rawSet struct {
	Weight json.RawMessage `json:"weight"`
	Reps   json.RawMessage `json:"reps"`
}

// NormalizeRecord decodes a raw day document. ok is false when nothing usable is left.
func NormalizeRecord(userID string, raw []byte) (DaySessionRecord, bool) {
	var day rawDay
	if err := json.Unmarshal(raw, &day); err != nil {
		return DaySessionRecord{}, false
	}

	date, ok := decodeString(day.Date)
	if !ok || date == "" {
		return DaySessionRecord{}, false
	}

	sessions, ok := NormalizeSessions(day.Sessions)
	if !ok {
		return DaySessionRecord{}, false
	}

	return DaySessionRecord{
		UserID:   userID,
		Date:     date,
		Sessions: sessions,
	}, true
}

// NormalizeSessions decodes a raw sessions array. ok is false only if raw is not an array.
func NormalizeSessions(raw []byte) ([]WorkoutSession, bool) {
	items, ok := decodeArray(raw)
	if !ok {
		return nil, false
	}

	sessions := make([]WorkoutSession, 0, len(items))
	for _, item := range items {
		if session, ok := normalizeSession(item); ok {
			sessions = append(sessions, session)
		}
	}
	return sessions, true
}

func normalizeSession(raw json.RawMessage) (WorkoutSession, bool) {
	var rs rawSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		return WorkoutSession{}, false
	}

	items, ok := decodeArray(rs.Exercises)
	if !ok {
		return WorkoutSession{}, false
	}

	// a missing label is kept as an empty one
	label, _ := decodeString(rs.Label)
	session := WorkoutSession{
		Label:     label,
		Exercises: make([]ExerciseEntry, 0, len(items)),
	}
	for _, item := range items {
		if ex, ok := normalizeExercise(item); ok {
			session.Exercises = append(session.Exercises, ex)
		}
	}
	return session, true
}

func normalizeExercise(raw json.RawMessage) (ExerciseEntry, bool) {
	var re rawExercise
	if err := json.Unmarshal(raw, &re); err != nil {
		return ExerciseEntry{}, false
	}

	name, ok := decodeString(re.Name)
	if !ok || name == "" {
		return ExerciseEntry{}, false
	}

	items, ok := decodeArray(re.Sets)
	if !ok {
		return ExerciseEntry{}, false
	}

	ex := ExerciseEntry{
		Name: name,
		Sets: make([]SetEntry, 0, len(items)),
	}
	for _, item := range items {
		if set, ok := normalizeSet(item); ok {
			ex.Sets = append(ex.Sets, set)
		}
	}
	return ex, true
}

func normalizeSet(raw json.RawMessage) (SetEntry, bool) {
	var rs rawSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return SetEntry{}, false
	}

	weight, ok := decodeNumber(rs.Weight)
	if !ok || weight < 0 {
		return SetEntry{}, false
	}
	reps, ok := decodeNumber(rs.Reps)
	if !ok || reps < 0 || reps != math.Trunc(reps) || reps > math.MaxInt32 {
		return SetEntry{}, false
	}

	return SetEntry{Weight: weight, Reps: int(reps)}, true
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if isAbsent(raw) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func decodeString(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeNumber accepts JSON numbers and numeric strings, like "100" or " 82.5 ".
func decodeNumber(raw json.RawMessage) (float64, bool) {
	if isAbsent(raw) {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	s, ok := decodeString(raw)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
