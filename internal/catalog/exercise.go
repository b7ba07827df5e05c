package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidExercise  = errors.New("invalid exercise")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// CustomExercise is an exercise a user defined on their own.
type CustomExercise struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Muscles   []string  `json:"muscles"`
	CreatedAt time.Time `json:"createdAt"`
}

// CatalogExercise is an entry of the ExerciseDB catalog.
type CatalogExercise struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Target string `json:"target"`
}

type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Source string `json:"source"`
}

// MuscleList accepts either a JSON array of muscle names or a single
// comma separated string, e.g. "chest, triceps".
type MuscleList []string

func (ml *MuscleList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*ml = cleanMuscles(list)
		return nil
	}

	var csv string
	if err := json.Unmarshal(data, &csv); err != nil {
		return errors.New("muscles must be a list or a comma separated string")
	}
	*ml = cleanMuscles(strings.Split(csv, ","))
	return nil
}

func cleanMuscles(muscles []string) []string {
	cleaned := make([]string, 0, len(muscles))
	for _, m := range muscles {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		cleaned = append(cleaned, m)
	}
	return cleaned
}
