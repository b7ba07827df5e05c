package stats

import (
	"errors"
	"time"

	"github.com/2beens/liftlog/internal/workouts"
)

var ErrExerciseNotAvailable = errors.New("exercise not available in timeframe")

// Report is everything the stats page renders for one user.
type Report struct {
	Timeframe            Timeframe        `json:"timeframe"`
	SelectedExercise     *string          `json:"selectedExercise"`
	Exercises            []ExerciseOption `json:"exercises"`
	Volume               []VolumePoint    `json:"volume"`
	SessionFrequency     []FrequencyEntry `json:"sessionFrequency"`
	MuscleGroupFrequency []FrequencyEntry `json:"muscleGroupFrequency"`
	ExerciseFrequency    []FrequencyEntry `json:"exerciseFrequency"`
	Progress             []ProgressPoint  `json:"progress"`
	TotalRecords         int              `json:"totalRecords"`
}

// View holds the stats page state over an immutable snapshot of records and muscles.
// Its only mutable state is the timeframe and the selected exercise.
type View struct {
	records  []workouts.DaySessionRecord
	muscles  workouts.ExerciseMuscleMap
	now      func() time.Time
	tf       Timeframe
	selected string
}

type ViewOption func(*View)

func WithClock(now func() time.Time) ViewOption {
	return func(v *View) {
		v.now = now
	}
}

func NewView(records []workouts.DaySessionRecord, muscles workouts.ExerciseMuscleMap, opts ...ViewOption) *View {
	if muscles == nil {
		muscles = workouts.ExerciseMuscleMap{}
	}
	v := &View{
		records: records,
		muscles: muscles,
		now:     time.Now,
		tf:      TimeframeAll,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *View) Timeframe() Timeframe {
	return v.tf
}

// SelectedExercise returns the selected exercise, or nil when none is selected.
func (v *View) SelectedExercise() *string {
	if v.selected == "" {
		return nil
	}
	selected := v.selected
	return &selected
}

// SetTimeframe changes the timeframe, dropping the selection if the exercise
// does not appear in the new window.
func (v *View) SetTimeframe(tf Timeframe) {
	v.tf = tf
	if v.selected != "" && !v.available(v.filtered(), v.selected) {
		v.selected = ""
	}
}

// SelectExercise selects one of the exercises present in the current timeframe.
func (v *View) SelectExercise(name string) error {
	if !v.available(v.filtered(), name) {
		return ErrExerciseNotAvailable
	}
	v.selected = name
	return nil
}

func (v *View) ClearSelection() {
	v.selected = ""
}

func (v *View) filtered() []workouts.DaySessionRecord {
	return FilterByTimeframe(v.records, v.tf, v.now())
}

func (v *View) available(records []workouts.DaySessionRecord, name string) bool {
	if name == "" {
		return false
	}
	for _, record := range records {
		for _, session := range record.Sessions {
			for _, ex := range session.Exercises {
				if ex.Name == name {
					return true
				}
			}
		}
	}
	return false
}

// Report computes all the aggregates for the current state.
// "now" is taken once, so every aggregate sees the same window.
func (v *View) Report() *Report {
	records := v.filtered()
	if v.selected != "" && !v.available(records, v.selected) {
		// the window slid past the selected exercise since it was picked
		v.selected = ""
	}

	progress := make([]ProgressPoint, 0)
	if v.selected != "" {
		progress = ExerciseProgress(records, v.selected)
	}

	return &Report{
		Timeframe:            v.tf,
		SelectedExercise:     v.SelectedExercise(),
		Exercises:            DistinctExercises(records),
		Volume:               VolumeOverTime(records),
		SessionFrequency:     SessionFrequency(records),
		MuscleGroupFrequency: MuscleGroupFrequency(records, v.muscles),
		ExerciseFrequency:    ExerciseFrequency(records),
		Progress:             progress,
		TotalRecords:         len(records),
	}
}
