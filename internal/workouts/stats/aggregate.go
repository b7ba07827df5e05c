package stats

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/2beens/liftlog/internal/workouts"
)

type VolumePoint struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

type FrequencyEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ProgressPoint struct {
	Date   string  `json:"date"`
	E1RM   float64 `json:"e1RM"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type ExerciseOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// VolumeOverTime returns the total weight x reps per record, ascending by date.
// Records without sessions give a zero point.
func VolumeOverTime(records []workouts.DaySessionRecord) []VolumePoint {
	points := make([]VolumePoint, 0, len(records))
	for _, record := range records {
		var volume float64
		for _, session := range record.Sessions {
			for _, ex := range session.Exercises {
				for _, set := range ex.Sets {
					volume += set.Weight * float64(set.Reps)
				}
			}
		}
		points = append(points, VolumePoint{Date: record.Date, Volume: volume})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

// frequencyCounter counts names, remembering the order they were first seen in.
type frequencyCounter struct {
	index   map[string]int
	entries []FrequencyEntry
}

func newFrequencyCounter() *frequencyCounter {
	return &frequencyCounter{
		index:   make(map[string]int),
		entries: make([]FrequencyEntry, 0),
	}
}

func (c *frequencyCounter) inc(name string) {
	if i, ok := c.index[name]; ok {
		c.entries[i].Count++
		return
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, FrequencyEntry{Name: name, Count: 1})
}

// SessionFrequency counts sessions per label, in order of first appearance.
func SessionFrequency(records []workouts.DaySessionRecord) []FrequencyEntry {
	counter := newFrequencyCounter()
	for _, record := range records {
		for _, session := range record.Sessions {
			counter.inc(session.Label)
		}
	}
	return counter.entries
}

// ExerciseFrequency counts exercise entries per name, in order of first appearance.
func ExerciseFrequency(records []workouts.DaySessionRecord) []FrequencyEntry {
	counter := newFrequencyCounter()
	for _, record := range records {
		for _, session := range record.Sessions {
			for _, ex := range session.Exercises {
				counter.inc(ex.Name)
			}
		}
	}
	return counter.entries
}

// MuscleGroupFrequency counts, for every exercise entry, each muscle it works.
// Exercises missing from the map are ignored, an empty muscle name is counted as is.
// Sorted by count, descending.
func MuscleGroupFrequency(records []workouts.DaySessionRecord, muscles workouts.ExerciseMuscleMap) []FrequencyEntry {
	counter := newFrequencyCounter()
	for _, record := range records {
		for _, session := range record.Sessions {
			for _, ex := range session.Exercises {
				for _, muscle := range muscles[ex.Name] {
					counter.inc(capitalizeFirst(muscle))
				}
			}
		}
	}

	entries := counter.entries
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// capitalizeFirst upper-cases the first letter only, the rest is left as is.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ExerciseProgress returns, per day, the set of the exercise with the best
// estimated one rep max. Days without such a set are left out.
func ExerciseProgress(records []workouts.DaySessionRecord, exercise string) []ProgressPoint {
	best := make(map[string]ProgressPoint)
	for _, record := range records {
		for _, session := range record.Sessions {
			for _, ex := range session.Exercises {
				if ex.Name != exercise {
					continue
				}
				for _, set := range ex.Sets {
					e1rm := EstimatedOneRepMax(set.Weight, set.Reps)
					if e1rm > best[record.Date].E1RM {
						best[record.Date] = ProgressPoint{
							Date:   record.Date,
							E1RM:   e1rm,
							Weight: set.Weight,
							Reps:   set.Reps,
						}
					}
				}
			}
		}
	}

	points := make([]ProgressPoint, 0, len(best))
	for _, p := range best {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

// DistinctExercises returns the sorted, deduplicated exercise names as selector options.
func DistinctExercises(records []workouts.DaySessionRecord) []ExerciseOption {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, record := range records {
		for _, session := range record.Sessions {
			for _, ex := range session.Exercises {
				if ex.Name == "" || seen[ex.Name] {
					continue
				}
				seen[ex.Name] = true
				names = append(names, ex.Name)
			}
		}
	}
	sort.Strings(names)

	options := make([]ExerciseOption, 0, len(names))
	for _, name := range names {
		options = append(options, ExerciseOption{Value: name, Label: name})
	}
	return options
}
