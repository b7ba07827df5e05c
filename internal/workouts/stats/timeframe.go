package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/workouts"
)

var ErrUnknownTimeframe = errors.New("unknown timeframe")

type Timeframe string

const (
	TimeframeLast7Days  Timeframe = "7days"
	TimeframeLast30Days Timeframe = "30days"
	TimeframeAll        Timeframe = "all"
)

const day = 24 * time.Hour

// ParseTimeframe parses the timeframe name. An empty name means all.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case "", TimeframeAll:
		return TimeframeAll, nil
	case TimeframeLast7Days, TimeframeLast30Days:
		return Timeframe(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTimeframe, s)
	}
}

// window returns the length of the window ending now, 0 for all time.
func (tf Timeframe) window() time.Duration {
	switch tf {
	case TimeframeLast7Days:
		return 7 * day
	case TimeframeLast30Days:
		return 30 * day
	default:
		return 0
	}
}

// FilterByTimeframe returns the records dated within [now - N days, now].
// The start is an instant, record dates count as midnight UTC there. The end is the
// calendar day of now in its own location, so a record dated today is always kept.
// For windowed timeframes, records with unparsable dates are dropped.
func FilterByTimeframe(records []workouts.DaySessionRecord, tf Timeframe, now time.Time) []workouts.DaySessionRecord {
	window := tf.window()
	if window == 0 {
		return records
	}

	from := now.Add(-window)
	today := now.Format(workouts.DateLayout)
	filtered := make([]workouts.DaySessionRecord, 0, len(records))
	for _, record := range records {
		date, err := time.Parse(workouts.DateLayout, record.Date)
		if err != nil {
			continue
		}
		if date.Before(from) || date.Format(workouts.DateLayout) > today {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}
