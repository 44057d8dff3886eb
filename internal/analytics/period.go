// Package analytics derives reporting periods and aggregates committed
// transactions into dashboard summaries. Everything here is pure: no IO,
// no clocks, no mutation of inputs.
package analytics

import (
	"time"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

// Period is an inclusive date range. Start is never after End.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Bounds derives the inclusive period for a reference date. Weeks start on
// Monday; months are calendar months. An unknown granularity falls back to
// the single reference day.
func Bounds(ref time.Time, g domain.Granularity) Period {
	ref = dateOnly(ref)
	switch g {
	case domain.GranularityWeek:
		start := ref.AddDate(0, 0, -mondayOffset(ref))
		return Period{Start: start, End: start.AddDate(0, 0, 6)}
	case domain.GranularityMonth:
		start := firstOfMonth(ref)
		return Period{Start: start, End: start.AddDate(0, 1, -1)}
	default:
		return Period{Start: ref, End: ref}
	}
}

// PrevRef returns the reference date one period back.
func PrevRef(ref time.Time, g domain.Granularity) time.Time {
	ref = dateOnly(ref)
	switch g {
	case domain.GranularityWeek:
		return ref.AddDate(0, 0, -7)
	case domain.GranularityMonth:
		return firstOfMonth(ref).AddDate(0, -1, 0)
	default:
		return ref.AddDate(0, 0, -1)
	}
}

// NextRef returns the reference date one period forward.
func NextRef(ref time.Time, g domain.Granularity) time.Time {
	ref = dateOnly(ref)
	switch g {
	case domain.GranularityWeek:
		return ref.AddDate(0, 0, 7)
	case domain.GranularityMonth:
		return firstOfMonth(ref).AddDate(0, 1, 0)
	default:
		return ref.AddDate(0, 0, 1)
	}
}

// mondayOffset is the number of days since the last Monday (0 on Mondays).
func mondayOffset(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
