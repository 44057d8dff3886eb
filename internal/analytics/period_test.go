package analytics

import (
	"testing"
	"time"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBoundsWeekStartsMonday(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"midweek", day(2024, time.March, 15), day(2024, time.March, 11), day(2024, time.March, 17)}, // friday
		{"on monday", day(2024, time.March, 11), day(2024, time.March, 11), day(2024, time.March, 17)},
		{"on sunday", day(2024, time.March, 17), day(2024, time.March, 11), day(2024, time.March, 17)},
		{"across month edge", day(2024, time.April, 2), day(2024, time.April, 1), day(2024, time.April, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Bounds(tt.ref, domain.GranularityWeek)
			if !p.Start.Equal(tt.wantStart) || !p.End.Equal(tt.wantEnd) {
				t.Errorf("Bounds(%v, week) = [%v, %v], want [%v, %v]",
					tt.ref, p.Start, p.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestBoundsMonth(t *testing.T) {
	p := Bounds(day(2024, time.February, 15), domain.GranularityMonth)
	if !p.Start.Equal(day(2024, time.February, 1)) || !p.End.Equal(day(2024, time.February, 29)) {
		t.Errorf("february 2024 bounds = [%v, %v]", p.Start, p.End)
	}

	p = Bounds(day(2023, time.February, 10), domain.GranularityMonth)
	if !p.End.Equal(day(2023, time.February, 28)) {
		t.Errorf("february 2023 end = %v, want the 28th", p.End)
	}
}

func TestBoundsDay(t *testing.T) {
	ref := day(2024, time.March, 15)
	p := Bounds(ref, domain.GranularityDay)
	if !p.Start.Equal(ref) || !p.End.Equal(ref) {
		t.Errorf("day bounds = [%v, %v], want the reference day twice", p.Start, p.End)
	}
}

func TestPrevNextRef(t *testing.T) {
	ref := day(2024, time.March, 15)

	if got := PrevRef(ref, domain.GranularityWeek); !got.Equal(day(2024, time.March, 8)) {
		t.Errorf("PrevRef week = %v", got)
	}
	if got := NextRef(ref, domain.GranularityWeek); !got.Equal(day(2024, time.March, 22)) {
		t.Errorf("NextRef week = %v", got)
	}
	if got := PrevRef(ref, domain.GranularityMonth); !got.Equal(day(2024, time.February, 1)) {
		t.Errorf("PrevRef month = %v", got)
	}
	if got := NextRef(ref, domain.GranularityMonth); !got.Equal(day(2024, time.April, 1)) {
		t.Errorf("NextRef month = %v", got)
	}
	if got := PrevRef(ref, domain.GranularityDay); !got.Equal(day(2024, time.March, 14)) {
		t.Errorf("PrevRef day = %v", got)
	}

	// January previous month must land in the prior year.
	if got := PrevRef(day(2024, time.January, 20), domain.GranularityMonth); !got.Equal(day(2023, time.December, 1)) {
		t.Errorf("PrevRef january = %v, want 2023-12-01", got)
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Start: day(2024, time.March, 11), End: day(2024, time.March, 17)}
	if !p.Contains(day(2024, time.March, 11)) || !p.Contains(day(2024, time.March, 17)) {
		t.Error("bounds are inclusive")
	}
	if p.Contains(day(2024, time.March, 10)) || p.Contains(day(2024, time.March, 18)) {
		t.Error("dates outside the range must not be contained")
	}
}
