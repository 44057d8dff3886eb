package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateSlashRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	dayOnlyRe   = regexp.MustCompile(`\bdia\s+(\d{1,2})\b`)
	monthNameRe = regexp.MustCompile(`\b(\d{1,2})\s+de\s+([a-zçãéô]+)(?:\s+de\s+(\d{4}))?\b`)
)

var monthsByName = map[string]time.Month{
	"jan": 1, "janeiro": 1, "fev": 2, "fevereiro": 2,
	"mar": 3, "março": 3, "marco": 3, "abr": 4, "abril": 4,
	"mai": 5, "maio": 5, "jun": 6, "junho": 6, "jul": 7, "julho": 7,
	"ago": 8, "agosto": 8, "set": 9, "setembro": 9,
	"out": 10, "outubro": 10, "nov": 11, "novembro": 11,
	"dez": 12, "dezembro": 12,
}

// ResolveDate derives the transaction date from relative or absolute cues
// in the message. Precedence: relative keyword, D/M[/Y] slash form,
// "dia D", "D de <mês>[ de Y]". Only the first matching rule applies and
// anything malformed falls back to today.
func ResolveDate(text string, today time.Time) time.Time {
	today = DateOnly(today)
	t := strings.ToLower(text)

	switch {
	case strings.Contains(t, "hoje"):
		return today
	case strings.Contains(t, "anteontem"):
		return today.AddDate(0, 0, -2)
	case strings.Contains(t, "ontem"):
		return today.AddDate(0, 0, -1)
	case strings.Contains(t, "amanhã"), strings.Contains(t, "amanha"):
		return today.AddDate(0, 0, 1)
	}

	if m := dateSlashRe.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := today.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		}
		if d, ok := makeDate(year, month, day); ok {
			return d
		}
		return today
	}

	if m := dayOnlyRe.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		if d, ok := makeDate(today.Year(), int(today.Month()), day); ok {
			return d
		}
		return today
	}

	if m := monthNameRe.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		if month, known := monthsByName[m[2]]; known {
			year := today.Year()
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			if d, ok := makeDate(year, int(month), day); ok {
				return d
			}
		}
		return today
	}

	return today
}

// DateOnly truncates a timestamp to midnight UTC. All transaction dates in
// the system carry this normal form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// makeDate builds a calendar date and rejects values that would roll over
// (e.g. 31/02).
func makeDate(year, month, day int) (time.Time, bool) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
