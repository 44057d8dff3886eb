package parse

import "regexp"

// Command is a special chat instruction that bypasses interpretation.
type Command int

const (
	CmdNone Command = iota
	CmdWeekSummary
	CmdMonthSummary
	CmdTodaySummary
	CmdUndoLast
)

var (
	weekSummaryRe  = regexp.MustCompile(`\bresumo da semana\b`)
	monthSummaryRe = regexp.MustCompile(`\bresumo do mês\b|\bresumo deste mês\b`)
	todaySummaryRe = regexp.MustCompile(`\bsaldo de hoje\b|\bresumo de hoje\b`)
	undoLastRe     = regexp.MustCompile(`\bdesfazer último\b|\bdesfazer ultima\b|\bdesfazer última\b`)
)

// DetectCommand recognizes the dashboard shortcuts and the undo command.
// Input must already be lowercased and trimmed by the caller.
func DetectCommand(t string) Command {
	switch {
	case weekSummaryRe.MatchString(t):
		return CmdWeekSummary
	case monthSummaryRe.MatchString(t):
		return CmdMonthSummary
	case todaySummaryRe.MatchString(t):
		return CmdTodaySummary
	case undoLastRe.MatchString(t):
		return CmdUndoLast
	default:
		return CmdNone
	}
}
