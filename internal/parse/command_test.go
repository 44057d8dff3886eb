package parse

import "testing"

func TestDetectCommand(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{"resumo da semana", CmdWeekSummary},
		{"me mostra o resumo da semana por favor", CmdWeekSummary},
		{"resumo do mês", CmdMonthSummary},
		{"resumo deste mês", CmdMonthSummary},
		{"saldo de hoje", CmdTodaySummary},
		{"resumo de hoje", CmdTodaySummary},
		{"desfazer último", CmdUndoLast},
		{"desfazer ultima", CmdUndoLast},
		{"desfazer última", CmdUndoLast},
		{"gastei 50 no mercado", CmdNone},
		{"resumo", CmdNone},
	}

	for _, tt := range tests {
		if got := DetectCommand(tt.text); got != tt.want {
			t.Errorf("DetectCommand(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
