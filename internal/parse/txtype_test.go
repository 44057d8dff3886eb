package parse

import (
	"testing"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

func TestClassifyType(t *testing.T) {
	tests := []struct {
		text string
		want domain.TxType
	}{
		{"gastei 50 no mercado", domain.TxExpense},
		{"paguei a conta de luz", domain.TxExpense},
		{"saquei 200", domain.TxExpense},
		{"recebi 1500 de salário", domain.TxIncome},
		{"caiu o pagamento", domain.TxIncome},
		{"investi 200 em cdb", domain.TxInvestment},
		{"aportei 300 no tesouro", domain.TxInvestment},
		// "comprar" is an expense verb and wins before the investment scan.
		{"comprar ações da empresa", domain.TxExpense},
		// minus-before-digit heuristic.
		{"mercado - 50", domain.TxExpense},
		{"mercado -50", domain.TxExpense},
		// absolute fallback is income.
		{"500 do freela", domain.TxIncome},
		{"", domain.TxIncome},
	}

	for _, tt := range tests {
		if got := ClassifyType(tt.text); got != tt.want {
			t.Errorf("ClassifyType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
