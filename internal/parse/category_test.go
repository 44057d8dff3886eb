package parse

import (
	"testing"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

func TestMapCategory(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		txType domain.TxType
		want   string
	}{
		{"expense table", "gastei 50 no mercado", domain.TxExpense, "Mercado"},
		{"expense multiword keyword", "comprei no mercado livre", domain.TxExpense, "Mercado"},
		{"income table", "recebi 1500 de salário", domain.TxIncome, "Salário"},
		{"investment table", "investi 200 em cdb", domain.TxInvestment, "CDB"},
		{"accent variant", "paguei a farmácia", domain.TxExpense, "Saúde"},
		{"type table wins over union", "paguei o aluguel", domain.TxExpense, "Moradia"},
		// Cross-type fallback: income message with an expense keyword.
		{"cross type leak", "recebi 100 do mercado", domain.TxIncome, "Mercado"},
		// Union keeps first-seen position but the later label wins.
		{"union label override", "apliquei o aluguel", domain.TxInvestment, "Aluguel"},
		// "gastei" would hit the "gas" keyword, so the default case needs a
		// verb outside every table.
		{"default", "paguei 40 a um conhecido", domain.TxExpense, "outros"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapCategory(tt.text, tt.txType); got != tt.want {
				t.Errorf("MapCategory(%q, %q) = %q, want %q", tt.text, tt.txType, got, tt.want)
			}
		})
	}
}

func TestMergeKeywordTablesOrder(t *testing.T) {
	a := []keywordLabel{{"x", "A1"}, {"y", "A2"}}
	b := []keywordLabel{{"z", "B1"}, {"x", "B2"}}
	merged := mergeKeywordTables(a, b)

	if len(merged) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(merged))
	}
	if merged[0].keyword != "x" || merged[0].label != "B2" {
		t.Errorf("expected first entry x->B2, got %s->%s", merged[0].keyword, merged[0].label)
	}
	if merged[1].keyword != "y" || merged[2].keyword != "z" {
		t.Errorf("unexpected order: %+v", merged)
	}
}
