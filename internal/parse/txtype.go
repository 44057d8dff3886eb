package parse

import (
	"regexp"
	"strings"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

// Verb lexicons, checked in order: expense, income, investment.
var (
	expenseVerbs = []string{"gastei", "paguei", "pagar", "comprei", "comprar", "saquei", "retirei", "retiro"}
	incomeVerbs  = []string{"recebi", "ganhei", "entrou", "caiu", "depositaram", "pague", "pagaram"}
	investVerbs  = []string{"investi", "apliquei", "aportei", "aportar", "comprar ações", "comprei ações", "apliquei em"}
)

var minusAmountRe = regexp.MustCompile(`-\s?\d`)

// ClassifyType decides whether a message records an expense, an income or
// an investment. It always succeeds: a minus sign before a digit reads as
// expense, and the absolute fallback is income.
func ClassifyType(text string) domain.TxType {
	t := strings.ToLower(text)
	if containsAny(t, expenseVerbs) {
		return domain.TxExpense
	}
	if containsAny(t, incomeVerbs) {
		return domain.TxIncome
	}
	if containsAny(t, investVerbs) {
		return domain.TxInvestment
	}
	if minusAmountRe.MatchString(t) {
		return domain.TxExpense
	}
	return domain.TxIncome
}

func containsAny(t string, words []string) bool {
	for _, w := range words {
		if strings.Contains(t, w) {
			return true
		}
	}
	return false
}
