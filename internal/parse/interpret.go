package parse

import (
	"strings"
	"time"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

// Interpret turns a free-text message into a transaction candidate. It is
// pure: no side effects, no errors. A missing amount leaves Candidate.Amount
// nil, which blocks commitment downstream.
func Interpret(text string, today time.Time) domain.Candidate {
	txType := ClassifyType(text)
	c := domain.Candidate{
		Type:        txType,
		Date:        ResolveDate(text, today),
		Category:    MapCategory(text, txType),
		Description: strings.TrimSpace(text),
	}
	if v, ok := ExtractAmount(text); ok {
		c.Amount = &v
	}
	return c
}
