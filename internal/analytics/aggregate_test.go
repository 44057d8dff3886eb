package analytics

import (
	"testing"
	"time"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

func tx(d time.Time, typ domain.TxType, amount float64, category string) domain.Transaction {
	return domain.Transaction{Date: d, Type: typ, Amount: amount, Category: category}
}

func TestAggregateKPIs(t *testing.T) {
	ref := day(2024, time.March, 15)
	history := []domain.Transaction{
		tx(day(2024, time.March, 5), domain.TxIncome, 3000, "Salário"),
		tx(day(2024, time.March, 10), domain.TxExpense, 800, "Mercado"),
		tx(day(2024, time.March, 12), domain.TxExpense, 200, "Transporte"),
		tx(day(2024, time.March, 20), domain.TxInvestment, 500, "CDB"), // excluded from KPIs
		// previous month
		tx(day(2024, time.February, 10), domain.TxIncome, 2500, "Salário"),
		tx(day(2024, time.February, 11), domain.TxExpense, 900, "Mercado"),
		// outside both periods
		tx(day(2023, time.December, 1), domain.TxIncome, 9999, "Salário"),
	}

	s := Aggregate(history, ref, domain.GranularityMonth)

	if s.Current.IncomeTotal != 3000 || s.Current.ExpenseTotal != 1000 || s.Current.Balance != 2000 {
		t.Errorf("current KPI = %+v", s.Current)
	}
	if s.Previous.IncomeTotal != 2500 || s.Previous.ExpenseTotal != 900 || s.Previous.Balance != 1600 {
		t.Errorf("previous KPI = %+v", s.Previous)
	}
	if !s.PeriodStart.Equal(day(2024, time.March, 1)) || !s.PeriodEnd.Equal(day(2024, time.March, 31)) {
		t.Errorf("period = [%v, %v]", s.PeriodStart, s.PeriodEnd)
	}
}

func TestAggregateBreakdownFoldsTail(t *testing.T) {
	ref := day(2024, time.March, 15)
	categories := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	var history []domain.Transaction
	for i, c := range categories {
		history = append(history, tx(day(2024, time.March, 10), domain.TxExpense, float64(800-i*100), c))
	}

	s := Aggregate(history, ref, domain.GranularityMonth)
	rows := s.ExpenseByCategory

	if len(rows) != topCategories+1 {
		t.Fatalf("got %d rows, want %d", len(rows), topCategories+1)
	}
	if rows[0].Category != "A" || rows[0].Amount != 800 {
		t.Errorf("top row = %+v", rows[0])
	}
	last := rows[len(rows)-1]
	if last.Category != "Outros" {
		t.Errorf("tail row category = %q", last.Category)
	}
	// G (200) + H (100) fold into Outros.
	if last.Amount != 300 {
		t.Errorf("tail row amount = %v, want 300", last.Amount)
	}

	// Folding preserves the period total.
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	if total != s.Current.ExpenseTotal {
		t.Errorf("breakdown total %v != expense total %v", total, s.Current.ExpenseTotal)
	}
}

func TestAggregateBreakdownTieBreak(t *testing.T) {
	ref := day(2024, time.March, 15)
	history := []domain.Transaction{
		tx(day(2024, time.March, 10), domain.TxExpense, 100, "Zebra"),
		tx(day(2024, time.March, 10), domain.TxExpense, 100, "Alfa"),
	}

	s := Aggregate(history, ref, domain.GranularityMonth)
	rows := s.ExpenseByCategory
	if len(rows) != 2 || rows[0].Category != "Alfa" || rows[1].Category != "Zebra" {
		t.Errorf("equal amounts must sort lexically, got %+v", rows)
	}
}

func TestAggregateDailyAndCumulativeBalance(t *testing.T) {
	ref := day(2024, time.March, 15)
	history := []domain.Transaction{
		tx(day(2024, time.March, 11), domain.TxIncome, 1000, "Salário"),
		tx(day(2024, time.March, 11), domain.TxExpense, 300, "Mercado"),
		tx(day(2024, time.March, 13), domain.TxExpense, 200, "Transporte"),
		tx(day(2024, time.March, 13), domain.TxInvestment, 400, "CDB"), // not in the series
	}

	s := Aggregate(history, ref, domain.GranularityWeek)

	if s.InThousands {
		t.Error("series below the threshold must not be scaled")
	}
	if len(s.DailyBalance) != 2 {
		t.Fatalf("daily points = %d, want 2", len(s.DailyBalance))
	}
	if !s.DailyBalance[0].Date.Equal(day(2024, time.March, 11)) || s.DailyBalance[0].Value != 700 {
		t.Errorf("day 1 = %+v", s.DailyBalance[0])
	}
	if !s.DailyBalance[1].Date.Equal(day(2024, time.March, 13)) || s.DailyBalance[1].Value != -200 {
		t.Errorf("day 2 = %+v", s.DailyBalance[1])
	}
	if s.CumulativeBalance[0].Value != 700 || s.CumulativeBalance[1].Value != 500 {
		t.Errorf("cumulative = %+v", s.CumulativeBalance)
	}
}

func TestAggregateScalesToThousands(t *testing.T) {
	ref := day(2024, time.March, 15)
	history := []domain.Transaction{
		tx(day(2024, time.March, 11), domain.TxIncome, 12000, "Salário"),
		tx(day(2024, time.March, 12), domain.TxExpense, 500, "Mercado"),
	}

	s := Aggregate(history, ref, domain.GranularityWeek)

	if !s.InThousands {
		t.Fatal("expected the series in thousands")
	}
	if s.DailyBalance[0].Value != 12 {
		t.Errorf("scaled day 1 = %v, want 12", s.DailyBalance[0].Value)
	}
	if s.DailyBalance[1].Value != -0.5 {
		t.Errorf("scaled day 2 = %v, want -0.5", s.DailyBalance[1].Value)
	}
	// KPIs stay in plain reais.
	if s.Current.IncomeTotal != 12000 {
		t.Errorf("income total = %v, want 12000", s.Current.IncomeTotal)
	}
}

func TestAggregateDoesNotMutateHistory(t *testing.T) {
	ref := day(2024, time.March, 15)
	history := []domain.Transaction{
		tx(day(2024, time.March, 11), domain.TxIncome, 15000, "Salário"),
	}

	first := Aggregate(history, ref, domain.GranularityWeek)
	second := Aggregate(history, ref, domain.GranularityWeek)

	if history[0].Amount != 15000 {
		t.Errorf("history mutated: %+v", history[0])
	}
	if first.Current != second.Current || first.DailyBalance[0].Value != second.DailyBalance[0].Value {
		t.Error("same input must aggregate identically")
	}
}

func TestAggregateEmptyHistory(t *testing.T) {
	s := Aggregate(nil, day(2024, time.March, 15), domain.GranularityMonth)

	if s.Current.Balance != 0 || s.Previous.Balance != 0 {
		t.Errorf("empty history KPIs = %+v / %+v", s.Current, s.Previous)
	}
	if s.ExpenseByCategory != nil || s.IncomeByCategory != nil {
		t.Error("empty history must yield nil breakdowns")
	}
	if s.DailyBalance != nil || s.CumulativeBalance != nil {
		t.Error("empty history must yield nil series")
	}
}
