package analytics

import (
	"sort"
	"time"

	"github.com/rmaia/finance-ai-go/internal/domain"
)

// topCategories is the breakdown cut-off: beyond it, remaining categories
// fold into a single "Outros" row.
const topCategories = 6

// thousandsThreshold switches the balance series to R$ mil when the
// largest absolute daily balance reaches it.
const thousandsThreshold = 10000

// Aggregate computes the full summary for the period containing ref, plus
// the KPIs of the immediately preceding period. history may span any range;
// rows outside the two periods are ignored. Investments are excluded from
// KPIs and series. An empty period yields zero KPIs and empty series.
func Aggregate(history []domain.Transaction, ref time.Time, g domain.Granularity) domain.Summary {
	current := Bounds(ref, g)
	previous := Bounds(PrevRef(ref, g), g)

	curTx := filterPeriod(history, current)
	prevTx := filterPeriod(history, previous)

	s := domain.Summary{
		PeriodStart: current.Start,
		PeriodEnd:   current.End,
		Current:     kpis(curTx),
		Previous:    kpis(prevTx),
	}

	s.ExpenseByCategory = breakdown(curTx, domain.TxExpense)
	s.IncomeByCategory = breakdown(curTx, domain.TxIncome)

	daily := dailyBalance(curTx)
	maxAbs := 0.0
	for _, p := range daily {
		if v := abs(p.Value); v > maxAbs {
			maxAbs = v
		}
	}
	if maxAbs >= thousandsThreshold {
		s.InThousands = true
		for i := range daily {
			daily[i].Value /= 1000
		}
	}
	s.DailyBalance = daily

	if len(daily) > 0 {
		cumulative := make([]domain.DailyPoint, len(daily))
		running := 0.0
		for i, p := range daily {
			running += p.Value
			cumulative[i] = domain.DailyPoint{Date: p.Date, Value: running}
		}
		s.CumulativeBalance = cumulative
	}

	return s
}

func filterPeriod(history []domain.Transaction, p Period) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range history {
		if p.Contains(dateOnly(t.Date)) {
			out = append(out, t)
		}
	}
	return out
}

// kpis sums income and expense; investments do not count toward balance.
func kpis(txs []domain.Transaction) domain.KPI {
	var k domain.KPI
	for _, t := range txs {
		switch t.Type {
		case domain.TxIncome:
			k.IncomeTotal += t.Amount
		case domain.TxExpense:
			k.ExpenseTotal += t.Amount
		}
	}
	k.Balance = k.IncomeTotal - k.ExpenseTotal
	return k
}

// breakdown groups one transaction type by category, sorted by amount
// descending with lexical tie-break. More than topCategories distinct
// categories fold the tail into "Outros"; the folded sum preserves the
// period total.
func breakdown(txs []domain.Transaction, txType domain.TxType) []domain.CategoryAmount {
	sums := make(map[string]float64)
	for _, t := range txs {
		if t.Type == txType {
			sums[t.Category] += t.Amount
		}
	}
	if len(sums) == 0 {
		return nil
	}

	rows := make([]domain.CategoryAmount, 0, len(sums))
	for c, v := range sums {
		rows = append(rows, domain.CategoryAmount{Category: c, Amount: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})

	if len(rows) <= topCategories {
		return rows
	}
	tail := 0.0
	for _, r := range rows[topCategories:] {
		tail += r.Amount
	}
	return append(rows[:topCategories:topCategories], domain.CategoryAmount{Category: "Outros", Amount: tail})
}

// dailyBalance sums income minus expense per day, ascending by date.
func dailyBalance(txs []domain.Transaction) []domain.DailyPoint {
	sums := make(map[time.Time]float64)
	for _, t := range txs {
		switch t.Type {
		case domain.TxIncome:
			sums[dateOnly(t.Date)] += t.Amount
		case domain.TxExpense:
			sums[dateOnly(t.Date)] -= t.Amount
		}
	}
	if len(sums) == 0 {
		return nil
	}

	points := make([]domain.DailyPoint, 0, len(sums))
	for d, v := range sums {
		points = append(points, domain.DailyPoint{Date: d, Value: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
