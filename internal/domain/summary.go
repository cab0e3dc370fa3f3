package domain

import "github.com/shopspring/decimal"

// LedgerSummary aggregates a result set of transactions. It is derived per
// query and never persisted.
type LedgerSummary struct {
	Count        int             `json:"count"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// Summarize computes count, income and expense totals, and balance over exactly
// the given transactions.
func Summarize(transactions []*Transaction) LedgerSummary {
	summary := LedgerSummary{
		Count:        len(transactions),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		case TransactionTypeExpense:
			summary.TotalExpense = summary.TotalExpense.Add(t.Amount)
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary
}

// TransactionList is a listing result with its aggregate
type TransactionList struct {
	Transactions []*Transaction
	Summary      LedgerSummary
}

// FormatAmount renders an amount with exactly two decimals, the wire form
// shared by API responses and ledger events.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
