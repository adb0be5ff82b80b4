package store

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const createdAtLayout = "2006-01-02 15:04"

// AddFinanceEntry validates, appends and saves a ledger entry. The amount
// must parse as a number greater than zero; a blank category defaults to
// "Uncategorized". Ledger entries are append-only and CreatedAt is stamped
// here, never edited.
func (s *Store) AddFinanceEntry(entryType, amount, category, note string) (*FinanceEntry, error) {
	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, &ValidationError{
			Field:   "amount",
			Message: "Please enter a numeric value for the amount.",
		}
	}
	if !amt.IsPositive() {
		return nil, &ValidationError{
			Field:   "amount",
			Message: "Amount must be greater than zero.",
		}
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = "Uncategorized"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := FinanceEntry{
		EntryType: entryType,
		Amount:    amt,
		Category:  category,
		Note:      strings.TrimSpace(note),
		CreatedAt: time.Now().Format(createdAtLayout),
	}
	s.doc.Finance = append(s.doc.Finance, e)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &e, nil
}

// FinanceEntries returns the ledger in insertion order.
func (s *Store) FinanceEntries() []FinanceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FinanceEntry, len(s.doc.Finance))
	copy(out, s.doc.Finance)
	return out
}

// Summary recomputes income, expenses and balance from the full ledger.
// Income matches the entry type exactly; expenses match case-insensitively.
// The asymmetry is long-standing documented behavior: stored entry types
// keep whatever case they were written with.
func (s *Store) Summary() FinanceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum FinanceSummary
	for _, e := range s.doc.Finance {
		if e.EntryType == EntryIncome {
			sum.Income = sum.Income.Add(e.Amount)
		}
		if strings.EqualFold(e.EntryType, EntryExpense) {
			sum.Expense = sum.Expense.Add(e.Amount)
		}
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum
}
