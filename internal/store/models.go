package store

import "github.com/shopspring/decimal"

// Field names and casing are fixed: they must match documents written by
// earlier releases of the application.

// Event is a bulletin event. Its natural key is the (Title, Date) pair;
// nothing prevents two events from sharing a key.
type Event struct {
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
}

// FinanceEntry is a single ledger record. Entries are append-only.
type FinanceEntry struct {
	EntryType string          `json:"entry_type"` // Income or Expense
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Note      string          `json:"note"`
	CreatedAt string          `json:"created_at"` // local, "2006-01-02 15:04"
}

// Project is a building project, keyed by Name. Lookups take the first
// match when duplicate names exist.
type Project struct {
	Name        string          `json:"name"`
	Manager     string          `json:"manager"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Budget      decimal.Decimal `json:"budget"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
}

// ChatMessage is one line of the team chat log.
type ChatMessage struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // local, "15:04"
}

// FinanceSummary is derived from the full ledger on every call, never stored.
type FinanceSummary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Entry types recognized by the ledger.
const (
	EntryIncome  = "Income"
	EntryExpense = "Expense"
)

// EntryTypes lists the ledger entry types in form order.
var EntryTypes = []string{EntryIncome, EntryExpense}

// ProjectStatuses lists the valid project statuses in form order.
var ProjectStatuses = []string{"Planned", "In Progress", "On Hold", "Completed"}

// FinanceCategories are the categories suggested by the finance form;
// free-form values are accepted.
var FinanceCategories = []string{"Tithe", "Offering", "Operations", "Community", "Other"}
