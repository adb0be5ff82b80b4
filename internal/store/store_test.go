package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "sdalocal_data.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

// reopen loads a fresh Store from the same backing file.
func reopen(t *testing.T, s *Store) *Store {
	t.Helper()
	s2, err := New(s.Path())
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	return s2
}

func dec(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", v, err)
	}
	return d
}

// ============================================================
// Store initialization and persistence
// ============================================================

func TestNewFirstRun(t *testing.T) {
	s := newTestStore(t)
	if s.Recovered() {
		t.Fatal("first run should not report recovery")
	}
	if len(s.Events()) != 0 || len(s.FinanceEntries()) != 0 || len(s.Projects()) != 0 || len(s.ChatMessages()) != 0 {
		t.Fatal("first run should start with empty collections")
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sdalocal_data.json")
	if _, err := New(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("data directory not created: %v", err)
	}
}

func TestDefaultDataPath(t *testing.T) {
	path, err := DefaultDataPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "sdalocal_data.json" {
		t.Fatalf("unexpected file name in %q", path)
	}
}

func TestCorruptFileRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdalocal_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("corrupt file must not be fatal: %v", err)
	}
	if !s.Recovered() {
		t.Fatal("expected recovery flag for corrupt file")
	}
	if len(s.Events()) != 0 || len(s.FinanceEntries()) != 0 {
		t.Fatal("recovery should yield empty collections")
	}

	// First mutation replaces the corrupt file with a valid document.
	if _, err := s.AddEvent("Potluck", "2025-06-01", ""); err != nil {
		t.Fatal(err)
	}
	s2 := reopen(t, s)
	if s2.Recovered() {
		t.Fatal("rewritten file should parse cleanly")
	}
	if len(s2.Events()) != 1 {
		t.Fatalf("expected 1 event after recovery, got %d", len(s2.Events()))
	}
}

func TestMissingKeysLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdalocal_data.json")
	partial := `{"events": [{"title": "Choir", "date": "2025-05-10", "description": ""}]}`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Recovered() {
		t.Fatal("partial document is valid, not corrupt")
	}
	if len(s.Events()) != 1 {
		t.Fatalf("expected 1 event, got %d", len(s.Events()))
	}
	if len(s.FinanceEntries()) != 0 || len(s.Projects()) != 0 || len(s.ChatMessages()) != 0 {
		t.Fatal("absent keys should load as empty collections")
	}
}

func TestDocumentLayout(t *testing.T) {
	s := newTestStore(t)
	s.AddEvent("Easter Service", "2025-04-20", "Celebration")
	s.AddFinanceEntry(EntryIncome, "100", "Tithe", "")
	s.AddProject("Hall Renovation", "A. Mason", "2025-01-01", "2025-12-31", "2500.50", "Planned", "")
	s.AppendChat("You", "hello")

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"events", "finance", "projects", "chat"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("document missing top-level key %q", key)
		}
	}

	// Amounts must be bare JSON numbers for compatibility with documents
	// written by earlier releases.
	var fin []map[string]any
	if err := json.Unmarshal(doc["finance"], &fin); err != nil {
		t.Fatal(err)
	}
	if _, ok := fin[0]["amount"].(float64); !ok {
		t.Fatalf("amount should serialize as a number, got %T", fin[0]["amount"])
	}
}

func TestSaveWritesArraysNotNull(t *testing.T) {
	s := newTestStore(t)
	// A no-op delete still rewrites the document.
	if err := s.DeleteEvent("none", "2025-01-01"); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"events", "finance", "projects", "chat"} {
		if _, ok := doc[key].([]any); !ok {
			t.Fatalf("%q should serialize as an array, got %T", key, doc[key])
		}
	}
}

// ============================================================
// Events
// ============================================================

func TestAddEventRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddEvent("Easter Service", "2025-04-20", "Celebration"); err != nil {
		t.Fatal(err)
	}

	s2 := reopen(t, s)
	events := s2.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Title != "Easter Service" || e.Date != "2025-04-20" || e.Description != "Celebration" {
		t.Fatalf("event did not round-trip: %+v", e)
	}
}

func TestAddEventValidation(t *testing.T) {
	s := newTestStore(t)

	cases := []struct {
		name  string
		title string
		date  string
	}{
		{"empty title", "", "2025-04-20"},
		{"empty date", "Easter Service", ""},
		{"both empty", "", ""},
		{"bad date format", "Easter Service", "20-04-2025"},
		{"not a date", "Easter Service", "2025-02-30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddEvent(tc.title, tc.date, "desc")
			if !IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	if len(s.Events()) != 0 {
		t.Fatal("failed adds must leave the collection unchanged")
	}
}

func TestDeleteEventRemovesAllMatches(t *testing.T) {
	s := newTestStore(t)
	s.AddEvent("Easter Service", "2025-04-20", "Celebration")
	s.AddEvent("Easter Service", "2025-04-20", "Duplicate")
	s.AddEvent("Choir Practice", "2025-04-20", "")
	s.AddEvent("Easter Service", "2026-04-05", "Next year")

	if len(s.Events()) != 4 {
		t.Fatalf("expected 4 events, got %d", len(s.Events()))
	}

	if err := s.DeleteEvent("Easter Service", "2025-04-20"); err != nil {
		t.Fatal(err)
	}

	events := s.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events after delete, got %d", len(events))
	}
	if events[0].Title != "Choir Practice" || events[1].Date != "2026-04-05" {
		t.Fatalf("wrong events survived: %+v", events)
	}
}

func TestDeleteEventNoMatch(t *testing.T) {
	s := newTestStore(t)
	s.AddEvent("Potluck", "2025-06-01", "")

	if err := s.DeleteEvent("Potluck", "2025-06-02"); err != nil {
		t.Fatal(err)
	}
	if len(s.Events()) != 1 {
		t.Fatal("no-op delete must leave the collection untouched")
	}
}

// ============================================================
// Finance
// ============================================================

func TestAddFinanceEntry(t *testing.T) {
	s := newTestStore(t)
	e, err := s.AddFinanceEntry(EntryIncome, "250.75", "Offering", "Sabbath")
	if err != nil {
		t.Fatal(err)
	}
	if !e.Amount.Equal(dec(t, "250.75")) {
		t.Fatalf("unexpected amount: %s", e.Amount)
	}
	if e.Category != "Offering" || e.Note != "Sabbath" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if _, err := time.Parse("2006-01-02 15:04", e.CreatedAt); err != nil {
		t.Fatalf("created_at not stamped correctly: %q", e.CreatedAt)
	}
}

func TestAddFinanceEntryDefaultsCategory(t *testing.T) {
	s := newTestStore(t)
	e, err := s.AddFinanceEntry(EntryExpense, "10", "   ", "")
	if err != nil {
		t.Fatal(err)
	}
	if e.Category != "Uncategorized" {
		t.Fatalf("blank category should default, got %q", e.Category)
	}
}

func TestAddFinanceEntryRejectsBadAmounts(t *testing.T) {
	s := newTestStore(t)

	for _, amount := range []string{"", "abc", "12.3.4", "0", "-5", "-0.01"} {
		t.Run("amount="+amount, func(t *testing.T) {
			_, err := s.AddFinanceEntry(EntryIncome, amount, "Tithe", "")
			if !IsValidation(err) {
				t.Fatalf("expected ValidationError for %q, got %v", amount, err)
			}
		})
	}

	if len(s.FinanceEntries()) != 0 {
		t.Fatal("rejected amounts must leave the ledger unmodified")
	}
}

func TestSummary(t *testing.T) {
	s := newTestStore(t)
	s.AddFinanceEntry(EntryIncome, "100", "Tithe", "")
	s.AddFinanceEntry(EntryExpense, "40", "Operations", "")

	sum := s.Summary()
	if !sum.Income.Equal(dec(t, "100")) {
		t.Fatalf("income = %s, want 100", sum.Income)
	}
	if !sum.Expense.Equal(dec(t, "40")) {
		t.Fatalf("expense = %s, want 40", sum.Expense)
	}
	if !sum.Balance.Equal(dec(t, "60")) {
		t.Fatalf("balance = %s, want 60", sum.Balance)
	}
}

func TestSummaryBalanceInvariant(t *testing.T) {
	s := newTestStore(t)
	s.AddFinanceEntry(EntryIncome, "0.10", "Tithe", "")
	s.AddFinanceEntry(EntryIncome, "0.20", "Offering", "")
	s.AddFinanceEntry(EntryExpense, "0.30", "Operations", "")
	s.AddFinanceEntry(EntryIncome, "1234.56", "Other", "")
	s.AddFinanceEntry(EntryExpense, "0.01", "Community", "")

	sum := s.Summary()
	if !sum.Balance.Equal(sum.Income.Sub(sum.Expense)) {
		t.Fatalf("balance %s != income %s - expense %s", sum.Balance, sum.Income, sum.Expense)
	}
}

func TestSummaryExpenseMatchIsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	s.AddFinanceEntry("expense", "5", "", "")
	s.AddFinanceEntry("EXPENSE", "7", "", "")
	// Income matching is exact; a lowercase type is not counted.
	s.AddFinanceEntry("income", "100", "", "")

	sum := s.Summary()
	if !sum.Expense.Equal(dec(t, "12")) {
		t.Fatalf("expense = %s, want 12", sum.Expense)
	}
	if !sum.Income.IsZero() {
		t.Fatalf("income = %s, want 0", sum.Income)
	}

	// Stored entry types keep their original case.
	entries := s.FinanceEntries()
	if entries[0].EntryType != "expense" || entries[1].EntryType != "EXPENSE" {
		t.Fatalf("entry types should be stored verbatim: %+v", entries)
	}
}

// ============================================================
// Projects
// ============================================================

func TestAddProject(t *testing.T) {
	s := newTestStore(t)
	p, err := s.AddProject("Hall Renovation", "A. Mason", "2025-01-01", "2025-12-31", "2500.50", "Planned", "Roof first")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Budget.Equal(dec(t, "2500.50")) {
		t.Fatalf("unexpected budget: %s", p.Budget)
	}

	s2 := reopen(t, s)
	projects := s2.Projects()
	if len(projects) != 1 || projects[0].Manager != "A. Mason" {
		t.Fatalf("project did not round-trip: %+v", projects)
	}
}

func TestAddProjectValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddProject("", "", "", "", "100", "Planned", ""); !IsValidation(err) {
		t.Fatalf("expected ValidationError for empty name, got %v", err)
	}
	if _, err := s.AddProject("Annex", "", "", "", "lots", "Planned", ""); !IsValidation(err) {
		t.Fatalf("expected ValidationError for non-numeric budget, got %v", err)
	}
	if _, err := s.AddProject("Annex", "", "", "", "-1", "Planned", ""); !IsValidation(err) {
		t.Fatalf("expected ValidationError for negative budget, got %v", err)
	}
	if len(s.Projects()) != 0 {
		t.Fatal("failed adds must leave the collection unchanged")
	}
}

func TestAddProjectBlankBudgetDefaultsToZero(t *testing.T) {
	s := newTestStore(t)
	p, err := s.AddProject("Annex", "", "", "", "  ", "Planned", "")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Budget.IsZero() {
		t.Fatalf("blank budget should be zero, got %s", p.Budget)
	}
}

func TestUpdateProjectStatusFirstMatch(t *testing.T) {
	s := newTestStore(t)
	s.AddProject("Hall Renovation", "A", "", "", "1", "Planned", "")
	s.AddProject("Hall Renovation", "B", "", "", "2", "Planned", "")

	if err := s.UpdateProjectStatus("Hall Renovation", "Completed"); err != nil {
		t.Fatal(err)
	}

	projects := s.Projects()
	if projects[0].Status != "Completed" {
		t.Fatalf("first match should be updated, got %q", projects[0].Status)
	}
	if projects[1].Status != "Planned" {
		t.Fatalf("second match must be untouched, got %q", projects[1].Status)
	}
}

func TestUpdateProjectStatusNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateProjectStatus("Ghost", "Completed")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestDeleteProjectRemovesAllWithName(t *testing.T) {
	s := newTestStore(t)
	s.AddProject("Hall Renovation", "A", "", "", "1", "Planned", "")
	s.AddProject("Parking Lot", "B", "", "", "2", "Planned", "")
	s.AddProject("Hall Renovation", "C", "", "", "3", "On Hold", "")

	if err := s.DeleteProject("Hall Renovation"); err != nil {
		t.Fatal(err)
	}

	projects := s.Projects()
	if len(projects) != 1 || projects[0].Name != "Parking Lot" {
		t.Fatalf("wrong projects survived: %+v", projects)
	}
}

// ============================================================
// Chat
// ============================================================

func TestAppendChat(t *testing.T) {
	s := newTestStore(t)
	m, err := s.AppendChat("You", "hello team")
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("expected message to be appended")
	}
	if _, err := time.Parse("15:04", m.Timestamp); err != nil {
		t.Fatalf("timestamp not stamped correctly: %q", m.Timestamp)
	}

	s2 := reopen(t, s)
	msgs := s2.ChatMessages()
	if len(msgs) != 1 || msgs[0].Message != "hello team" {
		t.Fatalf("chat did not round-trip: %+v", msgs)
	}
}

func TestAppendChatBlankIgnored(t *testing.T) {
	s := newTestStore(t)
	m, err := s.AppendChat("You", "   ")
	if err != nil {
		t.Fatal(err)
	}
	if m != nil {
		t.Fatal("blank message should be ignored, not appended")
	}
	if len(s.ChatMessages()) != 0 {
		t.Fatal("blank message must not reach the collection")
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	s := newTestStore(t)
	s.AppendChat("You", "first")
	s.AppendChat("Auto-reply", "second")
	s.AppendChat("You", "third")

	s2 := reopen(t, s)
	msgs := s2.ChatMessages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if msgs[i].Message != want {
			t.Fatalf("order not preserved: msgs[%d] = %q", i, msgs[i].Message)
		}
	}
}
