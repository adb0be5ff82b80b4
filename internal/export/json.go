package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jdmarlow86/sdalocal/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Income     string      `json:"income"`
	Expense    string      `json:"expense"`
	Balance    string      `json:"balance"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	CreatedAt string `json:"created_at"`
	EntryType string `json:"entry_type"`
	Amount    string `json:"amount"`
	Category  string `json:"category"`
	Note      string `json:"note,omitempty"`
}

// ToJSON writes the finance ledger and its summary totals to path.
func ToJSON(entries []store.FinanceEntry, summary store.FinanceSummary, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
		Income:     summary.Income.StringFixed(2),
		Expense:    summary.Expense.StringFixed(2),
		Balance:    summary.Balance.StringFixed(2),
	}

	for _, e := range entries {
		out.Entries = append(out.Entries, jsonEntry{
			CreatedAt: e.CreatedAt,
			EntryType: e.EntryType,
			Amount:    e.Amount.StringFixed(2),
			Category:  e.Category,
			Note:      e.Note,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
