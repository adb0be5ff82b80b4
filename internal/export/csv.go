package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jdmarlow86/sdalocal/internal/store"
)

// ToCSV writes the finance ledger to path, one row per entry in insertion
// order.
func ToCSV(entries []store.FinanceEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Type", "Amount", "Category", "Note"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.CreatedAt,
			e.EntryType,
			e.Amount.StringFixed(2),
			e.Category,
			e.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
