package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jdmarlow86/sdalocal/internal/store"
	"github.com/shopspring/decimal"
)

// viewState represents the currently active tab.
type viewState int

const (
	viewEvents viewState = iota
	viewFinance
	viewChat
	viewProjects
)

var viewNames = []string{"Bulletin Events", "Income & Expenses", "Media & Chat", "Building Projects"}

// --- Messages ---

type eventsDataMsg struct {
	events []store.Event
}

type financeDataMsg struct {
	entries []store.FinanceEntry
	summary store.FinanceSummary
}

type chatDataMsg struct {
	messages []store.ChatMessage
}

type projectsDataMsg struct {
	projects []store.Project
}

// autoReplyMsg fires once, 300ms after a chat message is sent. It is not
// cancellable and is lost if the program exits first.
type autoReplyMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func status(text string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text}
	}
}

// errorStatus surfaces a store error on the footer status line. Validation
// messages are shown to the user verbatim.
func errorStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: err.Error(), isError: true}
	}
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// formatSignedAmount renders expenses as negative, the way the ledger
// has always displayed them.
func formatSignedAmount(e store.FinanceEntry) string {
	if strings.EqualFold(e.EntryType, store.EntryExpense) {
		return "-" + formatMoney(e.Amount)
	}
	return formatMoney(e.Amount)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
