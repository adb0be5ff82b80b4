package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jdmarlow86/sdalocal/internal/store"
)

// ledgerWindow caps how many ledger rows render at once; the cursor scrolls
// the window over the full collection.
const ledgerWindow = 10

type financeModel struct {
	store  *store.Store
	width  int
	height int

	entries []store.FinanceEntry
	summary store.FinanceSummary
	cursor  int

	chart barchart.Model

	formActive bool
	form       *huh.Form

	formType     *string
	formAmount   *string
	formCategory *string
	formNote     *string
}

func newFinanceModel(s *store.Store) financeModel {
	entryType, amount, category, note := store.EntryIncome, "", "", ""
	return financeModel{
		store:        s,
		chart:        barchart.New(40, 8),
		formType:     &entryType,
		formAmount:   &amount,
		formCategory: &category,
		formNote:     &note,
	}
}

func (m *financeModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m financeModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return financeDataMsg{
			entries: m.store.FinanceEntries(),
			summary: m.store.Summary(),
		}
	}
}

func (m financeModel) update(msg tea.Msg) (financeModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case financeDataMsg:
		m.entries = msg.entries
		m.summary = msg.summary
		if m.cursor >= len(m.entries) {
			m.cursor = max(0, len(m.entries)-1)
		}
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showNewEntryForm()
		}
	}
	return m, nil
}

func (m financeModel) showNewEntryForm() (financeModel, tea.Cmd) {
	*m.formType = store.EntryIncome
	*m.formAmount = ""
	*m.formCategory = ""
	*m.formNote = ""

	typeOptions := make([]huh.Option[string], len(store.EntryTypes))
	for i, t := range store.EntryTypes {
		typeOptions[i] = huh.NewOption(t, t)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(m.formType),
			huh.NewInput().Title("Amount").Value(m.formAmount),
			huh.NewInput().
				Title("Category").
				Suggestions(store.FinanceCategories).
				Placeholder("Uncategorized").
				Value(m.formCategory),
			huh.NewInput().Title("Note").Value(m.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m financeModel) updateForm(msg tea.Msg) (financeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if _, err := m.store.AddFinanceEntry(*m.formType, *m.formAmount, *m.formCategory, *m.formNote); err != nil {
			return m, errorStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Entry logged"))
	}

	return m, cmd
}

func (m *financeModel) buildChart() {
	chartWidth := min(m.width-8, 40)
	if chartWidth < 20 {
		chartWidth = 20
	}

	m.chart = barchart.New(chartWidth, 8)

	income, _ := m.summary.Income.Float64()
	expense, _ := m.summary.Expense.Float64()

	m.chart.PushAll([]barchart.BarData{
		{
			Label: "Income",
			Values: []barchart.BarValue{
				{Name: "Income", Value: income, Style: successStyle},
			},
		},
		{
			Label: "Expenses",
			Values: []barchart.BarValue{
				{Name: "Expenses", Value: expense, Style: errorStyle},
			},
		},
	})
	m.chart.Draw()
}

func (m financeModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log Transaction")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4

	ledger := m.renderLedger()
	summary := m.renderSummary()

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(ledger),
		panelStyle.Width(w).Render(summary),
	)
}

func (m financeModel) renderLedger() string {
	title := titleStyle.Render("Ledger")

	if len(m.entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No transactions yet. Press n to log one."),
		)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-18s %-8s %12s  %-14s %s", "Date", "Type", "Amount", "Category", "Note"))
	rows = append(rows, header)

	start := 0
	if m.cursor >= ledgerWindow {
		start = m.cursor - ledgerWindow + 1
	}
	end := min(start+ledgerWindow, len(m.entries))

	for i := start; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		amount := formatSignedAmount(e)
		rows = append(rows, style.Render(fmt.Sprintf("%s%-18s %-8s %12s  %-14s %s",
			cursor, e.CreatedAt, e.EntryType, amount, truncate(e.Category, 14), truncate(e.Note, 24))))
	}

	if len(m.entries) > ledgerWindow {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %d of %d entries", end-start, len(m.entries))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new entry  e: export ledger"))
	return strings.Join(rows, "\n")
}

func (m financeModel) renderSummary() string {
	title := titleStyle.Render("Summary")

	line := fmt.Sprintf("%s   %s   %s",
		successStyle.Render("Income: "+formatMoney(m.summary.Income)),
		errorStyle.Render("Expenses: "+formatMoney(m.summary.Expense)),
		highlightStyle.Render("Balance: "+formatMoney(m.summary.Balance)),
	)

	if len(m.entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", line, "", m.chart.View())
}
