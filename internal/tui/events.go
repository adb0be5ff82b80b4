package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jdmarlow86/sdalocal/internal/store"
)

type eventsModel struct {
	store  *store.Store
	width  int
	height int

	events []store.Event
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle *string
	formDate  *string
	formDesc  *string
}

func newEventsModel(s *store.Store) eventsModel {
	title, date, desc := "", "", ""
	return eventsModel{
		store:     s,
		formTitle: &title,
		formDate:  &date,
		formDesc:  &desc,
	}
}

func (m *eventsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m eventsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return eventsDataMsg{events: m.store.Events()}
	}
}

func (m eventsModel) update(msg tea.Msg) (eventsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case eventsDataMsg:
		m.events = msg.events
		if m.cursor >= len(m.events) {
			m.cursor = max(0, len(m.events)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.events)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showNewEventForm()
		case key.Matches(msg, keys.Delete):
			if len(m.events) > 0 {
				ev := m.events[m.cursor]
				if err := m.store.DeleteEvent(ev.Title, ev.Date); err != nil {
					return m, errorStatus(err)
				}
				return m, tea.Batch(m.refresh(), status("Event deleted"))
			}
		}
	}
	return m, nil
}

func (m eventsModel) showNewEventForm() (eventsModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formDate = time.Now().Format("2006-01-02")
	*m.formDesc = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(m.formDate),
			huh.NewText().Title("Description").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m eventsModel) updateForm(msg tea.Msg) (eventsModel, tea.Cmd) {
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
		if _, err := m.store.AddEvent(*m.formTitle, *m.formDate, *m.formDesc); err != nil {
			return m, errorStatus(err)
		}
		return m, tea.Batch(m.refresh(), status("Event added"))
	}

	return m, cmd
}

func (m eventsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("Create Event")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	title := titleStyle.Render("Upcoming Bulletin")

	if len(m.events) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No events yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %s", "Date", "Title"))
	rows = append(rows, header)

	for i, ev := range m.events {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %s", cursor, ev.Date, truncate(ev.Title, 48))))
	}

	rows = append(rows, "")
	rows = append(rows, m.renderDetails())
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete selected"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m eventsModel) renderDetails() string {
	if len(m.events) == 0 {
		return ""
	}
	ev := m.events[m.cursor]
	lines := []string{
		highlightStyle.Render(ev.Title) + mutedStyle.Render("  "+ev.Date),
	}
	if ev.Description != "" {
		lines = append(lines, ev.Description)
	}
	return strings.Join(lines, "\n")
}
