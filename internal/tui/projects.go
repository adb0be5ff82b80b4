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

type projectsModel struct {
	store  *store.Store
	width  int
	height int

	projects []store.Project
	cursor   int

	formActive bool
	form       *huh.Form
	formType   string // "project", "status", "delete"

	// Form field pointers (survive value copies)
	formName    *string
	formManager *string
	formStart   *string
	formEnd     *string
	formBudget  *string
	formStatus  *string
	formDesc    *string
	formConfirm *bool

	// Key of the project a status/delete form targets.
	targetName string
}

func newProjectsModel(s *store.Store) projectsModel {
	name, manager, start, end, budget, status, desc := "", "", "", "", "", store.ProjectStatuses[0], ""
	confirm := false
	return projectsModel{
		store:       s,
		formName:    &name,
		formManager: &manager,
		formStart:   &start,
		formEnd:     &end,
		formBudget:  &budget,
		formStatus:  &status,
		formDesc:    &desc,
		formConfirm: &confirm,
	}
}

func (m *projectsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return projectsDataMsg{projects: m.store.Projects()}
	}
}

func (m projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		m.projects = msg.projects
		if m.cursor >= len(m.projects) {
			m.cursor = max(0, len(m.projects)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showNewProjectForm()
		case key.Matches(msg, keys.Status):
			if len(m.projects) > 0 {
				return m.showStatusForm()
			}
		case key.Matches(msg, keys.Delete):
			if len(m.projects) > 0 {
				return m.showDeleteConfirm()
			}
		}
	}
	return m, nil
}

func statusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(store.ProjectStatuses))
	for i, s := range store.ProjectStatuses {
		opts[i] = huh.NewOption(s, s)
	}
	return opts
}

func (m projectsModel) showNewProjectForm() (projectsModel, tea.Cmd) {
	*m.formName = ""
	*m.formManager = ""
	*m.formStart = time.Now().Format("2006-01-02")
	*m.formEnd = ""
	*m.formBudget = ""
	*m.formStatus = store.ProjectStatuses[0]
	*m.formDesc = ""
	m.formType = "project"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project Name").Value(m.formName),
			huh.NewInput().Title("Project Manager").Value(m.formManager),
			huh.NewInput().Title("Start Date").Value(m.formStart),
			huh.NewInput().Title("End Date").Value(m.formEnd),
			huh.NewInput().Title("Budget ($)").Value(m.formBudget),
			huh.NewSelect[string]().Title("Status").Options(statusOptions()...).Value(m.formStatus),
			huh.NewText().Title("Description").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m projectsModel) showStatusForm() (projectsModel, tea.Cmd) {
	proj := m.projects[m.cursor]
	m.targetName = proj.Name
	*m.formStatus = proj.Status
	m.formType = "status"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status for " + proj.Name).
				Options(statusOptions()...).
				Value(m.formStatus),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m projectsModel) showDeleteConfirm() (projectsModel, tea.Cmd) {
	proj := m.projects[m.cursor]
	m.targetName = proj.Name
	*m.formConfirm = false
	m.formType = "delete"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Are you sure you want to remove this project?").
				Description(proj.Name).
				Value(m.formConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
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
		switch m.formType {
		case "project":
			_, err := m.store.AddProject(*m.formName, *m.formManager, *m.formStart,
				*m.formEnd, *m.formBudget, *m.formStatus, *m.formDesc)
			if err != nil {
				return m, errorStatus(err)
			}
			return m, tea.Batch(m.refresh(), status("Project added"))
		case "status":
			if err := m.store.UpdateProjectStatus(m.targetName, *m.formStatus); err != nil {
				return m, errorStatus(err)
			}
			return m, tea.Batch(m.refresh(), status("Status updated"))
		case "delete":
			if !*m.formConfirm {
				return m, nil
			}
			if err := m.store.DeleteProject(m.targetName); err != nil {
				return m, errorStatus(err)
			}
			return m, tea.Batch(m.refresh(), status("Project deleted"))
		}
	}

	return m, cmd
}

func (m projectsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("Project Details")
		if m.formType == "status" {
			title = titleStyle.Render("Update Status")
		} else if m.formType == "delete" {
			title = titleStyle.Render("Delete Project")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	title := titleStyle.Render("Projects Overview")

	if len(m.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-24s %-12s %-12s %-12s %12s", "Name", "Status", "Start", "End", "Budget"))
	rows = append(rows, header)

	for i, p := range m.projects {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %-12s %-12s %-12s %12s",
			cursor, truncate(p.Name, 24), p.Status, p.StartDate, p.EndDate, formatMoney(p.Budget))))
	}

	rows = append(rows, "")
	rows = append(rows, m.renderDetails())
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  u: update status  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m projectsModel) renderDetails() string {
	if len(m.projects) == 0 {
		return ""
	}
	p := m.projects[m.cursor]
	lines := []string{
		highlightStyle.Render(p.Name) + mutedStyle.Render("  "+p.Status),
		fmt.Sprintf("Manager: %s", p.Manager),
		fmt.Sprintf("Timeline: %s - %s", p.StartDate, p.EndDate),
		fmt.Sprintf("Budget: %s", formatMoney(p.Budget)),
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	return strings.Join(lines, "\n")
}
