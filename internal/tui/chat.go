package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jdmarlow86/sdalocal/internal/store"
)

const (
	autoReplySender = "Auto-reply"
	autoReplyText   = "Message received. We'll follow up soon!"
	autoReplyDelay  = 300 * time.Millisecond
)

// chatWindow caps how many chat lines render at once; the newest stay visible.
const chatWindow = 14

type chatModel struct {
	store  *store.Store
	width  int
	height int

	messages []store.ChatMessage
	input    textinput.Model
	typing   bool

	videoActive bool
	videoForm   *huh.Form
	videoURL    *string
}

func newChatModel(s *store.Store) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message"
	ti.CharLimit = 280

	url := ""
	return chatModel{
		store:    s,
		input:    ti,
		videoURL: &url,
	}
}

func (m *chatModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(w-12, 20)
}

func (m chatModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return chatDataMsg{messages: m.store.ChatMessages()}
	}
}

// autoReplyCmd schedules the fire-once delayed reply. It cannot be cancelled
// and is lost if the program exits before it fires.
func autoReplyCmd() tea.Cmd {
	return tea.Tick(autoReplyDelay, func(time.Time) tea.Msg {
		return autoReplyMsg{}
	})
}

// capturingInput reports whether keystrokes belong to this tab's input or
// video form rather than to global key bindings.
func (m chatModel) capturingInput() bool {
	return m.typing || m.videoActive
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	if m.videoActive && m.videoForm != nil {
		return m.updateVideoForm(msg)
	}

	switch msg := msg.(type) {
	case chatDataMsg:
		m.messages = msg.messages
		return m, nil

	case autoReplyMsg:
		if _, err := m.store.AppendChat(autoReplySender, autoReplyText); err != nil {
			return m, errorStatus(err)
		}
		return m, m.refresh()

	case tea.KeyMsg:
		if m.typing {
			return m.updateTyping(msg)
		}
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			m.typing = true
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, keys.Video):
			return m.showVideoForm()
		}
	}
	return m, nil
}

func (m chatModel) updateTyping(msg tea.KeyMsg) (chatModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.typing = false
		m.input.Blur()
		return m, nil
	case "enter":
		text := m.input.Value()
		m.input.SetValue("")
		sent, err := m.store.AppendChat("You", text)
		if err != nil {
			return m, errorStatus(err)
		}
		if sent == nil {
			// Blank messages are silently ignored.
			return m, nil
		}
		return m, tea.Batch(m.refresh(), autoReplyCmd())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) showVideoForm() (chatModel, tea.Cmd) {
	*m.videoURL = ""
	m.videoForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Video URL or file path").Value(m.videoURL),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.videoActive = true
	return m, m.videoForm.Init()
}

func (m chatModel) updateVideoForm(msg tea.Msg) (chatModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.videoActive = false
			m.videoForm = nil
			return m, nil
		}
	}

	form, cmd := m.videoForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.videoForm = f
	}

	if m.videoForm.State == huh.StateCompleted {
		m.videoActive = false
		url := strings.TrimSpace(*m.videoURL)
		if url == "" {
			return m, status("Enter a video URL or file path to open.")
		}
		return m, openVideoCmd(url)
	}

	return m, cmd
}

func openVideoCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := openURL(url); err != nil {
			return statusMsg{text: fmt.Sprintf("Could not open video: %v", err), isError: true}
		}
		return statusMsg{text: "Opened " + url}
	}
}

// openURL hands the URL to the platform opener.
func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func (m chatModel) view() string {
	if m.videoActive && m.videoForm != nil {
		title := titleStyle.Render("Video Broadcast")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.videoForm.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	title := titleStyle.Render("Team Chat")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if len(m.messages) == 0 {
		rows = append(rows, mutedStyle.Render("No messages yet."))
	} else {
		start := max(0, len(m.messages)-chatWindow)
		for _, msg := range m.messages[start:] {
			sender := highlightStyle.Render(msg.Sender)
			if msg.Sender == autoReplySender {
				sender = accentStyle.Render(msg.Sender)
			}
			rows = append(rows, fmt.Sprintf("%s %s: %s",
				mutedStyle.Render("["+msg.Timestamp+"]"), sender, msg.Message))
		}
	}

	rows = append(rows, "")
	if m.typing {
		rows = append(rows, m.input.View())
		rows = append(rows, mutedStyle.Render("  enter: send  esc: stop typing"))
	} else {
		rows = append(rows, mutedStyle.Render("  enter: write message  v: open video"))
	}

	style := panelStyle
	if m.typing {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}
