package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/noted/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type NoteItem struct {
	ID        int64
	Title     string
	Body      string
	UpdatedAt string
}

type listNotesSuccessMsg struct {
	notes []NoteItem
}

type listNotesErrorMsg struct {
	err error
}

type deleteNoteDoneMsg struct {
	err error
}

type ListModel struct {
	notes     []NoteItem
	cursor    int
	loading   bool
	err       error
	apiClient *client.Client
	loaded    bool
}

func NewListModel() *ListModel {
	return &ListModel{
		notes: []NoteItem{},
	}
}

func (m *ListModel) SetClient(c *client.Client) {
	m.apiClient = c
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func (m *ListModel) Reset() {
	m.loaded = false
	m.cursor = 0
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func relativeTime(t time.Time) string {
	ago := time.Since(t)
	switch {
	case ago < time.Hour:
		return fmt.Sprintf("%d min ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(ago.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(ago.Hours()/24))
	}
}

func listNotesCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.ListNotes()
		if err != nil {
			return listNotesErrorMsg{err: err}
		}

		notes := make([]NoteItem, 0, len(resp.Notes))
		for _, n := range resp.Notes {
			notes = append(notes, NoteItem{
				ID:        n.ID,
				Title:     n.Title,
				Body:      n.Body,
				UpdatedAt: relativeTime(n.UpdatedAt),
			})
		}

		return listNotesSuccessMsg{notes: notes}
	}
}

func deleteNoteCmd(c *client.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		return deleteNoteDoneMsg{err: c.DeleteNote(id)}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listNotesSuccessMsg:
		m.loading = false
		m.notes = msg.notes
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.notes) && m.cursor > 0 {
			m.cursor = len(m.notes) - 1
		}
		return m, nil

	case listNotesErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case deleteNoteDoneMsg:
		if msg.err != nil {
			m.loading = false
			m.err = msg.err
			return m, nil
		}
		return m, listNotesCmd(m.apiClient)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.notes)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listNotesCmd(m.apiClient)
			}
		case "d":
			if !m.loading && len(m.notes) > 0 {
				m.loading = true
				m.err = nil
				return m, deleteNoteCmd(m.apiClient, m.notes[m.cursor].ID)
			}
		}
	}

	if !m.loaded && !m.loading && m.apiClient != nil {
		m.loading = true
		return m, listNotesCmd(m.apiClient)
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("MY NOTES")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	if m.loading {
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading notes...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if len(m.notes) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("📝 No notes yet. Create one first!")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		for i, note := range m.notes {
			var cardStyle lipgloss.Style
			if i == m.cursor {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Accent).
					Padding(1, 2).
					Width(70).
					MarginBottom(1)
			} else {
				cardStyle = lipgloss.NewStyle().
					Border(lipgloss.RoundedBorder()).
					BorderForeground(Muted).
					Padding(1, 2).
					Width(70).
					MarginBottom(1)
			}

			titleLabel := lipgloss.NewStyle().Foreground(Accent).Bold(true).Render("📄 " + truncate(note.Title, 50))
			bodyValue := lipgloss.NewStyle().Foreground(Text).Render(truncate(note.Body, 60))
			timeValue := lipgloss.NewStyle().Foreground(Muted).Render("Updated " + note.UpdatedAt)

			cardContent := lipgloss.JoinVertical(lipgloss.Left,
				titleLabel,
				bodyValue,
				timeValue,
			)

			card := cardStyle.Render(cardContent)
			b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  r refresh  •  d delete  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
