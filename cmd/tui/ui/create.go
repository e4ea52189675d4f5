package ui

import (
	"fmt"
	"strings"

	"github.com/Varun5711/noted/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type createNoteSuccessMsg struct {
	title string
}

type createNoteErrorMsg struct {
	err error
}

type CreateModel struct {
	titleInput   string
	bodyInput    string
	focusedInput int
	loading      bool
	result       string
	err          error
	apiClient    *client.Client
}

func NewCreateModel() *CreateModel {
	return &CreateModel{
		focusedInput: 0,
	}
}

func (m *CreateModel) SetClient(c *client.Client) {
	m.apiClient = c
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func createNoteCmd(c *client.Client, title, body string) tea.Cmd {
	return func() tea.Msg {
		note, err := c.CreateNote(title, body)
		if err != nil {
			return createNoteErrorMsg{err: err}
		}

		return createNoteSuccessMsg{title: note.Title}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createNoteSuccessMsg:
		m.loading = false
		m.err = nil
		m.result = msg.title
		m.titleInput = ""
		m.bodyInput = ""
		m.focusedInput = 0
		return m, nil

	case createNoteErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 2
		case "enter":
			if m.focusedInput == 0 {
				m.focusedInput = 1
				return m, nil
			}
			if m.titleInput == "" {
				m.err = fmt.Errorf("title cannot be empty")
				return m, nil
			}

			m.loading = true
			m.err = nil
			m.result = ""
			return m, createNoteCmd(m.apiClient, m.titleInput, m.bodyInput)
		case "backspace":
			if m.focusedInput == 0 && len(m.titleInput) > 0 {
				m.titleInput = m.titleInput[:len(m.titleInput)-1]
			} else if m.focusedInput == 1 && len(m.bodyInput) > 0 {
				m.bodyInput = m.bodyInput[:len(m.bodyInput)-1]
			}
		case "ctrl+l":
			m.titleInput = ""
			m.bodyInput = ""
			m.err = nil
			m.result = ""
		default:
			if len(msg.String()) == 1 || msg.String() == " " {
				if m.focusedInput == 0 {
					m.titleInput += msg.String()
				} else {
					m.bodyInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("NEW NOTE")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	titleLabel := LabelStyle.Width(10).Render("Title:")
	var titleInputStyle lipgloss.Style
	if m.focusedInput == 0 {
		titleInputStyle = FocusedInputStyle
	} else {
		titleInputStyle = InputStyle
	}
	titleValue := titleInputStyle.Width(55).Render(m.titleInput)
	titleField := lipgloss.JoinHorizontal(lipgloss.Left, titleLabel, titleValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(titleField))
	b.WriteString("\n\n")

	bodyLabel := LabelStyle.Width(10).Render("Body:")
	var bodyInputStyle lipgloss.Style
	if m.focusedInput == 1 {
		bodyInputStyle = FocusedInputStyle
	} else {
		bodyInputStyle = InputStyle
	}
	bodyValue := bodyInputStyle.Width(55).Render(m.bodyInput)
	bodyField := lipgloss.JoinHorizontal(lipgloss.Left, bodyLabel, bodyValue)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(bodyField))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("🔄 Saving note...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.result != "" {
		ok := lipgloss.NewStyle().Foreground(Success).Render("✅ Saved \"" + truncate(m.result, 40) + "\"")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(ok))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter save  •  ctrl+l clear  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}
