package ui

import (
	"github.com/Varun5711/noted/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	LoginView View = iota
	SignupView
	MenuView
	CreateView
	ListView
)

type Model struct {
	currentView View
	login       *LoginModel
	signup      *SignupModel
	menu        *MenuModel
	create      *CreateModel
	list        *ListModel
	apiClient   *client.Client
	width       int
	height      int

	isAuthenticated bool
	userID          string
	username        string
}

func NewModel(apiClient *client.Client) Model {
	loginModel := NewLoginModel()
	loginModel.SetClient(apiClient)

	signupModel := NewSignupModel()
	signupModel.SetClient(apiClient)

	createModel := NewCreateModel()
	createModel.SetClient(apiClient)

	listModel := NewListModel()
	listModel.SetClient(apiClient)

	return Model{
		currentView: LoginView,
		login:       loginModel,
		signup:      signupModel,
		menu:        NewMenuModel(),
		create:      createModel,
		list:        listModel,
		apiClient:   apiClient,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSuccessMsg:
		m.isAuthenticated = true
		m.userID = msg.userID
		m.username = msg.username
		m.apiClient.SetToken(msg.token)
		m.currentView = MenuView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView == MenuView || m.currentView == LoginView || m.currentView == SignupView {
				return m, tea.Quit
			}
			m.currentView = MenuView
			return m, nil

		case "ctrl+s":
			// Toggle between login and signup
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			} else if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		updatedLogin, cmd := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		return m, cmd

	case SignupView:
		updatedSignup, cmd := m.signup.Update(msg)
		m.signup = updatedSignup.(*SignupModel)
		return m, cmd

	case MenuView:
		updatedMenu, cmd := m.menu.Update(msg)
		m.menu = updatedMenu.(*MenuModel)
		if m.menu.selected != -1 {
			switch m.menu.selected {
			case 0:
				m.currentView = CreateView
			case 1:
				m.currentView = ListView
				m.list.Reset()
			}
			m.menu.selected = -1
		}
		return m, cmd

	case CreateView:
		updatedCreate, cmd := m.create.Update(msg)
		m.create = updatedCreate.(*CreateModel)
		return m, cmd

	case ListView:
		updatedList, cmd := m.list.Update(msg)
		m.list = updatedList.(*ListModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.isAuthenticated && m.currentView != LoginView && m.currentView != SignupView {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + m.username)

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case MenuView:
		mainContent = m.menu.View()
	case CreateView:
		mainContent = m.create.View()
	case ListView:
		mainContent = m.list.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
