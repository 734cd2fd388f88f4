package ui

import (
	"fruitlens/backend/app/models"
	"fruitlens/backend/watcher"

	tea "github.com/charmbracelet/bubbletea"
)

type state int

const (
	stateLogin state = iota
	stateRegister
	stateHome
	stateHistory
	stateAdmin
)

type watcherEventMsg struct{ event watcher.Event }

type RootModel struct {
	State    state
	Deps     *Deps
	Login    LoginModel
	Register RegisterModel
	Home     HomeModel
	History  HistoryModel
	Admin    AdminModel

	user       *models.User
	dropWatch  *watcher.Watcher
	dropEvents <-chan watcher.Event

	Quitting bool
	width    int
	height   int
}

func NewRootModel(deps *Deps) RootModel {
	return RootModel{
		State: stateLogin,
		Deps:  deps,
		Login: NewLoginModel(deps),
	}
}

func (m RootModel) Init() tea.Cmd {
	return m.Login.Init()
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.History.Table.SetHeight(max(msg.Height-10, 5))
		m.Admin.Users.SetHeight(max(msg.Height-12, 5))
		m.Admin.Images.SetHeight(max(msg.Height-12, 5))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Quitting = true
			m.shutdownWatcher()
			return m, tea.Quit
		}

	case loggedInMsg:
		m.user = msg.user
		m.Deps.Session.SetCurrentUser(msg.user.ID)
		m.State = stateHome
		m.Home = NewHomeModel(m.Deps, msg.user.Username, msg.user.Role == models.RoleAdmin)
		cmds = append(cmds, m.Home.Init())
		if cmd := m.startWatcher(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case registeredMsg:
		// back to login with the fresh username prefilled
		m.State = stateLogin
		m.Login = NewLoginModel(m.Deps)
		m.Login.Inputs[loginUsername].SetValue(msg.username)
		return m, m.Login.Init()

	case watcherEventMsg:
		// keep draining; history picks the records up on refresh
		cmds = append(cmds, m.waitForDrop())
		if m.State == stateHistory {
			cmds = append(cmds, m.History.load)
		}
		return m, tea.Batch(cmds...)
	}

	switch m.State {
	case stateLogin:
		if key, ok := msg.(tea.KeyMsg); ok {
			if key.Type == tea.KeyCtrlR {
				m.State = stateRegister
				m.Register = NewRegisterModel(m.Deps)
				return m, m.Register.Init()
			}
		}
		var cmd tea.Cmd
		m.Login, cmd = m.Login.Update(msg)
		cmds = append(cmds, cmd)

	case stateRegister:
		if key, ok := msg.(tea.KeyMsg); ok {
			if key.Type == tea.KeyEsc {
				m.State = stateLogin
				m.Login = NewLoginModel(m.Deps)
				return m, m.Login.Init()
			}
		}
		var cmd tea.Cmd
		m.Register, cmd = m.Register.Update(msg)
		cmds = append(cmds, cmd)

	case stateHome:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.Type {
			case tea.KeyCtrlH:
				m.State = stateHistory
				m.History = NewHistoryModel(m.Deps, m.width, m.height)
				return m, m.History.Init()
			case tea.KeyCtrlA:
				if m.user != nil && m.user.Role == models.RoleAdmin {
					m.State = stateAdmin
					m.Admin = NewAdminModel(m.Deps, m.width, m.height)
					return m, m.Admin.Init()
				}
			case tea.KeyCtrlL:
				m.logout()
				return m, m.Login.Init()
			}
		}
		var cmd tea.Cmd
		m.Home, cmd = m.Home.Update(msg)
		cmds = append(cmds, cmd)

	case stateHistory:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			m.State = stateHome
			return m, nil
		}
		var cmd tea.Cmd
		m.History, cmd = m.History.Update(msg)
		cmds = append(cmds, cmd)

	case stateAdmin:
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && !m.Admin.Editing {
			m.State = stateHome
			return m, nil
		}
		var cmd tea.Cmd
		m.Admin, cmd = m.Admin.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *RootModel) logout() {
	m.shutdownWatcher()
	m.Deps.Session.Clear()
	m.user = nil
	m.State = stateLogin
	m.Login = NewLoginModel(m.Deps)
}

func (m *RootModel) startWatcher() tea.Cmd {
	if len(m.Deps.WatchPaths) == 0 {
		return nil
	}
	w, err := watcher.New(m.Deps.WatchPaths, m.Deps.Session, m.Deps.Images, m.Deps.Classifier)
	if err != nil {
		return nil
	}
	m.dropWatch = w
	m.dropEvents = w.Start()
	return m.waitForDrop()
}

func (m RootModel) waitForDrop() tea.Cmd {
	ch := m.dropEvents
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return watcherEventMsg{event: evt}
	}
}

func (m *RootModel) shutdownWatcher() {
	if m.dropWatch != nil {
		m.dropWatch.Stop()
		m.dropWatch = nil
		m.dropEvents = nil
	}
}

func (m RootModel) View() string {
	if m.Quitting {
		return ""
	}
	switch m.State {
	case stateLogin:
		return m.Login.View()
	case stateRegister:
		return m.Register.View()
	case stateHome:
		return m.Home.View()
	case stateHistory:
		return m.History.View()
	case stateAdmin:
		return m.Admin.View()
	}
	return ""
}
