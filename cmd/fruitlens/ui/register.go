package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// RegisterModel covers both normal sign-up and, when the admin key field is
// filled, privileged registration.
type RegisterModel struct {
	Deps     *Deps
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
}

const (
	regUsername = iota
	regPassword
	regAdminKey
)

func NewRegisterModel(deps *Deps) RegisterModel {
	inputs := make([]textinput.Model, 3)

	inputs[regUsername] = textinput.New()
	inputs[regUsername].Placeholder = "username"
	inputs[regUsername].Prompt = "Username:  "
	inputs[regUsername].Focus()

	inputs[regPassword] = textinput.New()
	inputs[regPassword].Placeholder = "password"
	inputs[regPassword].Prompt = "Password:  "
	inputs[regPassword].EchoMode = textinput.EchoPassword

	inputs[regAdminKey] = textinput.New()
	inputs[regAdminKey].Placeholder = "leave empty for a normal account"
	inputs[regAdminKey].Prompt = "Admin key: "
	inputs[regAdminKey].EchoMode = textinput.EchoPassword

	return RegisterModel{Deps: deps, Inputs: inputs}
}

func (m RegisterModel) Init() tea.Cmd { return textinput.Blink }

func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.Inputs))

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if m.FocusIdx == len(m.Inputs)-1 {
				return m, m.submit
			}
			m.nextInput()
		case tea.KeyTab, tea.KeyDown:
			m.nextInput()
		case tea.KeyShiftTab, tea.KeyUp:
			m.prevInput()
		}
		for i := range m.Inputs {
			if i == m.FocusIdx {
				m.Inputs[i].Focus()
				m.Inputs[i].PromptStyle = focusedStyle
			} else {
				m.Inputs[i].Blur()
				m.Inputs[i].PromptStyle = blurredStyle
			}
		}
	case errMsg:
		m.Err = msg.err
	}

	for i := range m.Inputs {
		m.Inputs[i], cmds[i] = m.Inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m RegisterModel) submit() tea.Msg {
	username := strings.TrimSpace(m.Inputs[regUsername].Value())
	password := m.Inputs[regPassword].Value()
	adminKey := m.Inputs[regAdminKey].Value()
	if username == "" || password == "" {
		return errMsg{fmt.Errorf("username and password are required")}
	}
	var err error
	if adminKey != "" {
		err = m.Deps.Accounts.CreateAdminUser(adminKey, username, password)
	} else {
		err = m.Deps.Accounts.Register(username, password, false)
	}
	if err != nil {
		return errMsg{err}
	}
	return registeredMsg{username: username}
}

func (m *RegisterModel) nextInput() { m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs) }

func (m *RegisterModel) prevInput() {
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
}

func (m RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FruitLens — Create account"))
	b.WriteString("\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle("enter submit • esc back to login • ctrl+c quit"))
	return docStyle.Render(b.String())
}
