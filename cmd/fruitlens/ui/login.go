package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type LoginModel struct {
	Deps     *Deps
	Inputs   []textinput.Model
	FocusIdx int
	Err      error
}

const (
	loginUsername = iota
	loginPassword
)

func NewLoginModel(deps *Deps) LoginModel {
	inputs := make([]textinput.Model, 2)

	inputs[loginUsername] = textinput.New()
	inputs[loginUsername].Placeholder = "username"
	inputs[loginUsername].Prompt = "Username: "
	inputs[loginUsername].Focus()

	inputs[loginPassword] = textinput.New()
	inputs[loginPassword].Placeholder = "password"
	inputs[loginPassword].Prompt = "Password: "
	inputs[loginPassword].EchoMode = textinput.EchoPassword

	return LoginModel{Deps: deps, Inputs: inputs}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
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

func (m LoginModel) submit() tea.Msg {
	username := strings.TrimSpace(m.Inputs[loginUsername].Value())
	password := m.Inputs[loginPassword].Value()
	if username == "" || password == "" {
		return errMsg{fmt.Errorf("username and password are required")}
	}
	u, err := m.Deps.Accounts.Login(username, password)
	if err != nil {
		return errMsg{err}
	}
	return loggedInMsg{user: u}
}

func (m *LoginModel) nextInput() { m.FocusIdx = (m.FocusIdx + 1) % len(m.Inputs) }

func (m *LoginModel) prevInput() {
	m.FocusIdx--
	if m.FocusIdx < 0 {
		m.FocusIdx = len(m.Inputs) - 1
	}
}

func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FruitLens — Sign in"))
	b.WriteString("\n\n")
	for i := range m.Inputs {
		b.WriteString(m.Inputs[i].View())
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle("enter submit • tab next field • ctrl+r register • ctrl+c quit"))
	return docStyle.Render(b.String())
}
