package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// HomeModel is the classify screen: enter a photo path, get a ripeness
// verdict, see the explanation when the analysis endpoint supplied one.
type HomeModel struct {
	Deps     *Deps
	Username string
	IsAdmin  bool
	PathIn   textinput.Model
	Last     *classifiedMsg
	Err      error
	Busy     bool
}

func NewHomeModel(deps *Deps, username string, isAdmin bool) HomeModel {
	in := textinput.New()
	in.Placeholder = "/path/to/fruit.jpg"
	in.Prompt = "Photo: "
	in.Focus()
	return HomeModel{Deps: deps, Username: username, IsAdmin: isAdmin, PathIn: in}
}

func (m HomeModel) Init() tea.Cmd { return textinput.Blink }

func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !m.Busy {
			path := strings.TrimSpace(m.PathIn.Value())
			if path == "" {
				m.Err = fmt.Errorf("enter the path of a photo to classify")
				return m, nil
			}
			m.Busy = true
			m.Err = nil
			return m, m.classify(path)
		}
	case classifiedMsg:
		m.Busy = false
		m.Last = &msg
		m.PathIn.SetValue("")
	case errMsg:
		m.Busy = false
		m.Err = msg.err
	}

	var cmd tea.Cmd
	m.PathIn, cmd = m.PathIn.Update(msg)
	return m, cmd
}

func (m HomeModel) classify(path string) tea.Cmd {
	return func() tea.Msg {
		uid, ok := m.Deps.Session.CurrentUser()
		if !ok {
			return errMsg{fmt.Errorf("session expired, log in again")}
		}
		saved, err := m.Deps.Images.SaveLocal(uid, path)
		if err != nil {
			return errMsg{fmt.Errorf("cannot read photo: %w", err)}
		}
		res := m.Deps.Classifier.ClassifyOrFallback(context.Background(), saved)
		id, err := m.Deps.Session.RecordClassification(saved, res.Label)
		if err != nil {
			return errMsg{err}
		}
		return classifiedMsg{path: saved, label: res.Label, explanation: res.Explanation, imageID: id}
	}
}

func (m HomeModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FruitLens — " + m.Username))
	b.WriteString("\n\n")
	b.WriteString(m.PathIn.View())
	b.WriteString("\n")
	if m.Busy {
		b.WriteString("\nclassifying...\n")
	}
	if m.Last != nil {
		b.WriteString("\n" + resultStyle.Render("Result: "+m.Last.label) + "\n")
		if m.Last.explanation != "" {
			b.WriteString(m.Last.explanation + "\n")
		}
	}
	if m.Err != nil {
		b.WriteString("\n" + errorMessageStyle(m.Err.Error()) + "\n")
	}
	help := "enter classify • ctrl+h history • ctrl+l logout • ctrl+c quit"
	if m.IsAdmin {
		help = "enter classify • ctrl+h history • ctrl+a admin • ctrl+l logout • ctrl+c quit"
	}
	b.WriteString("\n" + helpStyle(help))
	return docStyle.Render(b.String())
}
