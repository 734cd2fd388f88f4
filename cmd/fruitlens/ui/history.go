package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type HistoryModel struct {
	Deps  *Deps
	Table table.Model
	Err   error
}

func NewHistoryModel(deps *Deps, width, height int) HistoryModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Result", Width: 12},
		{Title: "When", Width: 20},
		{Title: "Photo", Width: 48},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 5)),
	)

	sStyle := table.DefaultStyles()
	sStyle.Header = sStyle.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	sStyle.Selected = sStyle.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(sStyle)

	return HistoryModel{Deps: deps, Table: t}
}

func (m HistoryModel) Init() tea.Cmd { return m.load }

func (m HistoryModel) load() tea.Msg {
	recs, err := m.Deps.Session.History()
	if err != nil {
		return errMsg{err}
	}
	return historyLoadedMsg{records: recs}
}

func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.load
		}
	case historyLoadedMsg:
		rows := make([]table.Row, 0, len(msg.records))
		for _, rec := range msg.records {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", rec.ID), rec.Result, rec.Timestamp, rec.ImagePath,
			})
		}
		m.Table.SetRows(rows)
		m.Err = nil
	case errMsg:
		m.Err = msg.err
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FruitLens — History"))
	b.WriteString("\n\n")
	b.WriteString(m.Table.View())
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(errorMessageStyle(m.Err.Error()) + "\n")
	}
	b.WriteString(helpStyle("r refresh • esc back • ctrl+c quit"))
	return docStyle.Render(b.String())
}
