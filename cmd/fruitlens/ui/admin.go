package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type adminTab int

const (
	tabUsers adminTab = iota
	tabImages
)

// AdminModel is the management panel: user and image record tables with
// delete and user-edit actions. Deleting a user cascades to their images.
type AdminModel struct {
	Deps   *Deps
	Tab    adminTab
	Users  table.Model
	Images table.Model
	Err    error

	Editing    bool
	EditID     uint
	EditInputs []textinput.Model
	EditFocus  int
}

func NewAdminModel(deps *Deps, width, height int) AdminModel {
	h := max(height-12, 5)

	users := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Username", Width: 24},
			{Title: "Role", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(h),
	)
	images := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "User", Width: 6},
			{Title: "Result", Width: 12},
			{Title: "When", Width: 20},
			{Title: "Photo", Width: 40},
		}),
		table.WithHeight(h),
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
	users.SetStyles(sStyle)
	images.SetStyles(sStyle)

	return AdminModel{Deps: deps, Users: users, Images: images}
}

func (m AdminModel) Init() tea.Cmd { return m.load }

func (m AdminModel) load() tea.Msg {
	users, err := m.Deps.Accounts.ListUsers()
	if err != nil {
		return errMsg{err}
	}
	images, err := m.Deps.Images.ListAll()
	if err != nil {
		return errMsg{err}
	}
	return adminDataMsg{users: users, images: images}
}

func (m AdminModel) Update(msg tea.Msg) (AdminModel, tea.Cmd) {
	if m.Editing {
		return m.updateEdit(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.switchTab()
		case "r":
			return m, m.load
		case "d":
			return m, m.deleteSelected()
		case "e":
			if m.Tab == tabUsers {
				m.startEdit()
			}
		}
	case adminDataMsg:
		userRows := make([]table.Row, 0, len(msg.users))
		for _, u := range msg.users {
			userRows = append(userRows, table.Row{fmt.Sprintf("%d", u.ID), u.Username, u.Role})
		}
		m.Users.SetRows(userRows)

		imageRows := make([]table.Row, 0, len(msg.images))
		for _, rec := range msg.images {
			imageRows = append(imageRows, table.Row{
				fmt.Sprintf("%d", rec.ID), fmt.Sprintf("%d", rec.UserID),
				rec.Result, rec.Timestamp, rec.ImagePath,
			})
		}
		m.Images.SetRows(imageRows)
		m.Err = nil
	case errMsg:
		m.Err = msg.err
	}

	var cmd tea.Cmd
	if m.Tab == tabUsers {
		m.Users, cmd = m.Users.Update(msg)
	} else {
		m.Images, cmd = m.Images.Update(msg)
	}
	return m, cmd
}

func (m *AdminModel) switchTab() {
	if m.Tab == tabUsers {
		m.Tab = tabImages
		m.Users.Blur()
		m.Images.Focus()
	} else {
		m.Tab = tabUsers
		m.Images.Blur()
		m.Users.Focus()
	}
}

func (m AdminModel) deleteSelected() tea.Cmd {
	var row table.Row
	if m.Tab == tabUsers {
		row = m.Users.SelectedRow()
	} else {
		row = m.Images.SelectedRow()
	}
	if len(row) == 0 {
		return nil
	}
	id, err := strconv.ParseUint(row[0], 10, 32)
	if err != nil {
		return nil
	}
	tab := m.Tab
	return func() tea.Msg {
		if tab == tabUsers {
			if err := m.Deps.Accounts.DeleteUser(uint(id)); err != nil {
				return errMsg{err}
			}
		} else {
			if err := m.Deps.Images.Delete(uint(id)); err != nil {
				return errMsg{err}
			}
		}
		return m.load()
	}
}

func (m *AdminModel) startEdit() {
	row := m.Users.SelectedRow()
	if len(row) == 0 {
		return
	}
	id, err := strconv.ParseUint(row[0], 10, 32)
	if err != nil {
		return
	}

	inputs := make([]textinput.Model, 2)
	inputs[0] = textinput.New()
	inputs[0].Prompt = "Username: "
	inputs[0].SetValue(row[1])
	inputs[0].Focus()
	inputs[1] = textinput.New()
	inputs[1].Prompt = "Password: "
	inputs[1].Placeholder = "leave empty to keep"
	inputs[1].EchoMode = textinput.EchoPassword

	m.Editing = true
	m.EditID = uint(id)
	m.EditInputs = inputs
	m.EditFocus = 0
}

func (m AdminModel) updateEdit(msg tea.Msg) (AdminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			m.Editing = false
			return m, nil
		case tea.KeyEnter:
			if m.EditFocus == len(m.EditInputs)-1 {
				username := strings.TrimSpace(m.EditInputs[0].Value())
				password := m.EditInputs[1].Value()
				id := m.EditID
				m.Editing = false
				if username == "" {
					m.Err = fmt.Errorf("username cannot be empty")
					return m, nil
				}
				return m, func() tea.Msg {
					if err := m.Deps.Accounts.UpdateUser(id, username, password); err != nil {
						return errMsg{err}
					}
					return m.load()
				}
			}
			m.EditFocus++
			m.EditInputs[0].Blur()
			m.EditInputs[1].Focus()
		case tea.KeyTab:
			m.EditFocus = (m.EditFocus + 1) % len(m.EditInputs)
			for i := range m.EditInputs {
				if i == m.EditFocus {
					m.EditInputs[i].Focus()
				} else {
					m.EditInputs[i].Blur()
				}
			}
		}
	case errMsg:
		m.Editing = false
		m.Err = msg.err
	}

	cmds := make([]tea.Cmd, len(m.EditInputs))
	for i := range m.EditInputs {
		m.EditInputs[i], cmds[i] = m.EditInputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m AdminModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FruitLens — Admin"))
	b.WriteString("\n\n")

	if m.Editing {
		b.WriteString(fmt.Sprintf("Edit user #%d\n\n", m.EditID))
		for i := range m.EditInputs {
			b.WriteString(m.EditInputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n" + helpStyle("enter save • esc cancel"))
		return docStyle.Render(b.String())
	}

	if m.Tab == tabUsers {
		b.WriteString("Users\n")
		b.WriteString(m.Users.View())
	} else {
		b.WriteString("Images\n")
		b.WriteString(m.Images.View())
	}
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(errorMessageStyle(m.Err.Error()) + "\n")
	}
	help := "tab switch • d delete • r refresh • esc back • ctrl+c quit"
	if m.Tab == tabUsers {
		help = "tab switch • d delete (cascades) • e edit • r refresh • esc back • ctrl+c quit"
	}
	b.WriteString(helpStyle(help))
	return docStyle.Render(b.String())
}
