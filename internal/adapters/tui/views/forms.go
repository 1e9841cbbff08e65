package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"f2yaml/internal/adapters/tui/styles"
)

// FormKeyMap defines key bindings for the request forms
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
}

// FormKeys are the default form bindings
var FormKeys = FormKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
}

type formField struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	if limit > 0 {
		in.CharLimit = limit
	}
	return formField{label: label, input: in}
}

// FormModel asks for one or more values and turns them into a request
type FormModel struct {
	ViewState
	title    string
	submit   string
	fields   []formField
	focus    int
	onSubmit func(values []string) (tea.Msg, string)
	Keys     FormKeyMap
}

func newForm(title, submit string, onSubmit func([]string) (tea.Msg, string), fields ...formField) *FormModel {
	m := &FormModel{title: title, submit: submit, fields: fields, onSubmit: onSubmit, Keys: FormKeys}
	m.focusField(0)
	return m
}

// NewStartForm asks for the link of the task to start
func NewStartForm() *FormModel {
	return newForm("Start task", "start",
		func(values []string) (tea.Msg, string) {
			if values[0] == "" {
				return nil, "task link is required"
			}
			return StartTaskMsg{Link: values[0]}, ""
		},
		newField("Task link", "-->Project//tasks..Task<", 0),
	)
}

// NewStandupForm asks for the standup report file and code. The code
// defaults to today's date.
func NewStandupForm() *FormModel {
	today := time.Now().Format("2006-01-02")
	return newForm("Select standup report", "select",
		func(values []string) (tea.Msg, string) {
			if values[0] == "" {
				return nil, "standup file is required"
			}
			code := values[1]
			if code == "" {
				code = today
			}
			return SelectStandupMsg{File: values[0], Code: code}, ""
		},
		newField("Standup file", "standups.yml", 0),
		newField("Code", today, 64),
	)
}

func (m *FormModel) focusField(i int) {
	for j := range m.fields {
		m.fields[j].input.Blur()
	}
	if len(m.fields) == 0 {
		return
	}
	m.focus = i % len(m.fields)
	m.fields[m.focus].input.Focus()
}

// Prefill sets the first field and clears the others
func (m *FormModel) Prefill(value string) {
	for i := range m.fields {
		m.fields[i].input.SetValue("")
	}
	m.ClearMessage()
	m.focusField(0)
	if len(m.fields) > 0 {
		m.fields[0].input.SetValue(value)
	}
}

func (m *FormModel) values() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = strings.TrimSpace(f.input.Value())
	}
	return out
}

// Init starts the cursor blink
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, send(SwitchToDashboardMsg{})
		case key.Matches(msg, m.Keys.Next):
			m.focusField(m.focus + 1)
			return m, nil
		case key.Matches(msg, m.Keys.Submit):
			req, problem := m.onSubmit(m.values())
			if problem != "" {
				m.SetMessage(problem, true)
				return m, nil
			}
			return m, send(req)
		}
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

// View renders the form
func (m *FormModel) View() string {
	s := newScreen().title(m.title)
	for i, f := range m.fields {
		style := styles.InputField
		if i == m.focus {
			style = styles.InputFocused
		}
		s.line(styles.InputLabel.Render(f.label)).line(style.Render(f.input.View())).blank()
	}
	s.message(m.Message, m.MessageErr)

	keys := []key.Binding{m.Keys.Submit, m.Keys.Cancel}
	if len(m.fields) > 1 {
		keys = append([]key.Binding{m.Keys.Next}, keys...)
	}
	return s.help(keys...).String()
}
