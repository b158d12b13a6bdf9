package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type loginModel struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	return loginModel{inputs: []textinput.Model{email, password}}
}

func (m loginModel) View() string {
	out := titleStyle.Render("Sign in to cloud sync") + "\n\n"
	for _, input := range m.inputs {
		out += input.View() + "\n"
	}
	if m.submitting {
		out += "\nSigning in...\n"
	}
	out += "\n" + helpStyle.Render("tab next field  enter submit  esc back")
	return out
}
