// Dumps every bubbletea message the scaffolding form receives to
// messages.log while exercising it interactively.
package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/hquizzagan/create-dash-app/scaffold"
	"github.com/hquizzagan/create-dash-app/scaffold/tui"
)

type model struct {
	dump io.Writer
	form tea.Model
}

func (m model) Init() tea.Cmd {
	return m.form.Init()
}

func (m model) View() string {
	return m.form.View()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	spew.Fdump(m.dump, msg)

	form, cmd := m.form.Update(msg)
	m.form = form

	return m, cmd
}

func main() {
	dump, err := os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatal("failed to open log file messages.log")
	}

	cmd := &scaffold.NewCmd{ProjectName: "my-dash-app", Description: "A Dash application", Port: 8000, IncludeTests: true, IncludeDocker: true, ConfigurePreCommit: true}

	_ = cmd.BeforeReset()

	p := tea.NewProgram(model{dump: dump, form: tui.InitialForm(cmd)})
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
