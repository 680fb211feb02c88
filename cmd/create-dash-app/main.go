package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hquizzagan/create-dash-app/preview"
	"github.com/hquizzagan/create-dash-app/scaffold"
	"github.com/hquizzagan/create-dash-app/scaffold/tui"
	"github.com/hquizzagan/create-dash-app/version"
)

func main() {
	var cli struct {
		New     scaffold.NewCmd  `cmd:"" default:"withargs" help:"Create a new Plotly Dash application with opinionated boilerplate code."`
		Preview preview.Cmd      `cmd:"" help:"Render a project README as GitHub-style HTML in the default browser."`
		Version kong.VersionFlag `short:"V" help:"Show the version and exit."`
	}

	ctx := kong.Parse(
		&cli,
		kong.Name("create-dash-app"),
		kong.Description("Create a new Plotly Dash application with opinionated boilerplate code."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.FromBuildInfo()},
	)

	if ctx.Command() == "new" && !cli.New.NoInput {
		p := tea.NewProgram(tui.InitialForm(&cli.New))

		m, err := p.Run()
		ctx.FatalIfErrorf(err)

		if form, ok := m.(tui.Form); ok && form.Aborted() {
			fmt.Println("Cancelled.")

			return
		}
	}

	err := ctx.Run()
	if errors.Is(err, scaffold.ErrAborted) {
		return
	}

	if errors.Is(err, scaffold.ErrProjectExists) {
		fmt.Fprintf(os.Stderr, "\n‼️ ERROR! %s\n", err.Error())

		os.Exit(1)
	}

	ctx.FatalIfErrorf(err)
}
