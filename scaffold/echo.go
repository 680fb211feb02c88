package scaffold

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	palette = struct {
		blue    lipgloss.Color
		green   lipgloss.Color
		yellow  lipgloss.Color
		red     lipgloss.Color
		cyan    lipgloss.Color
		magenta lipgloss.Color
	}{
		blue:    lipgloss.Color("12"),
		green:   lipgloss.Color("10"),
		yellow:  lipgloss.Color("11"),
		red:     lipgloss.Color("9"),
		cyan:    lipgloss.Color("14"),
		magenta: lipgloss.Color("212"),
	}

	infoStyle = lipgloss.NewStyle().Foreground(palette.blue)

	successStyle = lipgloss.NewStyle().Foreground(palette.green).Bold(true)

	warnStyle = lipgloss.NewStyle().Foreground(palette.yellow)

	headingStyle = lipgloss.NewStyle().Foreground(palette.cyan).Bold(true)

	stepStyle = lipgloss.NewStyle().Foreground(palette.yellow)
)

func (c *NewCmd) echoInfo(msg string) {
	fmt.Fprintln(c.out, infoStyle.Render(msg))
}

func (c *NewCmd) echoSuccess(msg string) {
	fmt.Fprintln(c.out, successStyle.Render(msg))
}

func (c *NewCmd) echoWarn(msg string) {
	fmt.Fprintln(c.out, warnStyle.Render(msg))
}

func (c *NewCmd) echoNextSteps() {
	hasTailwind := c.HasStyling(Tailwind)

	echo := func(msg string) { fmt.Fprintln(c.out, msg) }

	echo("")
	fmt.Fprintln(c.out, headingStyle.Render("📋 Next Steps:"))
	echo("")

	step := 1

	if c.projectDir != c.rootDir {
		fmt.Fprintf(c.out, "%s\n", stepStyle.Render(fmt.Sprintf("%d. Navigate to your project:", step)))
		fmt.Fprintf(c.out, "   cd %s\n", c.ProjectName)
		echo("")

		step += 1
	}

	fmt.Fprintf(c.out, "%s\n", stepStyle.Render(fmt.Sprintf("%d. Activate the virtual environment:", step)))
	echo("   uv venv")
	echo("   source .venv/bin/activate  # On macOS/Linux")
	echo("   .venv\\Scripts\\activate     # On Windows")
	echo("")
	echo("   # Or use uv run directly (no activation needed):")
	echo("   uv run <command>")
	echo("")

	step += 1

	fmt.Fprintf(c.out, "%s\n", stepStyle.Render(fmt.Sprintf("%d. Install dependencies (if not already done):", step)))
	echo("   uv sync")
	echo("")

	step += 1

	if hasTailwind {
		fmt.Fprintf(c.out, "%s\n", stepStyle.Render(fmt.Sprintf("%d. Build Tailwind CSS:", step)))
		echo("   npm run build:css:prod")
		echo("   # Or for watch mode during development:")
		echo("   npm run build:css")
		echo("")

		step += 1
	}

	fmt.Fprintf(c.out, "%s\n", stepStyle.Render(fmt.Sprintf("%d. Run your Dash application:", step)))
	fmt.Fprintf(c.out, "   %s\n", Slug(c.ProjectName))
	echo("   # Or")
	echo("   uv run python -m src.app")
	echo("")

	step += 1

	fmt.Fprintf(c.out, "%s\n", stepStyle.Render(fmt.Sprintf("%d. Development tips:", step)))
	fmt.Fprintf(c.out, "   • Default URL: http://127.0.0.1:%d\n", c.Port)
	echo("   • Edit files in src/ to customize your app")

	if c.IncludePages {
		echo("   • Add new pages in src/pages/")
	}

	echo("   • Add callbacks in src/callbacks/")
	echo("   • Add components in src/components/")
	echo("")

	step += 1

	fmt.Fprintf(c.out, "%s\n", stepStyle.Render(fmt.Sprintf("%d. Additional resources:", step)))
	echo("   • Dash documentation: https://dash.plotly.com/")

	if hasTailwind {
		echo("   • Tailwind CSS docs: https://tailwindcss.com/docs")
	}

	if c.HasStyling(Bootstrap) {
		echo("   • Dash Bootstrap Components: https://dash-bootstrap-components.opensource.faculty.ai/")
	}

	echo("")
	fmt.Fprintln(c.out, successStyle.Render("🎉 Happy coding!"))
	echo("")
}
