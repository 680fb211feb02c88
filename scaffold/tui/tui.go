// Package tui implements the interactive prompt flow that fills a
// scaffold.NewCmd before generation runs.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hquizzagan/create-dash-app/scaffold"
)

type (
	formItem interface {
		ToggleHighlight()
		ToggleTick()
		Desc() string
		Update(tea.Msg) tea.Cmd
		View() string
		Focusable() bool
	}

	textField struct {
		label       string
		desc        string
		validate    func(string) error
		errMsg      string
		ti          textinput.Model
		highlighted bool
	}

	sectionHeader struct {
		name        string
		desc        string
		highlighted bool
	}

	optionItem struct {
		label       string
		desc        string
		ticked      bool
		highlighted bool
	}

	toggleField struct {
		label       string
		desc        string
		on          bool
		highlighted bool
	}

	fields struct {
		name        *textField
		author      *textField
		email       *textField
		description *textField
		port        *textField
		styling     map[scaffold.Styling]*optionItem
		animations  map[scaffold.Animation]*optionItem
		pages       *toggleField
		tests       *toggleField
		docker      *toggleField
		preCommit   *toggleField
	}

	Form struct {
		help    help.Model
		cmd     *scaffold.NewCmd
		fields  fields
		items   []formItem
		errMsg  string
		index   int
		navMode bool
		done    bool
		aborted bool
	}

	navModeKeyMap struct{}

	inputModeKeyMap struct{}

	submitButtonKeyMap struct{}
)

var (
	keys = struct {
		up     key.Binding
		down   key.Binding
		input  key.Binding
		finish key.Binding
		submit key.Binding
		tick   key.Binding
		help   key.Binding
		quit   key.Binding
	}{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		input: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "input mode"),
		),
		finish: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "finish input"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "create the project"),
		),
		tick: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "tick/untick"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	palette = struct {
		magenta lipgloss.Color
		yellow  lipgloss.Color
		red     lipgloss.Color
		green   lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
		yellow:  lipgloss.Color("184"),
		red:     lipgloss.Color("203"),
		green:   lipgloss.Color("84"),
	}

	highlightedStyle = lipgloss.NewStyle().Foreground(palette.magenta)

	headerStyle = lipgloss.NewStyle().Background(palette.yellow)

	errorStyle = lipgloss.NewStyle().Foreground(palette.red)

	tickedStyle = lipgloss.NewStyle().Foreground(palette.green)
)

func (navModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.help, keys.quit}
}

func (navModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.input, keys.tick},
		{keys.help, keys.quit},
	}
}

func (inputModeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.finish, keys.quit}
}

func (inputModeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.finish, keys.quit},
		{keys.finish, keys.quit},
	}
}

func (submitButtonKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.help, keys.quit}
}

func (submitButtonKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.submit},
		{keys.help, keys.quit},
	}
}

func (tf *textField) ToggleHighlight() {
	tf.highlighted = !tf.highlighted
}

func (tf *textField) ToggleTick() {}

func (tf *textField) Desc() string {
	return tf.desc
}

func (tf *textField) Focusable() bool {
	return true
}

func (tf *textField) View() string {
	var b strings.Builder

	if tf.highlighted {
		b.WriteString(highlightedStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}

	b.WriteString(tf.label)
	b.WriteString(":")
	b.WriteString(tf.ti.View())

	if tf.errMsg != "" {
		b.WriteString("  ")
		b.WriteString(errorStyle.Render(tf.errMsg))
	}

	return b.String()
}

func (tf *textField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.input) {
		if !tf.ti.Focused() {
			tf.errMsg = ""

			cmd = tf.ti.Focus()

			return cmd
		}

		tf.ti.Blur()
		tf.check()

		return nil
	}

	tf.ti, cmd = tf.ti.Update(msg)

	return cmd
}

// check runs the field validator against the current value and records the
// inline error message.
func (tf *textField) check() {
	tf.errMsg = ""

	if tf.validate == nil {
		return
	}

	if err := tf.validate(strings.TrimSpace(tf.ti.Value())); err != nil {
		tf.errMsg = err.Error()
	}
}

func (sh *sectionHeader) ToggleHighlight() {
	sh.highlighted = !sh.highlighted
}

func (sh *sectionHeader) ToggleTick() {}

func (sh *sectionHeader) Desc() string {
	return sh.desc
}

func (sh *sectionHeader) Focusable() bool {
	return false
}

func (sh *sectionHeader) View() string {
	var b strings.Builder

	if sh.highlighted {
		b.WriteString(highlightedStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}

	b.WriteString(headerStyle.Render(sh.name))

	return b.String()
}

func (sh *sectionHeader) Update(msg tea.Msg) tea.Cmd {
	return nil
}

func (oi *optionItem) ToggleHighlight() {
	oi.highlighted = !oi.highlighted
}

func (oi *optionItem) ToggleTick() {
	oi.ticked = !oi.ticked
}

func (oi *optionItem) Desc() string {
	return oi.desc
}

func (oi *optionItem) Focusable() bool {
	return false
}

func (oi *optionItem) View() string {
	var b strings.Builder

	if oi.highlighted {
		b.WriteString(highlightedStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}

	if oi.ticked {
		b.WriteString(tickedStyle.Render("[x] " + oi.label))
	} else {
		b.WriteString("[ ] " + oi.label)
	}

	return b.String()
}

func (oi *optionItem) Update(msg tea.Msg) tea.Cmd {
	return nil
}

func (tg *toggleField) ToggleHighlight() {
	tg.highlighted = !tg.highlighted
}

func (tg *toggleField) ToggleTick() {
	tg.on = !tg.on
}

func (tg *toggleField) Desc() string {
	return tg.desc
}

func (tg *toggleField) Focusable() bool {
	return false
}

func (tg *toggleField) View() string {
	var b strings.Builder

	if tg.highlighted {
		b.WriteString(highlightedStyle.Render("> "))
	} else {
		b.WriteString("  ")
	}

	b.WriteString(tg.label)
	b.WriteString(": ")

	if tg.on {
		b.WriteString(tickedStyle.Render("yes"))
	} else {
		b.WriteString("no")
	}

	return b.String()
}

func (tg *toggleField) Update(msg tea.Msg) tea.Cmd {
	return nil
}

func newTextField(label, desc, value, placeholder string, validate func(string) error) *textField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.Prompt = " "
	ti.SetValue(value)

	return &textField{label: label, desc: desc, ti: ti, validate: validate}
}

func InitialForm(cmd *scaffold.NewCmd) Form {
	f := fields{
		name:        newTextField("Project Name", "Also the name of the created directory.", cmd.ProjectName, "my-dash-app", scaffold.ValidateProjectName),
		author:      newTextField("Author Name", "Rendered into pyproject.toml.", cmd.AuthorName, "", nil),
		email:       newTextField("Author Email", "Rendered into pyproject.toml.", cmd.AuthorEmail, "you@example.com", scaffold.ValidateEmail),
		description: newTextField("Description", "Short description of the project.", cmd.Description, "A Dash application", nil),
		port:        newTextField("Port", "Port the application listens on.", strconv.Itoa(cmd.Port), "8000", validatePortString),
		styling:     make(map[scaffold.Styling]*optionItem, len(scaffold.Stylings)),
		animations:  make(map[scaffold.Animation]*optionItem, len(scaffold.Animations)),
		pages:       &toggleField{label: "Multi-page routing", desc: "Scaffold a pages/ folder with Dash pages.", on: cmd.IncludePages},
		tests:       &toggleField{label: "Pytest scaffolding", desc: "Scaffold a tests/ folder.", on: cmd.IncludeTests},
		docker:      &toggleField{label: "Docker support", desc: "Include a Dockerfile and docker-compose.yml.", on: cmd.IncludeDocker},
		preCommit:   &toggleField{label: "Pre-commit hooks", desc: "Include baseline pre-commit hook configuration.", on: cmd.ConfigurePreCommit},
	}

	m := Form{
		cmd:     cmd,
		fields:  f,
		navMode: true,
		index:   0,
		help:    help.New(),
	}

	m.items = append(m.items, f.name, f.author, f.email, f.description, f.port)

	m.items = append(m.items, &sectionHeader{name: " CSS framework ", desc: "Tick the frameworks to wire into the app."})

	for _, s := range scaffold.Stylings {
		if s == scaffold.NoStyling {
			continue
		}

		oi := &optionItem{label: string(s), desc: "Tick the frameworks to wire into the app."}
		oi.ticked = cmd.HasStyling(s)

		f.styling[s] = oi
		m.items = append(m.items, oi)
	}

	m.items = append(m.items, &sectionHeader{name: " Animation library ", desc: "Tick the animation libraries to wire into the app."})

	for _, a := range scaffold.Animations {
		if a == scaffold.NoAnimation {
			continue
		}

		oi := &optionItem{label: string(a), desc: "Tick the animation libraries to wire into the app."}

		for _, chosen := range cmd.Animations {
			if chosen == a {
				oi.ticked = true
			}
		}

		f.animations[a] = oi
		m.items = append(m.items, oi)
	}

	m.items = append(m.items, f.pages, f.tests, f.docker, f.preCommit)

	m.items[0].ToggleHighlight()

	return m
}

func validatePortString(raw string) error {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}

	return scaffold.ValidatePort(port)
}

// Done reports whether the form was submitted.
func (m Form) Done() bool {
	return m.done
}

// Aborted reports whether the user quit without submitting.
func (m Form) Aborted() bool {
	return m.aborted
}

func (m Form) Init() tea.Cmd {
	return nil
}

func (m Form) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString("Let's create a Dash application!\n\n")

	b.WriteString("Description: ")

	if m.index < len(m.items) {
		b.WriteString(m.items[m.index].Desc())
	}

	b.WriteString("\n\n")

	for i := range m.items {
		b.WriteString(m.items[i].View())
		b.WriteRune('\n')
	}

	b.WriteRune('\n')

	if m.index == len(m.items) {
		b.WriteString(highlightedStyle.Render("> [ Create project ]"))
	} else {
		b.WriteString("  [ Create project ]")
	}

	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.navMode && m.index == len(m.items) {
		b.WriteString(m.help.View(submitButtonKeyMap{}))
	} else if m.navMode {
		b.WriteString(m.help.View(navModeKeyMap{}))
	} else {
		b.WriteString(m.help.View(inputModeKeyMap{}))
	}

	b.WriteRune('\n')

	return b.String()
}

func (m *Form) highlightUp(index int) {
	if index < len(m.items) {
		m.items[index].ToggleHighlight()
	}

	m.items[index-1].ToggleHighlight()
}

func (m *Form) highlightDown(index int) {
	m.items[index].ToggleHighlight()

	if index+1 < len(m.items) {
		m.items[index+1].ToggleHighlight()
	}
}

func (m *Form) navModeUpdate(msg tea.KeyMsg) (cmd tea.Cmd) {
	switch {
	case key.Matches(msg, keys.up):
		if m.index > 0 {
			m.highlightUp(m.index)
			m.index -= 1
		}

		return nil
	case key.Matches(msg, keys.down):
		if m.index < len(m.items) {
			m.highlightDown(m.index)
			m.index += 1
		}

		return nil
	case key.Matches(msg, keys.input):
		if !m.items[m.index].Focusable() {
			m.items[m.index].ToggleTick()

			return nil
		}

		m.navMode = false
		m.help.ShowAll = false

		cmd = m.items[m.index].Update(msg)

		return cmd
	case key.Matches(msg, keys.tick):
		m.items[m.index].ToggleTick()

		return nil
	default:
		return nil
	}
}

// submit copies the form values into the command, re-running validation.
// A validation failure keeps the form open with the error shown.
func (m *Form) submit() bool {
	for _, tf := range []*textField{m.fields.name, m.fields.email, m.fields.port} {
		tf.check()

		if tf.errMsg != "" {
			m.errMsg = "Fix the highlighted fields before creating the project."

			return false
		}
	}

	m.errMsg = ""

	m.cmd.ProjectName = strings.TrimSpace(m.fields.name.ti.Value())
	m.cmd.AuthorName = strings.TrimSpace(m.fields.author.ti.Value())
	m.cmd.AuthorEmail = strings.TrimSpace(m.fields.email.ti.Value())
	m.cmd.Description = strings.TrimSpace(m.fields.description.ti.Value())
	m.cmd.Port, _ = strconv.Atoi(strings.TrimSpace(m.fields.port.ti.Value()))

	m.cmd.Styling = m.cmd.Styling[:0]

	for _, s := range scaffold.Stylings {
		if oi, ok := m.fields.styling[s]; ok && oi.ticked {
			m.cmd.Styling = append(m.cmd.Styling, s)
		}
	}

	m.cmd.Animations = m.cmd.Animations[:0]

	for _, a := range scaffold.Animations {
		if oi, ok := m.fields.animations[a]; ok && oi.ticked {
			m.cmd.Animations = append(m.cmd.Animations, a)
		}
	}

	m.cmd.IncludePages = m.fields.pages.on
	m.cmd.IncludeTests = m.fields.tests.on
	m.cmd.IncludeDocker = m.fields.docker.on
	m.cmd.ConfigurePreCommit = m.fields.preCommit.on

	return true
}

func (m Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.aborted = true

			return m, tea.Quit
		case key.Matches(msg, keys.quit) && m.navMode:
			m.aborted = true

			return m, tea.Quit
		case m.navMode && m.index == len(m.items) && key.Matches(msg, keys.submit):
			if m.submit() {
				m.done = true

				return m, tea.Quit
			}

			return m, nil
		case m.navMode && key.Matches(msg, keys.help):
			m.help.ShowAll = !m.help.ShowAll

			return m, nil
		case m.navMode:
			cmd = m.navModeUpdate(msg)

			return m, cmd
		case !m.navMode && key.Matches(msg, keys.finish):
			cmd = m.items[m.index].Update(msg)
			m.navMode = true

			return m, cmd
		case !m.navMode:
			cmd = m.items[m.index].Update(msg)

			return m, cmd
		default:
		}
	}

	if m.index < len(m.items) {
		cmd = m.items[m.index].Update(msg)
	}

	return m, cmd
}
