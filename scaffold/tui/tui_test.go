package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hquizzagan/create-dash-app/scaffold"
)

func newTestCmd() *scaffold.NewCmd {
	return &scaffold.NewCmd{
		ProjectName:   "my-dash-app",
		AuthorName:    "Jordan Example",
		AuthorEmail:   "jordan@example.com",
		Description:   "A Dash application",
		Port:          8000,
		IncludeTests:  true,
		IncludeDocker: true,
	}
}

func press(t *testing.T, m tea.Model, msg tea.Msg) Form {
	t.Helper()

	next, _ := m.Update(msg)

	form, ok := next.(Form)

	require.True(t, ok)

	return form
}

func pressDown(t *testing.T, form Form, times int) Form {
	t.Helper()

	for range times {
		form = press(t, form, tea.KeyMsg{Type: tea.KeyDown})
	}

	return form
}

func TestSubmitCopiesFormValues(t *testing.T) {
	cmd := newTestCmd()
	form := InitialForm(cmd)

	// Down past the last item lands on the submit button.
	form = pressDown(t, form, len(form.items)+1)
	form = press(t, form, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, form.Done())
	assert.False(t, form.Aborted())

	assert.Equal(t, "my-dash-app", cmd.ProjectName)
	assert.Equal(t, "jordan@example.com", cmd.AuthorEmail)
	assert.Equal(t, 8000, cmd.Port)
	assert.Empty(t, cmd.Styling)
	assert.True(t, cmd.IncludeTests)
	assert.False(t, cmd.IncludePages)
}

func TestTickingOptionsSelectsFrameworks(t *testing.T) {
	cmd := newTestCmd()
	form := InitialForm(cmd)

	// The first styling option sits right below the five text fields and
	// the section header.
	form = pressDown(t, form, 6)
	form = press(t, form, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	form = pressDown(t, form, len(form.items))
	form = press(t, form, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, form.Done())
	assert.Equal(t, []scaffold.Styling{scaffold.Tailwind}, cmd.Styling)
}

func TestTogglingPagesFlag(t *testing.T) {
	cmd := newTestCmd()
	form := InitialForm(cmd)

	// The pages toggle is the fourth item from the bottom.
	form = pressDown(t, form, len(form.items)-4)
	form = press(t, form, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	form = pressDown(t, form, len(form.items))
	form = press(t, form, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, form.Done())
	assert.True(t, cmd.IncludePages)
}

func TestSubmitRejectsInvalidEmail(t *testing.T) {
	cmd := newTestCmd()
	cmd.AuthorEmail = "not-an-email"

	form := InitialForm(cmd)

	form = pressDown(t, form, len(form.items)+1)
	form = press(t, form, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, form.Done())
	assert.NotEmpty(t, form.errMsg)
}

func TestEscAborts(t *testing.T) {
	form := InitialForm(newTestCmd())

	form = press(t, form, tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, form.Aborted())
	assert.False(t, form.Done())
}

func TestCtrlCAbortsInInputMode(t *testing.T) {
	form := InitialForm(newTestCmd())

	// Enter input mode on the project name field first.
	form = press(t, form, tea.KeyMsg{Type: tea.KeyEnter})
	form = press(t, form, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, form.Aborted())
}

func TestViewShowsSubmitButton(t *testing.T) {
	form := InitialForm(newTestCmd())

	assert.Contains(t, form.View(), "[ Create project ]")
	assert.Contains(t, form.View(), "Project Name")
}
