package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectName(t *testing.T) {
	valid := []string{"my-dash-app", "Dashboard", "sales_2025", "app v2", "a.b"}

	for _, name := range valid {
		assert.NoError(t, ValidateProjectName(name), name)
	}

	invalid := []string{"", "9lives", "-leading-dash", ".hidden", "bad/slash", "semi;colon"}

	for _, name := range invalid {
		err := ValidateProjectName(name)

		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("someone@example.com"))
	assert.NoError(t, ValidateEmail("first.last@sub.domain.org"))

	for _, email := range []string{"", "plainaddress", "a@b", "a @b.com", "a@b@c.com"} {
		err := ValidateEmail(email)

		require.Error(t, err, email)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort(8000))
	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))

	assert.ErrorIs(t, ValidatePort(0), ErrInvalidInput)
	assert.ErrorIs(t, ValidatePort(70000), ErrInvalidInput)
}

func TestFilterNone(t *testing.T) {
	assert.Empty(t, FilterNone([]Styling{NoStyling}))
	assert.Empty(t, FilterNone([]Styling{}))

	assert.Equal(t, []Styling{Tailwind, Bulma}, FilterNone([]Styling{NoStyling, Tailwind, Bulma}))
	assert.Equal(t, []Styling{Bootstrap}, FilterNone([]Styling{Bootstrap, Bootstrap, NoStyling}))
	assert.Equal(t, []Animation{AnimeJS}, FilterNone([]Animation{NoAnimation, AnimeJS}))
}

func TestNameForms(t *testing.T) {
	assert.Equal(t, "business_dashboard", NormalizeName("Business-Dashboard"))
	assert.Equal(t, "my_app", NormalizeName("my app"))

	assert.Equal(t, "business-dashboard", Slug("Business_Dashboard"))
	assert.Equal(t, "my-dash-app", Slug("my dash app"))

	assert.Equal(t, "my_dash_app", SnakeCase("my-dash-app"))
}

func TestStylingUnmarshalText(t *testing.T) {
	var s Styling

	require.NoError(t, s.UnmarshalText([]byte("Tailwind")))
	assert.Equal(t, Tailwind, s)

	err := s.UnmarshalText([]byte("materialize"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnimationUnmarshalText(t *testing.T) {
	var a Animation

	require.NoError(t, a.UnmarshalText([]byte("animate.css")))
	assert.Equal(t, AnimateCSS, a)

	assert.ErrorIs(t, a.UnmarshalText([]byte("gsap")), ErrInvalidInput)
}

func TestDefaultsFromEnv(t *testing.T) {
	t.Setenv("CDA_AUTHOR_NAME", "Jordan")
	t.Setenv("CDA_AUTHOR_EMAIL", "jordan@example.com")
	t.Setenv("CDA_PORT", "9000")

	defaults, err := DefaultsFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "Jordan", defaults.AuthorName)
	assert.Equal(t, "jordan@example.com", defaults.AuthorEmail)
	assert.Equal(t, 9000, defaults.Port)
}

func TestDefaultsFromEnvFallsBackToOSUser(t *testing.T) {
	t.Setenv("CDA_AUTHOR_NAME", "")
	t.Setenv("CDA_AUTHOR_EMAIL", "")
	t.Setenv("CDA_PORT", "")

	defaults, err := DefaultsFromEnv()

	require.NoError(t, err)
	assert.NotEmpty(t, defaults.AuthorName)
	assert.Zero(t, defaults.Port)
}
