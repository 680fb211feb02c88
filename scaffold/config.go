package scaffold

import (
	"errors"
	"fmt"
	"os/user"
	"regexp"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
)

type (
	// Styling is a CSS framework wired into the generated application.
	Styling string

	// Animation is a browser-side animation library wired into the generated
	// application.
	Animation string

	// EnvDefaults are prompt defaults read from the environment.
	EnvDefaults struct {
		AuthorName  string `env:"CDA_AUTHOR_NAME"`
		AuthorEmail string `env:"CDA_AUTHOR_EMAIL"`
		Port        int    `env:"CDA_PORT"`
	}
)

const (
	NoStyling Styling = "none"
	Tailwind  Styling = "tailwind"
	Bootstrap Styling = "bootstrap"
	Bulma     Styling = "bulma"
	DaisyUI   Styling = "daisyui"
	UnoCSS    Styling = "unocss"
	Windi     Styling = "windi"

	NoAnimation  Animation = "none"
	AnimateCSS   Animation = "animate.css"
	AnimeJS      Animation = "animejs"
	ScrollReveal Animation = "scrollreveal"
	Motion       Animation = "motion"
)

var (
	ErrInvalidInput = errors.New("invalid project configuration")

	Stylings = []Styling{NoStyling, Tailwind, Bootstrap, Bulma, DaisyUI, UnoCSS, Windi}

	Animations = []Animation{NoAnimation, AnimateCSS, AnimeJS, ScrollReveal, Motion}

	// Styling frameworks served from a CDN stylesheet. Tailwind is compiled
	// locally instead, and unocss/windi ship as runtime scripts.
	stylesheetURLs = map[Styling]string{
		Bootstrap: "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css",
		Bulma:     "https://cdn.jsdelivr.net/npm/bulma@1.0.2/css/bulma.min.css",
		DaisyUI:   "https://cdn.jsdelivr.net/npm/daisyui@4.12.14/dist/full.min.css",
	}

	stylingScriptURLs = map[Styling]string{
		UnoCSS: "https://cdn.jsdelivr.net/npm/@unocss/runtime@0.65.4/uno.global.js",
		Windi:  "https://cdn.jsdelivr.net/npm/windicss-runtime-dom@3.5.6/windicss-runtime-dom.min.js",
	}

	animationStylesheetURLs = map[Animation]string{
		AnimateCSS: "https://cdnjs.cloudflare.com/ajax/libs/animate.css/4.1.1/animate.min.css",
	}

	animationScriptURLs = map[Animation]string{
		AnimeJS:      "https://cdn.jsdelivr.net/npm/animejs@3.2.2/lib/anime.min.js",
		ScrollReveal: "https://unpkg.com/scrollreveal@4.0.9/dist/scrollreveal.min.js",
		Motion:       "https://cdn.jsdelivr.net/npm/motion@11.11.17/dist/motion.min.js",
	}

	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	projectNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9 ._-]*$`)
)

func (s *Styling) UnmarshalText(text []byte) error {
	choice := Styling(strings.ToLower(strings.TrimSpace(string(text))))

	if !slices.Contains(Stylings, choice) {
		return fmt.Errorf("%w: unknown styling framework %q", ErrInvalidInput, string(text))
	}

	*s = choice

	return nil
}

func (a *Animation) UnmarshalText(text []byte) error {
	choice := Animation(strings.ToLower(strings.TrimSpace(string(text))))

	if !slices.Contains(Animations, choice) {
		return fmt.Errorf("%w: unknown animation library %q", ErrInvalidInput, string(text))
	}

	*a = choice

	return nil
}

// FilterNone drops "none" and duplicates from a list of choices. A list of
// only "none" collapses to an empty list.
func FilterNone[T ~string](choices []T) []T {
	filtered := make([]T, 0, len(choices))

	for _, c := range choices {
		if string(c) == "none" || slices.Contains(filtered, c) {
			continue
		}

		filtered = append(filtered, c)
	}

	return filtered
}

// ValidateProjectName rejects names that cannot serve as a directory name
// and a Python distribution name.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: project name must not be empty", ErrInvalidInput)
	}

	if !projectNameRegex.MatchString(name) {
		return fmt.Errorf("%w: project name %q must start with a letter and contain only letters, digits, spaces, dots, underscores and hyphens", ErrInvalidInput, name)
	}

	return nil
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: %q is not a valid email address", ErrInvalidInput, email)
	}

	return nil
}

func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %d is outside the range 1-65535", ErrInvalidInput, port)
	}

	return nil
}

// NormalizeName lowercases a name and folds hyphens and spaces to
// underscores, for comparing a project name against a directory name.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "_")

	return strings.ReplaceAll(name, " ", "_")
}

// Slug is the kebab-case form of a project name, used for the Python
// distribution name and the console script.
func Slug(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")

	return strings.ReplaceAll(name, "_", "-")
}

// SnakeCase is the importable-module form of a project name.
func SnakeCase(name string) string {
	return NormalizeName(name)
}

// DefaultsFromEnv reads prompt defaults from the environment. The author
// name falls back to the OS user when CDA_AUTHOR_NAME is not set.
func DefaultsFromEnv() (EnvDefaults, error) {
	var defaults EnvDefaults

	if err := env.Parse(&defaults); err != nil {
		return defaults, fmt.Errorf("failed to parse environment defaults: %w", err)
	}

	if defaults.AuthorName == "" {
		if u, err := user.Current(); err == nil {
			defaults.AuthorName = u.Username
		}
	}

	return defaults, nil
}
