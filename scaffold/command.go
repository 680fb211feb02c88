package scaffold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hquizzagan/create-dash-app/registry"
)

type (
	NewCmd struct {
		rootDir    string
		projectDir string
		createdDir string
		out        io.Writer
		prompter   Prompter

		ProjectName        string      `name:"name" default:"my-dash-app" help:"Project name. Also the name of the created directory."`
		AuthorName         string      `name:"author" help:"Author name. Defaults to CDA_AUTHOR_NAME or the OS user."`
		AuthorEmail        string      `name:"email" help:"Author email. Defaults to CDA_AUTHOR_EMAIL."`
		Description        string      `name:"description" default:"A Dash application" help:"Short description of the project."`
		Styling            []Styling   `name:"styling" help:"CSS frameworks to wire into the app: none, tailwind, bootstrap, bulma, daisyui, unocss, windi."`
		Animations         []Animation `name:"animation" help:"Animation libraries to wire into the app: none, animate.css, animejs, scrollreveal, motion."`
		IncludePages       bool        `name:"pages" help:"Include multi-page routing."`
		IncludeTests       bool        `name:"tests" default:"true" negatable:"" help:"Include pytest scaffolding."`
		IncludeDocker      bool        `name:"docker" default:"true" negatable:"" help:"Include a Dockerfile and docker-compose.yml."`
		ConfigurePreCommit bool        `name:"pre-commit" default:"true" negatable:"" help:"Include baseline pre-commit hook configuration."`
		Port               int         `name:"port" default:"8000" help:"Port the application listens on."`
		Here               bool        `name:"here" help:"Initialize the current directory instead of creating a new one."`
		NoInput            bool        `name:"no-input" help:"Skip the interactive prompts and take flag values as-is."`
		SkipInstall        bool        `name:"skip-install" help:"Do not run uv sync after generation."`
		Yes                bool        `name:"yes" short:"y" help:"Assume yes on confirmation prompts."`
		TimeoutSeconds     int         `name:"timeout-seconds" default:"5" help:"Timeout package registry lookups after this many seconds."`

		Versions       PackageVersions          `embed:""`
		VersionSetters []registry.VersionSetter `kong:"-"`
	}

	// PackageVersions pins the dependency versions rendered into the
	// generated pyproject.toml. Unpinned versions resolve to the latest
	// release on the package registry.
	PackageVersions struct {
		Dash          registry.SemVer `name:"dash-version" default:"LATEST" help:"Version of dash."`
		Plotly        registry.SemVer `name:"plotly-version" default:"LATEST" help:"Version of plotly."`
		Pandas        registry.SemVer `name:"pandas-version" default:"LATEST" help:"Version of pandas."`
		Gunicorn      registry.SemVer `name:"gunicorn-version" default:"LATEST" help:"Version of gunicorn."`
		DashBootstrap registry.SemVer `name:"dash-bootstrap-version" default:"LATEST" help:"Version of dash-bootstrap-components. Only used with --styling bootstrap."`
		Pytest        registry.SemVer `name:"pytest-version" default:"LATEST" help:"Version of pytest. Only used with --tests."`
		Ruff          registry.SemVer `name:"ruff-version" default:"LATEST" help:"Version of ruff. Only used with --pre-commit."`
		Tailwind      registry.SemVer `name:"tailwind-version" default:"LATEST" help:"Version of the tailwindcss npm package. Only used with --styling tailwind."`
	}

	Prompter struct {
		io.ReadWriter
	}
)

var (
	ErrProjectExists = errors.New("project directory already exists")

	ErrAborted = errors.New("aborted")

	// Indicators that the current working directory is itself a project,
	// i.e. scaffolding here would nest one project inside another.
	projectIndicators = []string{
		"pyproject.toml",
		"src",
		".venv",
		"venv",
		"requirements.txt",
		"setup.py",
	}
)

// Confirm asks a yes/no question and reads one line of input. Empty input
// picks the default.
func (p Prompter) Confirm(question string, def bool) (answer bool, err error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	_, err = fmt.Fprintf(p, "%s %s ", question, hint)
	if err != nil {
		return false, fmt.Errorf("failed to prompt for confirmation: %w", err)
	}

	buf := make([]byte, 64)

	n, err := p.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation from user input: %w", err)
	}

	switch strings.ToLower(string(bytes.TrimSpace(buf[:n]))) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return def, nil
	default:
		return false, nil
	}
}

func (c *NewCmd) BeforeReset() error {
	c.VersionSetters = []registry.VersionSetter{
		{Kind: registry.PyPI, Name: "dash", Floor: "3.0.0", Indirect: &c.Versions.Dash},
		{Kind: registry.PyPI, Name: "plotly", Floor: "6.0.0", Indirect: &c.Versions.Plotly},
		{Kind: registry.PyPI, Name: "pandas", Floor: "2.2.3", Indirect: &c.Versions.Pandas},
		{Kind: registry.PyPI, Name: "gunicorn", Floor: "23.0.0", Indirect: &c.Versions.Gunicorn},
		{Kind: registry.PyPI, Name: "dash-bootstrap-components", Floor: "2.0.0", Indirect: &c.Versions.DashBootstrap},
		{Kind: registry.PyPI, Name: "pytest", Floor: "8.3.5", Indirect: &c.Versions.Pytest},
		{Kind: registry.PyPI, Name: "ruff", Floor: "0.11.8", Indirect: &c.Versions.Ruff},
		{Kind: registry.NPM, Name: "tailwindcss", Floor: "4.1.5", Indirect: &c.Versions.Tailwind},
	}

	return nil
}

func (c *NewCmd) AfterApply() (err error) {
	c.rootDir, err = os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	c.out = os.Stdout
	c.prompter = Prompter{ReadWriter: struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}}

	defaults, err := DefaultsFromEnv()
	if err != nil {
		return err
	}

	if c.AuthorName == "" {
		c.AuthorName = defaults.AuthorName
	}

	if c.AuthorEmail == "" {
		c.AuthorEmail = defaults.AuthorEmail
	}

	if defaults.Port != 0 && c.Port == 8000 {
		c.Port = defaults.Port
	}

	return nil
}

func (c *NewCmd) Run() (err error) {
	if err = c.normalize(); err != nil {
		return err
	}

	if err = c.warnIfInsideProject(); err != nil {
		return err
	}

	if err = c.resolveDestination(); err != nil {
		return err
	}

	c.resolveVersions()

	if err = c.echoSummary(); err != nil {
		return err
	}

	if err = c.generate(); err != nil {
		c.cleanup()

		return err
	}

	c.setupTailwind()

	if !c.SkipInstall {
		c.installDependencies()
	}

	c.echoSuccess(fmt.Sprintf("✅ Successfully created %s", c.ProjectName))
	c.echoNextSteps()

	return nil
}

// Non-nil returned error wraps [ErrInvalidInput].
func (c *NewCmd) normalize() error {
	c.ProjectName = strings.TrimSpace(c.ProjectName)
	c.AuthorName = strings.TrimSpace(c.AuthorName)
	c.AuthorEmail = strings.TrimSpace(c.AuthorEmail)
	c.Description = strings.TrimSpace(c.Description)
	c.Styling = FilterNone(c.Styling)
	c.Animations = FilterNone(c.Animations)

	if err := ValidateProjectName(c.ProjectName); err != nil {
		return err
	}

	if err := ValidateEmail(c.AuthorEmail); err != nil {
		return err
	}

	return ValidatePort(c.Port)
}

// warnIfInsideProject guards against nesting one project inside another,
// e.g. business-dashboard/business-dashboard/.
func (c *NewCmd) warnIfInsideProject() error {
	if c.Here {
		return nil
	}

	found := false

	for _, indicator := range projectIndicators {
		if _, err := os.Stat(filepath.Join(c.rootDir, indicator)); err == nil {
			found = true

			break
		}
	}

	if !found {
		return nil
	}

	c.echoWarn("⚠️  You appear to be running this command from inside a project directory.\nThis may create a nested project structure. Run from the parent directory\nwhere you want your project created, or pass --here to initialize this one.")

	if c.Yes {
		return nil
	}

	ok, err := c.prompter.Confirm("Continue anyway?", false)
	if err != nil {
		return err
	}

	if !ok {
		c.echoInfo("Cancelled.")

		return ErrAborted
	}

	return nil
}

// resolveDestination decides between creating a fresh project directory and
// initializing the current one. The current directory is offered when its
// basename normalizes to the project name and it holds nothing besides .git
// and .venv.
func (c *NewCmd) resolveDestination() error {
	inPlace := c.Here

	if !inPlace && NormalizeName(filepath.Base(c.rootDir)) == NormalizeName(c.ProjectName) && dirEffectivelyEmpty(c.rootDir) {
		if c.Yes || c.NoInput {
			inPlace = true
		} else {
			ok, err := c.prompter.Confirm(
				fmt.Sprintf("📁 You're in a directory named %q and want to create %q.\nInitialize the current directory instead of creating a nested one?", filepath.Base(c.rootDir), c.ProjectName),
				true,
			)
			if err != nil {
				return err
			}

			inPlace = ok
		}
	}

	if inPlace {
		c.projectDir = c.rootDir

		c.echoInfo(fmt.Sprintf("Initializing current directory: %s", c.ProjectName))

		return nil
	}

	dest := filepath.Clean(filepath.Join(c.rootDir, c.ProjectName))

	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %q already exists; choose a different project name, run in a different directory, or delete the existing project first", ErrProjectExists, c.ProjectName)
	}

	c.projectDir = dest

	return nil
}

func dirEffectivelyEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if entry.Name() == ".git" || entry.Name() == ".venv" {
			continue
		}

		return false
	}

	return true
}

// HasStyling reports whether the given framework was chosen.
func (c *NewCmd) HasStyling(s Styling) bool {
	return slices.Contains(c.Styling, s)
}

// activeSetters narrows the full setter list to the packages the chosen
// configuration actually renders.
func (c *NewCmd) activeSetters() []registry.VersionSetter {
	active := make([]registry.VersionSetter, 0, len(c.VersionSetters))

	for _, vs := range c.VersionSetters {
		switch vs.Name {
		case "dash-bootstrap-components":
			if !slices.Contains(c.Styling, Bootstrap) {
				continue
			}
		case "tailwindcss":
			if !slices.Contains(c.Styling, Tailwind) {
				continue
			}
		case "pytest":
			if !c.IncludeTests {
				continue
			}
		case "ruff":
			if !c.ConfigurePreCommit {
				continue
			}
		}

		active = append(active, vs)
	}

	return active
}

func (c *NewCmd) resolveVersions() {
	setters := c.activeSetters()

	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Duration(c.TimeoutSeconds)*time.Second)

	defer cancelFunc()

	if err := registry.Resolve(ctx, setters); err != nil {
		c.echoWarn(fmt.Sprintf("⚠️  Could not resolve the latest package versions, falling back to pinned minimums: %s", err.Error()))
	}

	if err := registry.ApplyFloors(setters); err != nil {
		// Floors are compile-time constants; a parse failure here is a bug.
		panic(err)
	}
}

func (c *NewCmd) echoSummary() error {
	summary := struct {
		ProjectName        string      `json:"project_name"`
		AuthorName         string      `json:"author_name"`
		AuthorEmail        string      `json:"author_email"`
		Description        string      `json:"description"`
		Styling            []Styling   `json:"styling"`
		Animations         []Animation `json:"animations"`
		IncludePages       bool        `json:"include_pages"`
		IncludeTests       bool        `json:"include_tests"`
		IncludeDocker      bool        `json:"include_docker"`
		ConfigurePreCommit bool        `json:"configure_pre_commit"`
		Port               int         `json:"port"`
	}{
		c.ProjectName, c.AuthorName, c.AuthorEmail, c.Description,
		c.Styling, c.Animations,
		c.IncludePages, c.IncludeTests, c.IncludeDocker, c.ConfigurePreCommit,
		c.Port,
	}

	contents, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render the configuration summary: %w", err)
	}

	_, err = fmt.Fprintf(c.out, "Your Project Configuration:\n\n%s\n\n", contents)

	return err
}

// cleanup removes a partially created project directory so that a failed run
// leaves no broken project behind. Never removes the current directory.
func (c *NewCmd) cleanup() {
	if c.createdDir == "" {
		if c.projectDir == c.rootDir {
			c.echoWarn("Note: the current directory was being initialized. Manual cleanup may be needed.")
		}

		return
	}

	if err := os.RemoveAll(c.createdDir); err != nil {
		c.echoWarn(fmt.Sprintf("⚠️  Failed to remove the partially created project directory %q: %s", c.createdDir, err.Error()))

		return
	}

	c.echoInfo(fmt.Sprintf("Removed partially created project directory: %s", c.ProjectName))
}
