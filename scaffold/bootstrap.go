package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const tailwindConfigJS = `/** @type {import('tailwindcss').Config} */
module.exports = {
  content: [
    "./src/**/*.{py,html,js}",
    "./src/**/*.py",
  ],
  theme: {
    extend: {},
  },
  plugins: [],
}
`

// Bootstrap subprocesses share one generous deadline; a cold uv sync can
// take a while.
const bootstrapTimeout = 10 * time.Minute

func (c *NewCmd) runTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.projectDir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %s: %w", name, strings.Join(args, " "), strings.TrimSpace(string(output)), err)
	}

	return nil
}

// installDependencies runs uv sync to generate uv.lock and install the
// dependencies listed in the generated pyproject.toml, then installs the
// package in editable mode so the console script works. Failures degrade to
// warnings; the generated project is complete without them.
func (c *NewCmd) installDependencies() {
	if _, err := os.Stat(filepath.Join(c.projectDir, "pyproject.toml")); err != nil {
		c.echoWarn("⚠️  pyproject.toml not found, skipping uv sync")

		return
	}

	ctx, cancelFunc := context.WithTimeout(context.Background(), bootstrapTimeout)

	defer cancelFunc()

	c.echoInfo("Running uv sync to generate lock file and install dependencies ...")

	if err := c.runTool(ctx, "uv", "sync"); err != nil {
		c.warnToolFailure("uv", "uv sync", err)

		return
	}

	c.echoInfo("Installing package in editable mode for console scripts ...")

	if err := c.runTool(ctx, "uv", "pip", "install", "-e", "."); err != nil {
		c.warnToolFailure("uv", "uv pip install -e .", err)

		return
	}

	c.echoSuccess("✅ Successfully generated uv.lock and installed dependencies")
}

// setupTailwind wires Tailwind CSS into the generated project: npm init when
// needed, the tailwindcss dev dependencies, the CSS entry file and config,
// package.json build scripts, and one production build. Every step degrades
// to a warning when npm is not available.
func (c *NewCmd) setupTailwind() {
	if !c.HasStyling(Tailwind) {
		return
	}

	ctx, cancelFunc := context.WithTimeout(context.Background(), bootstrapTimeout)

	defer cancelFunc()

	packageJSONPath := filepath.Join(c.projectDir, "package.json")

	if _, err := os.Stat(packageJSONPath); err != nil {
		c.echoInfo("Initializing npm for Tailwind CSS setup ...")

		if err = c.runTool(ctx, "npm", "init", "-y"); err != nil {
			c.warnToolFailure("npm", "npm init", err)

			return
		}
	}

	c.echoInfo("Installing Tailwind CSS and CLI as dev dependencies ...")

	spec := "tailwindcss"
	if c.Versions.Tailwind.Set() {
		spec = "tailwindcss@" + c.Versions.Tailwind.String()
	}

	if err := c.runTool(ctx, "npm", "install", "-D", spec, "@tailwindcss/cli"); err != nil {
		c.warnToolFailure("npm", "npm install", err)

		return
	}

	assetsDir := filepath.Clean(filepath.Join(c.projectDir, "src", "assets"))

	if err := os.MkdirAll(assetsDir, 0750); err != nil {
		c.echoWarn(fmt.Sprintf("⚠️  Warning: failed to create the src/assets directory: %s", err.Error()))

		return
	}

	err := WriteToFile(assetsDir, "tailwind.css", func(fd io.Writer) error {
		_, err1 := io.WriteString(fd, "@import \"tailwindcss\";\n")

		return err1
	})
	if err != nil {
		c.echoWarn(fmt.Sprintf("⚠️  Warning: %s", err.Error()))

		return
	}

	err = WriteToFile(c.projectDir, "tailwind.config.js", func(fd io.Writer) error {
		_, err1 := io.WriteString(fd, tailwindConfigJS)

		return err1
	})
	if err != nil {
		c.echoWarn(fmt.Sprintf("⚠️  Warning: %s", err.Error()))

		return
	}

	if err = patchPackageJSONScripts(packageJSONPath); err != nil {
		c.echoWarn(fmt.Sprintf("⚠️  Warning: failed to add build scripts to package.json: %s", err.Error()))

		return
	}

	c.echoInfo("Building Tailwind CSS (production build) ...")

	if err = c.runTool(ctx, "npm", "run", "build:css:prod"); err != nil {
		c.warnToolFailure("npm", "npm run build:css:prod", err)

		return
	}

	c.echoSuccess("✅ Successfully built Tailwind CSS output file")
}

// patchPackageJSONScripts adds the Tailwind build scripts to the scripts
// section of package.json, preserving whatever npm init put there.
func patchPackageJSONScripts(path string) error {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}

	var packageJSON map[string]any

	if err = json.Unmarshal(contents, &packageJSON); err != nil {
		return fmt.Errorf("failed to parse %q: %w", path, err)
	}

	scripts, ok := packageJSON["scripts"].(map[string]any)
	if !ok {
		scripts = make(map[string]any)
	}

	scripts["build:css"] = "tailwindcss -i ./src/assets/tailwind.css -o ./src/assets/tailwind-output.css --watch"
	scripts["build:css:prod"] = "tailwindcss -i ./src/assets/tailwind.css -o ./src/assets/tailwind-output.css --minify"

	packageJSON["scripts"] = scripts

	contents, err = json.MarshalIndent(packageJSON, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Clean(path), append(contents, '\n'), 0600)
}

func (c *NewCmd) warnToolFailure(tool, step string, err error) {
	var execErr *exec.Error

	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		c.echoWarn(fmt.Sprintf("⚠️  Warning: %s command not found. Please install %s and run %q manually.", tool, tool, step))

		return
	}

	c.echoWarn(fmt.Sprintf("⚠️  Warning: %s failed: %s", step, err.Error()))
}
