package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"text/template"
)

type (
	WriteHook func(io.Writer) error

	// templateData is the render context for every file in the template
	// tree. Everything is precomputed so the templates stay logic-free.
	templateData struct {
		ProjectName        string
		Slug               string
		PackageName        string
		AuthorName         string
		AuthorEmail        string
		Description        string
		Port               int
		IncludePages       bool
		IncludeTests       bool
		IncludeDocker      bool
		ConfigurePreCommit bool
		HasTailwind        bool
		HasBootstrap       bool
		Styling            []Styling
		Animations         []Animation
		StylesheetURLs     []string
		ScriptURLs         []string
		Dash               string
		Plotly             string
		Pandas             string
		Gunicorn           string
		DashBootstrap      string
		Pytest             string
		Ruff               string
	}
)

var (
	//go:embed all:templates
	templatesFS embed.FS

	tmpltExt = ".tmplt"
)

func (c *NewCmd) templateData() templateData {
	data := templateData{
		ProjectName:        c.ProjectName,
		Slug:               Slug(c.ProjectName),
		PackageName:        SnakeCase(c.ProjectName),
		AuthorName:         c.AuthorName,
		AuthorEmail:        c.AuthorEmail,
		Description:        c.Description,
		Port:               c.Port,
		IncludePages:       c.IncludePages,
		IncludeTests:       c.IncludeTests,
		IncludeDocker:      c.IncludeDocker,
		ConfigurePreCommit: c.ConfigurePreCommit,
		HasTailwind:        slices.Contains(c.Styling, Tailwind),
		HasBootstrap:       slices.Contains(c.Styling, Bootstrap),
		Styling:            c.Styling,
		Animations:         c.Animations,
		Dash:               c.Versions.Dash.String(),
		Plotly:             c.Versions.Plotly.String(),
		Pandas:             c.Versions.Pandas.String(),
		Gunicorn:           c.Versions.Gunicorn.String(),
		DashBootstrap:      c.Versions.DashBootstrap.String(),
		Pytest:             c.Versions.Pytest.String(),
		Ruff:               c.Versions.Ruff.String(),
	}

	for _, s := range c.Styling {
		if url, ok := stylesheetURLs[s]; ok {
			data.StylesheetURLs = append(data.StylesheetURLs, url)
		}

		if url, ok := stylingScriptURLs[s]; ok {
			data.ScriptURLs = append(data.ScriptURLs, url)
		}
	}

	for _, a := range c.Animations {
		if url, ok := animationStylesheetURLs[a]; ok {
			data.StylesheetURLs = append(data.StylesheetURLs, url)
		}

		if url, ok := animationScriptURLs[a]; ok {
			data.ScriptURLs = append(data.ScriptURLs, url)
		}
	}

	return data
}

// skipTemplate filters the template tree down to the chosen configuration.
// rel is the file path relative to the tree root, slash-separated.
func (c *NewCmd) skipTemplate(rel string) bool {
	name := strings.ToLower(filepath.Base(rel))

	if !c.ConfigurePreCommit && strings.Contains(name, "pre-commit") {
		return true
	}

	if !c.IncludeDocker && (name == "dockerfile.tmplt" || name == "docker-compose.yml.tmplt" || name == ".dockerignore.tmplt") {
		return true
	}

	if !c.IncludeTests && strings.HasPrefix(rel, "tests/") {
		return true
	}

	if !c.IncludePages && strings.HasPrefix(rel, "pages/") && rel != "pages/home.py.tmplt" {
		return true
	}

	return false
}

func (c *NewCmd) generate() (err error) {
	if c.projectDir != c.rootDir {
		if err = os.Mkdir(c.projectDir, 0750); err != nil {
			return fmt.Errorf("failed to create the project directory %q: %w", c.projectDir, err)
		}

		c.createdDir = c.projectDir

		c.echoInfo(fmt.Sprintf("Created project directory: %s", c.ProjectName))
	}

	data := c.templateData()

	if err = writeFiles(c.projectDir, templatesFS, "templates/base", data, c.skipTemplate); err != nil {
		return err
	}

	if err = writeFiles(filepath.Join(c.projectDir, "src"), templatesFS, "templates/basic", data, c.skipTemplate); err != nil {
		return err
	}

	// The pages directory always exists so the homepage sample has a home,
	// even before multi-page routing is turned on.
	if err = os.MkdirAll(filepath.Clean(filepath.Join(c.projectDir, "src", "pages")), 0750); err != nil {
		return fmt.Errorf("failed to create the src/pages directory: %w", err)
	}

	c.echoSuccess("✅ Successfully generated template files!")

	return nil
}

func WriteToFile(dir, name string, hook WriteHook) (err error) {
	fd, err := os.Create(filepath.Clean(filepath.Join(dir, name)))
	if err != nil {
		return fmt.Errorf("failed to create %q file: %w", name, err)
	}

	defer func() { _ = fd.Close() }()

	err = hook(fd)
	if err != nil {
		return fmt.Errorf("failed to write to %q: %w", name, err)
	}

	return nil
}

// writeFiles renders every template under srcPrefix into dest, preserving
// the directory layout and stripping the .tmplt extension. Each file is its
// own template; identical basenames in different directories do not clash.
func writeFiles(dest string, srcFS fs.FS, srcPrefix string, data any, skip func(string) bool) (err error) {
	var srcFiles []string

	err = fs.WalkDir(srcFS, srcPrefix, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access %q in the template tree: %w", path, err)
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcPrefix, path)
		if err != nil {
			return fmt.Errorf("erroneous path %q in the template tree: %w", path, err)
		}

		if skip != nil && skip(filepath.ToSlash(rel)) {
			return nil
		}

		srcFiles = append(srcFiles, path)

		return nil
	})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, 7)
	out := make(chan error)

	for _, srcFile := range srcFiles {
		wg.Add(1)

		go func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err1 := renderOne(dest, srcFS, srcPrefix, srcFile, data); err1 != nil {
				out <- err1
			}
		}()
	}

	go func() {
		wg.Wait()

		close(out)
	}()

	var errs []error

	for err = range out {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func renderOne(dest string, srcFS fs.FS, srcPrefix, srcFile string, data any) error {
	contents, err := fs.ReadFile(srcFS, srcFile)
	if err != nil {
		return fmt.Errorf("failed to read the template %q: %w", srcFile, err)
	}

	tmplt, err := template.New(filepath.Base(srcFile)).Delims("{%", "%}").Parse(string(contents))
	if err != nil {
		return fmt.Errorf("failed to parse the template %q: %w", srcFile, err)
	}

	rel, err := filepath.Rel(srcPrefix, srcFile)
	if err != nil {
		return fmt.Errorf("name of the template %q does not start with prefix %q: %w", srcFile, srcPrefix, err)
	}

	destItem := strings.TrimSuffix(rel, tmpltExt)

	if dir := filepath.Dir(destItem); dir != "." {
		if err = os.MkdirAll(filepath.Clean(filepath.Join(dest, dir)), 0750); err != nil {
			return fmt.Errorf("failed to create directory %q in destination folder: %w", dir, err)
		}
	}

	err = WriteToFile(dest, destItem, func(fd io.Writer) error {
		return tmplt.Execute(fd, data)
	})
	if err != nil {
		return fmt.Errorf("failed to create new file from template %q: %w", srcFile, err)
	}

	return nil
}
