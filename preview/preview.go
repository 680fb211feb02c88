// Package preview renders a generated project's README as GitHub-style
// HTML and displays it in the default browser.
package preview

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/browser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

type Cmd struct {
	Path string `arg:"" default:"." help:"Path to a Markdown file, or a project directory containing a README.md."`
}

//go:embed github_style.html
var gitHubMarkdownTemplate string

// Render converts Markdown to a full GitHub-style HTML page.
func Render(source []byte) ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	var html bytes.Buffer

	if err := md.Convert(source, &html); err != nil {
		return nil, fmt.Errorf("failed to convert Markdown to HTML: %w", err)
	}

	tmplt, err := template.New("github.style").Parse(gitHubMarkdownTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to load the HTML page template: %w", err)
	}

	var out bytes.Buffer

	if err = tmplt.Execute(&out, html.String()); err != nil {
		return nil, fmt.Errorf("failed to insert converted HTML into the page template: %w", err)
	}

	return out.Bytes(), nil
}

func (c *Cmd) Run() error {
	inpath := filepath.Clean(c.Path)

	if stat, err := os.Stat(inpath); err == nil && stat.IsDir() {
		inpath = filepath.Join(inpath, "README.md")
	}

	contents, err := os.ReadFile(filepath.Clean(inpath))
	if err != nil {
		return fmt.Errorf("failed to read the Markdown file at %q: %w", inpath, err)
	}

	page, err := Render(contents)
	if err != nil {
		return err
	}

	if err = browser.OpenReader(bytes.NewReader(page)); err != nil {
		return fmt.Errorf("failed to open rendered HTML in the default browser: %w", err)
	}

	return nil
}
