package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	source := []byte(`# Business Dashboard

A Dash application.

- [x] callbacks
- [ ] stores

| package | version |
| ------- | ------- |
| dash    | 3.0.4   |
`)

	page, err := Render(source)

	require.NoError(t, err)

	html := string(page)

	assert.Contains(t, html, "<h1 id=\"business-dashboard\">Business Dashboard</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<input")
	assert.Contains(t, html, "</html>")
}

func TestRenderEmptySource(t *testing.T) {
	page, err := Render(nil)

	require.NoError(t, err)
	assert.Contains(t, string(page), "<body")
}
