// Package scaffold generates a Plotly Dash application skeleton from an
// embedded template tree. The generated project uses uv for dependency
// management and a shared registry that auto-discovers callbacks and stores
// at import time.
package scaffold
