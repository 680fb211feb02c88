package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPyPIPackageLatestVersion(t *testing.T) {
	var path string

	pack := "dash"
	version := "3.0.4"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Helper()

		path = r.URL.Path

		fmt.Fprintf(w, `{"info": {"name": %q, "version": %q}, "releases": {}}`, pack, version)
	}))

	defer ts.Close()

	original := pypiURLPrefix
	pypiURLPrefix = ts.URL

	defer func() {
		pypiURLPrefix = original
	}()

	v, err := PyPIPackageLatestVersion(context.Background(), pack)

	require.NoError(t, err)
	assert.Equal(t, version, v)
	assert.Equal(t, fmt.Sprintf("/%s/json", pack), path)
}

func TestNPMPackageLatestVersion(t *testing.T) {
	var path string

	pack := "tailwindcss"
	version := "4.1.5"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Helper()

		path = r.URL.Path

		fmt.Fprintf(w, `{"_id": %q, "dist-tags": {"latest": %q}}`, pack, version)
	}))

	defer ts.Close()

	original := npmURLPrefix
	npmURLPrefix = ts.URL

	defer func() {
		npmURLPrefix = original
	}()

	v, err := NPMPackageLatestVersion(context.Background(), pack)

	require.NoError(t, err)
	assert.Equal(t, version, v)
	assert.Equal(t, fmt.Sprintf("/%s", pack), path)
}

func TestResolveSkipsPinnedSetters(t *testing.T) {
	hits := 0

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Helper()

		hits += 1

		fmt.Fprint(w, `{"info": {"version": "6.0.0"}}`)
	}))

	defer ts.Close()

	original := pypiURLPrefix
	pypiURLPrefix = ts.URL

	defer func() {
		pypiURLPrefix = original
	}()

	var pinned, latest SemVer

	require.NoError(t, pinned.UnmarshalText([]byte("2.18.2")))

	setters := []VersionSetter{
		{Kind: PyPI, Name: "dash", Indirect: &pinned, Floor: "2.0.0"},
		{Kind: PyPI, Name: "plotly", Indirect: &latest, Floor: "5.0.0"},
	}

	err := Resolve(context.Background(), setters)

	require.NoError(t, err)
	assert.Equal(t, 1, hits)
	assert.Equal(t, "2.18.2", pinned.String())
	assert.Equal(t, "6.0.0", latest.String())
}

func TestApplyFloors(t *testing.T) {
	var dash, plotly SemVer

	require.NoError(t, dash.UnmarshalText([]byte("3.0.0")))

	setters := []VersionSetter{
		{Kind: PyPI, Name: "dash", Indirect: &dash, Floor: "2.0.0"},
		{Kind: PyPI, Name: "plotly", Indirect: &plotly, Floor: "5.24.1"},
	}

	err := ApplyFloors(setters)

	require.NoError(t, err)
	assert.Equal(t, "3.0.0", dash.String())
	assert.Equal(t, "5.24.1", plotly.String())
}

func TestSemVer(t *testing.T) {
	var sv SemVer

	require.NoError(t, sv.UnmarshalText([]byte("LATEST")))
	assert.False(t, sv.Set())

	require.NoError(t, sv.SetFromString("v2.18"))
	assert.True(t, sv.Set())
	assert.Equal(t, "2.18.0", sv.String())
	assert.Equal(t, "2.18", sv.MajorMinor())

	require.Error(t, sv.UnmarshalText([]byte("not-a-version")))
}
