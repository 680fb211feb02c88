package jsonstream

import (
	"context"
	"iter"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Zip(first []string, second []any) iter.Seq2[string, any] {
	n := math.Min(float64(len(first)), float64(len(second)))

	return func(yield func(string, any) bool) {
		for i := range int(n) {
			if !yield(first[i], second[i]) {
				return
			}
		}
	}
}

func TestLand(t *testing.T) {
	var tests = []struct {
		contents string
		paths    []string
		expected []any
	}{
		{
			contents: `
			{
				"info": {
					"author": "someone",
					"version": "3.1.1"
				},
				"releases": {},
				"urls": ["a", "b"]
			}
			`,
			paths: []string{
				".info.version",
				".info.author",
			},
			expected: []any{
				"3.1.1",
				"someone",
			},
		},
		{
			contents: `
			{
				"_id": "tailwindcss",
				"dist-tags": {
					"insiders": "0.0.0-insiders.5c57502",
					"latest": "4.1.5"
				},
				"versions": {
					"4.1.5": {"name": "tailwindcss"}
				}
			}
			`,
			paths: []string{
				".dist-tags.latest",
				".dist-tags.insiders",
			},
			expected: []any{
				"4.1.5",
				"0.0.0-insiders.5c57502",
			},
		},
		{
			contents: `
			{
				"a": 1,
				"b": [1, 2, 3],
				"c": null,
				"d": {
					"e f": {
						"g": "z"
					},
					"": {
						"s": "here"
					}
				}
			}
			`,
			paths: []string{
				".a",
				".d.e f.g",
				".d..s",
			},
			expected: []any{
				float64(1),
				"z",
				"here",
			},
		},
	}

	for _, test := range tests {
		for path, expected := range Zip(test.paths, test.expected) {
			angler, err := NewAngler(strings.NewReader(test.contents), path)
			require.NoError(t, err)

			value, err := angler.Land(context.Background())
			require.NoError(t, err)

			assert.Equal(t, expected, value)
		}
	}
}

func TestLandString(t *testing.T) {
	contents := `{"info": {"version": "2.18.2"}}`

	angler, err := NewAngler(strings.NewReader(contents), ".info.version")
	require.NoError(t, err)

	value, err := angler.LandString(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.18.2", value)
}

func TestLandStringRejectsNonString(t *testing.T) {
	contents := `{"info": {"downloads": 42}}`

	angler, err := NewAngler(strings.NewReader(contents), ".info.downloads")
	require.NoError(t, err)

	_, err = angler.LandString(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a string")
}

func TestNewAnglerRejectsBadPaths(t *testing.T) {
	_, err := NewAngler(strings.NewReader("{}"), "info.version")
	require.Error(t, err)

	_, err = NewAngler(strings.NewReader("{}"), ".info.version.")
	require.Error(t, err)
}
