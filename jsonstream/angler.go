// Package jsonstream extracts a single value from a JSON stream by a
// dot-separated key path, without decoding the whole document.
// Registry responses from PyPI and npm can be large; the Angler stops
// reading as soon as the target value is found.
package jsonstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Angler struct {
	dec         *json.Decoder
	keys        []string
	currentPath strings.Builder
}

func isObjectStart(t json.Token) bool {
	d, ok := t.(json.Delim)

	return ok && d == '{'
}

func isStartingDelim(t json.Token) bool {
	d, ok := t.(json.Delim)

	return ok && (d == '{' || d == '[')
}

func isEndingDelim(t json.Token) bool {
	d, ok := t.(json.Delim)

	return ok && (d == '}' || d == ']')
}

func isTargetKey(t json.Token, key string) bool {
	s, ok := t.(string)

	return ok && s == key
}

func NewAngler(stream io.Reader, path string) (*Angler, error) {
	if !strings.HasPrefix(path, ".") {
		return nil, errors.New(`path must start with the dot character "."`)
	}

	if strings.HasSuffix(path, ".") {
		return nil, errors.New(`path must not end with the dot character "."`)
	}

	keys := strings.Split(path, ".")[1:]

	return &Angler{dec: json.NewDecoder(stream), keys: keys}, nil
}

// Land reads the stream until the value at the Angler's key path is reached
// and returns it. The stream is consumed at most once; Land must not be
// called twice on the same Angler.
func (a *Angler) Land(ctx context.Context) (value any, err error) {
	a.currentPath.WriteString(".")

	for _, key := range a.keys {
		if err = a.seek(ctx, key); err != nil {
			return nil, err
		}
	}

	return a.value()
}

// LandString is Land for the common case where the target value must be a
// JSON string.
func (a *Angler) LandString(ctx context.Context) (value string, err error) {
	v, err := a.Land(ctx)
	if err != nil {
		return "", err
	}

	value, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("the value at path %q is not a string", a.currentPath.String())
	}

	return value, nil
}

// seek advances the decoder until the given key of the current object is the
// last consumed token.
func (a *Angler) seek(ctx context.Context, key string) (err error) {
	var t json.Token

	// consume the starting '{' token
	if t, err = a.dec.Token(); err != nil {
		return
	} else if !isObjectStart(t) {
		return fmt.Errorf("the value at path %q is not a JSON object", a.currentPath.String())
	}

	if key == "" || strings.Contains(key, " ") {
		a.currentPath.WriteString(`"` + key + `"`)
	} else {
		a.currentPath.WriteString(key)
	}

	done := ctx.Done()

	// the last token; it always starts with '{'
	last := t
	// nesting level of the current token; -1 before the first token
	level := -1
	// count of level-zero tokens so far; keys are the odd ones
	count := 0

	for level > 0 || a.dec.More() {
		select {
		case <-done:
			return fmt.Errorf("failed to find target key %q in time: %w", a.currentPath.String(), context.Cause(ctx))
		default:
		}

		if t, err = a.dec.Token(); err != nil {
			return
		}

		if isStartingDelim(last) {
			level += 1
		}

		if isEndingDelim(last) {
			level -= 1
		}

		if level == 0 {
			count += 1
		}

		if level == 0 && (count%2 == 1) && isTargetKey(t, key) {
			return nil
		}

		last = t
	}

	return fmt.Errorf("failed to find target key %q", a.currentPath.String())
}

func (a *Angler) value() (t json.Token, err error) {
	t, err = a.dec.Token()
	if err != nil {
		return nil, err
	}

	if d, ok := t.(json.Delim); ok {
		return nil, fmt.Errorf("the value at path %q is the delimiter %v", a.currentPath.String(), d)
	}

	return t, nil
}
