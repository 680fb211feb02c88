// Package registry resolves the latest published versions of packages on
// PyPI and the npm registry. Resolved versions parameterize the dependency
// manifests of generated projects.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/hquizzagan/create-dash-app/jsonstream"
)

type (
	Kind byte

	// VersionSetter resolves the latest version of one package and stores it
	// in the SemVer it points at. Floor is the baked-in minimum used when the
	// registry cannot be reached.
	VersionSetter struct {
		Indirect *SemVer
		Name     string
		Floor    string
		Kind     Kind
	}

	setterFunc func(context.Context) error
)

const (
	PyPI Kind = iota
	NPM
)

var (
	pypiURLPrefix = "https://pypi.org/pypi"

	npmURLPrefix = "https://registry.npmjs.org"
)

func landFromPublicEndpoint(ctx context.Context, url, path string) (value string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to prepare GET request to endpoint %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to GET from endpoint %q: %w", url, err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if rc := resp.StatusCode; rc != 200 {
		return "", fmt.Errorf("failed to GET from endpoint %q, status code %d", url, rc)
	}

	angler, err := jsonstream.NewAngler(resp.Body, path)
	if err != nil {
		return "", fmt.Errorf("error from jsonstream.NewAngler: %w", err)
	}

	value, err = angler.LandString(ctx)
	if err != nil {
		return "", fmt.Errorf(`failed to get the value at the %q path from the response body: %w`, path, err)
	}

	return value, nil
}

func PyPIPackageLatestVersion(ctx context.Context, name string) (version string, err error) {
	return landFromPublicEndpoint(ctx, fmt.Sprintf("%s/%s/json", pypiURLPrefix, name), ".info.version")
}

func NPMPackageLatestVersion(ctx context.Context, name string) (version string, err error) {
	return landFromPublicEndpoint(ctx, fmt.Sprintf("%s/%s", npmURLPrefix, name), ".dist-tags.latest")
}

func (vs VersionSetter) Func(ctx context.Context) (err error) {
	var rawSpecifier string

	switch vs.Kind {
	case PyPI:
		rawSpecifier, err = PyPIPackageLatestVersion(ctx, vs.Name)
		if err != nil {
			return fmt.Errorf("failed to fetch the latest version of %s from PyPI: %w", vs.Name, err)
		}
	case NPM:
		rawSpecifier, err = NPMPackageLatestVersion(ctx, vs.Name)
		if err != nil {
			return fmt.Errorf("failed to fetch the latest version of %s from npm: %w", vs.Name, err)
		}
	}

	err = vs.Indirect.SetFromString(rawSpecifier)
	if err != nil {
		return fmt.Errorf("failed to parse %q as a semantic version specifier: %s", rawSpecifier, err.Error())
	}

	return nil
}

func getSetterFuncs(vss []VersionSetter) []setterFunc {
	setterFuncs := make([]setterFunc, 0, len(vss))

	for i := range vss {
		if !vss[i].Indirect.Set() {
			setterFuncs = append(setterFuncs, vss[i].Func)
		}
	}

	return setterFuncs
}

// Resolve fetches the latest versions for all setters whose SemVer has not
// been pinned already. A non-nil error joins the individual lookup failures;
// setters that succeeded keep their resolved values.
func Resolve(ctx context.Context, vss []VersionSetter) error {
	fns := getSetterFuncs(vss)

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, 5)
	errs := make([]error, len(fns))

	for i, fn := range fns {
		wg.Add(1)

		go func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			errs[i] = fn(ctx)
		}()
	}

	wg.Wait()

	return errors.Join(errs...)
}

// ApplyFloors pins every still-unresolved setter to its floor version.
// Called after a failed Resolve so that generation can proceed offline.
func ApplyFloors(vss []VersionSetter) error {
	for i := range vss {
		if vss[i].Indirect.Set() {
			continue
		}

		if err := vss[i].Indirect.SetFromString(vss[i].Floor); err != nil {
			return fmt.Errorf("invalid floor version %q for %s: %w", vss[i].Floor, vss[i].Name, err)
		}
	}

	return nil
}
