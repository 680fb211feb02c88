package registry

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// SemVer holds a major.minor.bugfix version specifier. The zero value means
// "LATEST", i.e. resolve against the package registry at scaffold time.
type SemVer struct {
	major  string
	minor  string
	bugfix string
	set    bool
}

var semVerRegex = regexp.MustCompile(`^(\d+)\.(\d+)(\..+)?$`)

func (sv *SemVer) String() string {
	return fmt.Sprintf("%s.%s.%s", sv.major, sv.minor, sv.bugfix)
}

func (sv *SemVer) MajorMinor() string {
	return fmt.Sprintf("%s.%s", sv.major, sv.minor)
}

func (sv *SemVer) UnmarshalText(text []byte) error {
	if strings.EqualFold(string(text), "LATEST") {
		return nil
	}

	m := semVerRegex.FindStringSubmatch(string(text))
	if len(m) == 0 {
		return fmt.Errorf(`%s is not of the %s format`, string(text), semVerRegex)
	}

	sv.major = m[1]
	sv.minor = m[2]
	sv.bugfix = "0"

	if m[3] != "" {
		sv.bugfix = strings.TrimPrefix(m[3], ".")
	}

	if !semver.IsValid("v" + sv.String()) {
		return fmt.Errorf("%q is not a valid semantic version", string(text))
	}

	sv.set = true

	return nil
}

func (sv *SemVer) SetFromString(raw string) error {
	raw = strings.TrimPrefix(raw, "v")

	return sv.UnmarshalText([]byte(raw))
}

func (sv *SemVer) Set() bool {
	return sv.set
}
