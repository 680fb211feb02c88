// Package version derives the CLI version string from build metadata.
package version

import (
	"fmt"
	"runtime/debug"
)

func FromBuildInfo() (version string) {
	version = "dev"

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	}

	var vcs, revision, ts string

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs":
			vcs = info.Settings[i].Value
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		default:
			continue
		}
	}

	if revision == "" {
		return version
	}

	if ts == "" {
		return fmt.Sprintf("%s (%s revision %s)", version, vcs, revision)
	}

	return fmt.Sprintf("%s (%s revision %s at %s)", version, vcs, revision, ts)
}
