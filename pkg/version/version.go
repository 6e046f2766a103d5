// Package version reports build information for the fileformat binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	BuildDate string // Set via ldflags.

	Revision  = revision(debug.ReadBuildInfo)
	GoVersion = runtime.Version()
	Platform  = runtime.GOOS + "/" + runtime.GOARCH
)

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// String returns a one-line summary suitable for `fileformat --version`.
func String() string {
	s := fmt.Sprintf("%s (%s, %s)", GetVersion(), GoVersion, Platform)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

func revision(read func() (*debug.BuildInfo, bool)) string {
	info, ok := read()
	if !ok {
		return "unknown"
	}

	rev, dirty := "unknown", false

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if dirty {
		rev += "-dirty"
	}

	return rev
}
