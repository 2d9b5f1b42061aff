// Package version reports the build version shared by the snapdiff commands.
package version

import (
	"runtime/debug"

	"github.com/samber/lo"
)

// Version information set at build time via ldflags:
//
//	-X github.com/nao1215/snapdiff/internal/version.version=v1.0.0
var (
	version = ""
	commit  = ""
	date    = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Version returns the version string.
// Priority: ldflags > debug.ReadBuildInfo > "(devel)"
func Version() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// Commit returns the short commit hash.
// Priority: ldflags > debug.ReadBuildInfo > "unknown"
func Commit() string {
	if commit != "" {
		return commit
	}
	rev := setting("vcs.revision")
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// Date returns the build date.
// Priority: ldflags > debug.ReadBuildInfo > "unknown"
func Date() string {
	if date != "" {
		return date
	}
	return setting("vcs.time")
}

// setting returns the build setting with the given key, or "unknown".
func setting(key string) string {
	info, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	s, found := lo.Find(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == key
	})
	if !found || s.Value == "" {
		return "unknown"
	}
	return s.Value
}
