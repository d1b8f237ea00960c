package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Release builds stamp these with
// -ldflags "-X github.com/heartmarshall/catalog-urlgen/internal/app.Version=v1.2.0 ...".
// Unstamped builds fall back to the VCS data the Go toolchain embeds.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Build describes the running binary.
type Build struct {
	Version string
	Commit  string
	Time    string
}

// CurrentBuild returns the ldflags stamp, completed from debug.ReadBuildInfo.
func CurrentBuild() Build {
	b := Build{Version: Version, Commit: Commit, Time: BuildTime}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b.withDefaults()
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Time == "" {
				b.Time = s.Value
			}
		}
	}
	return b.withDefaults()
}

func (b Build) withDefaults() Build {
	if len(b.Commit) > 12 {
		b.Commit = b.Commit[:12]
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.Time == "" {
		b.Time = "unknown"
	}
	return b
}

// String formats the build for --version output.
func (b Build) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.Time)
}

// LogValue groups the build fields in structured logs.
func (b Build) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", b.Version),
		slog.String("commit", b.Commit),
		slog.String("built", b.Time),
	)
}
