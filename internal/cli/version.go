package cli

import (
	"fmt"
	"runtime/debug"
)

// Build information, injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/dockgrid/internal/cli.version=v1.0.0 \
//	    -X github.com/matzehuels/dockgrid/internal/cli.commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/dockgrid/internal/cli.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries installed with go install fall back to the module version and
// VCS stamps recorded by the toolchain.
var (
	version string
	commit  string
	date    string
)

// buildVersion returns the version, commit and build date, filling blanks
// from the embedded build info.
func buildVersion() (v, c, d string) {
	v, c, d = version, commit, date
	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" && info.Main.Version != "" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && c == "":
				c = s.Value
			case s.Key == "vcs.time" && d == "":
				d = s.Value
			}
		}
	}
	if v == "" {
		v = "dev"
	}
	if c == "" {
		c = "none"
	}
	if d == "" {
		d = "unknown"
	}
	return v, c, d
}

// versionTemplate is the cobra template printed by --version.
func versionTemplate() string {
	v, c, d := buildVersion()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", v, c, d)
}
