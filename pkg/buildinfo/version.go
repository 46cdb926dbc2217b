// Package buildinfo reports the version of the running binary.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/stratum-research/autoreadme/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/stratum-research/autoreadme/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/stratum-research/autoreadme/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with `go install` have no ldflags; their module version and
// VCS stamp are read from the embedded build info instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const projectURL = "https://github.com/stratum-research/autoreadme"

var resolveOnce sync.Once

func resolve() {
	resolveOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		fill(info)
	})
}

// fill copies module and VCS details into any variable still at its default.
func fill(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// UserAgent is sent with every GitHub and PyPI request.
func UserAgent() string {
	resolve()
	return fmt.Sprintf("autoreadme/%s (+%s)", Version, projectURL)
}

// Template is cobra's --version output.
func Template() string {
	resolve()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
