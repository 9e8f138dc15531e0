package app

import "fmt"

// Version and Commit are injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/tuanvng/kanjidex/internal/app.Version=1.2.0"
var (
	Version = "dev"
	Commit  = "unknown"
)

// BuildVersion formats the version for startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
