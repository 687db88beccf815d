// Package version holds build identity, overridable at link time with
// -ldflags "-X .../internal/version.Version=v1.2.3".
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"
)
