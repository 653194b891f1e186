// Package parlor holds build metadata shared by the parlor binaries.
package parlor

// Version is the release version. The build overrides it with
// -ldflags "-X github.com/mesh-intelligence/parlor/pkg/parlor.Version=...".
var Version = "0.1.0"
