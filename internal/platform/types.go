// Package platform enumerates the (operating system, CPU architecture)
// pairs the Vespa CLI is released for and maps host-reported strings onto
// that set.
//
// The mapping is a pure function of its inputs; nothing in this package
// holds mutable process-wide state. Artifact and executable naming is
// owned by the Identifier so that every supported pair resolves to
// exactly one upstream archive name and one local executable name.
package platform

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when an (OS, arch) pair falls outside the
// enumerated set of supported platforms.
var ErrUnsupported = errors.New("unsupported platform")

// Identifier identifies one supported (OS, architecture) pair.
type Identifier struct {
	OS   string // "linux", "darwin", "windows"
	Arch string // "amd64", "arm64", "386"
}

// supported is the enumerated set of platforms the Vespa CLI publishes
// prebuilt binaries for. Order is deterministic: it drives the directory
// layout produced at package-build time.
var supported = []Identifier{
	{OS: "linux", Arch: "amd64"},
	{OS: "linux", Arch: "arm64"},
	{OS: "darwin", Arch: "amd64"},
	{OS: "darwin", Arch: "arm64"},
	{OS: "windows", Arch: "386"},
	{OS: "windows", Arch: "amd64"},
}

// Supported returns the enumerated set of supported platform identifiers.
// The returned slice is a copy; callers may modify it freely.
func Supported() []Identifier {
	out := make([]Identifier, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether id is in the enumerated set.
func (id Identifier) IsSupported() bool {
	for _, s := range supported {
		if id == s {
			return true
		}
	}
	return false
}

// String returns the canonical "os/arch" form, e.g. "linux/amd64".
func (id Identifier) String() string {
	return id.OS + "/" + id.Arch
}

// IsWindows reports whether the identifier targets Windows.
func (id Identifier) IsWindows() bool {
	return id.OS == "windows"
}

// ArchiveExt returns the archive format the upstream release uses for
// this platform: zip on Windows, tar.gz everywhere else.
func (id Identifier) ArchiveExt() string {
	if id.IsWindows() {
		return "zip"
	}
	return "tar.gz"
}

// ArchiveName returns the upstream artifact name for a release version,
// e.g. "vespa-cli_8.250.1_linux_amd64.tar.gz".
func (id Identifier) ArchiveName(version string) string {
	return fmt.Sprintf("%s.%s", id.DirName(version), id.ArchiveExt())
}

// DirName returns the versioned directory name the archive extracts to,
// e.g. "vespa-cli_8.250.1_linux_amd64".
func (id Identifier) DirName(version string) string {
	return fmt.Sprintf("vespa-cli_%s_%s_%s", version, id.OS, id.Arch)
}

// ExecutableName returns the name of the wrapped binary for this
// platform: "vespa", or "vespa.exe" on Windows.
func (id Identifier) ExecutableName() string {
	if id.IsWindows() {
		return "vespa.exe"
	}
	return "vespa"
}
