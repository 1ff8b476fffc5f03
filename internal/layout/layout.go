// Package layout defines the installed package tree shared by the
// acquirer and the launcher: one subdirectory per supported platform
// under a go-binaries root, each holding exactly one executable.
//
// The tree mirrors the upstream archive structure:
//
//	<root>/go-binaries/vespa-cli_<version>_<os>_<arch>/bin/vespa[.exe]
//
// The acquirer writes into it at package-build time; the launcher only
// reads from it.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vespa-engine/vespacli/internal/platform"
)

// BinariesDir is the directory under the package root holding the
// per-platform binary trees.
const BinariesDir = "go-binaries"

// Layout computes paths inside an installed package tree for one
// release version.
type Layout struct {
	Root    string
	Version string
}

// New returns a Layout rooted at root for the given version.
func New(root, version string) Layout {
	return Layout{Root: root, Version: version}
}

// FromExecutable returns the layout for the package tree the running
// wrapper was installed into: the go-binaries directory next to the
// wrapper executable itself. Symlinks are resolved so that a symlinked
// launcher (e.g. from a bin directory on PATH) still finds its own tree.
func FromExecutable(version string) (Layout, error) {
	exe, err := os.Executable()
	if err != nil {
		return Layout{}, fmt.Errorf("locate wrapper executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return New(filepath.Dir(exe), version), nil
}

// BinariesRoot returns the go-binaries directory for this tree.
func (l Layout) BinariesRoot() string {
	return filepath.Join(l.Root, BinariesDir)
}

// PlatformDir returns the versioned directory for one platform, e.g.
// <root>/go-binaries/vespa-cli_8.250.1_linux_amd64.
func (l Layout) PlatformDir(id platform.Identifier) string {
	return filepath.Join(l.BinariesRoot(), id.DirName(l.Version))
}

// BinDir returns the bin directory inside a platform's tree.
func (l Layout) BinDir(id platform.Identifier) string {
	return filepath.Join(l.PlatformDir(id), "bin")
}

// BinaryPath returns the full path of the wrapped executable for one
// platform.
func (l Layout) BinaryPath(id platform.Identifier) string {
	return filepath.Join(l.BinDir(id), id.ExecutableName())
}
