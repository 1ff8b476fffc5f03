// Package launcher resolves the bundled Vespa CLI binary for the
// running host and hands the process over to it.
//
// The shim adds nothing of its own: arguments are forwarded verbatim,
// the environment is inherited, stdio is never observed or buffered
// (the wrapped CLI has machine-readable output modes that must pass
// through untouched), and the wrapper's exit code is the child's.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vespa-engine/vespacli/internal/layout"
	"github.com/vespa-engine/vespacli/internal/platform"
)

var (
	// ErrBinaryMissing means the executable the acquirer should have
	// placed for this platform is absent. The installation is defective;
	// the user must reinstall the package.
	ErrBinaryMissing = errors.New("bundled vespa binary missing")
	// ErrPermissionDenied means the bundled binary exists but cannot be
	// executed.
	ErrPermissionDenied = errors.New("bundled vespa binary not executable")
)

// Execer abstracts exec-style control transfer so tests can fake it
// without spawning subprocesses. On platforms with a real exec syscall
// the call never returns on success; elsewhere it returns the child's
// exit code.
type Execer interface {
	Exec(path string, argv []string, env []string) (int, error)
}

// Launcher resolves and launches the bundled binary for one pinned
// version.
type Launcher struct {
	version string
	execer  Execer
	detect  func() (platform.Identifier, error)
	lay     func(version string) (layout.Layout, error)
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithExecer replaces the process-replacement implementation.
func WithExecer(e Execer) Option {
	return func(l *Launcher) { l.execer = e }
}

// WithLayout pins the package tree instead of deriving it from the
// running executable's location.
func WithLayout(lay layout.Layout) Option {
	return func(l *Launcher) {
		l.lay = func(string) (layout.Layout, error) { return lay, nil }
	}
}

// WithPlatform pins the host platform instead of detecting it.
func WithPlatform(id platform.Identifier) Option {
	return func(l *Launcher) {
		l.detect = func() (platform.Identifier, error) { return id, nil }
	}
}

// New creates a Launcher for the pinned version.
func New(version string, opts ...Option) *Launcher {
	l := &Launcher{
		version: version,
		execer:  NewExecer(),
		detect:  platform.Detect,
		lay:     layout.FromExecutable,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run resolves the bundled binary and transfers control to it with the
// given argument vector and environment. On platforms with a real exec
// syscall it does not return on success; elsewhere it returns the
// child's exit code. Arguments are never rewritten and no flags are
// injected.
func (l *Launcher) Run(args []string, env []string) (int, error) {
	id, err := l.detect()
	if err != nil {
		return -1, fmt.Errorf("%w (host: %s)", err, platform.HostDescription(context.Background()))
	}

	lay, err := l.lay(l.version)
	if err != nil {
		return -1, err
	}

	binPath := lay.BinaryPath(id)
	if err := checkExecutable(binPath, id); err != nil {
		return -1, err
	}

	argv := append([]string{binPath}, args...)
	return l.execer.Exec(binPath, argv, env)
}

// checkExecutable verifies the resolved binary exists and can be
// executed, so failures surface as the installation defects they are
// rather than as an opaque exec error.
func checkExecutable(path string, id platform.Identifier) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s (reinstall the package, or platform %s is unsupported)", ErrBinaryMissing, path, id)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrBinaryMissing, path)
	}

	// The executable bit only means something off Windows.
	if !id.IsWindows() && info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	}

	return nil
}
