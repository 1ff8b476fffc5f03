//go:build !windows

package launcher

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// execReplacer replaces the current process image via the exec syscall.
// The child inherits stdio, environment, signal disposition, and the
// controlling terminal, so interactive use behaves exactly as if the
// wrapped binary had been invoked directly.
type execReplacer struct{}

// NewExecer returns the process-replacement implementation for this
// platform.
func NewExecer() Execer {
	return execReplacer{}
}

// Exec never returns on success: the wrapped binary takes over the
// process, and its exit code is the process's exit code with no
// propagation needed.
func (execReplacer) Exec(path string, argv []string, env []string) (int, error) {
	err := unix.Exec(path, argv, env)
	// Exec only returns on failure.
	if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) {
		return -1, fmt.Errorf("%w: exec %s: %v", ErrPermissionDenied, path, err)
	}
	return -1, fmt.Errorf("exec %s: %w", path, err)
}
