//go:build windows

package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
)

// spawnExecer approximates process replacement on Windows, which has no
// exec syscall: it spawns the child with inherited stdio and environment
// and reports the child's exit code for the wrapper to exit with.
type spawnExecer struct{}

// NewExecer returns the process-replacement implementation for this
// platform.
func NewExecer() Execer {
	return spawnExecer{}
}

func (spawnExecer) Exec(path string, argv []string, env []string) (int, error) {
	cmd := exec.Command(path, argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// The console delivers Ctrl-C to the whole process group; the
	// wrapper must not die before the child or act on the event itself.
	signal.Ignore(os.Interrupt)
	defer signal.Reset(os.Interrupt)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("launch %s: %w", path, err)
	}
	return 0, nil
}
