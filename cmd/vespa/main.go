// Command vespa is the launcher shim for the bundled Vespa CLI binary.
//
// It resolves the platform-appropriate binary installed next to this
// executable and replaces the current process with it, forwarding every
// argument and the caller's environment untouched. It exposes no flags
// of its own and its exit code is the wrapped binary's exit code.
package main

import (
	"fmt"
	"os"

	"github.com/vespa-engine/vespacli/internal/launcher"
	"github.com/vespa-engine/vespacli/internal/version"
)

func main() {
	code, err := launcher.New(version.Current()).Run(os.Args[1:], os.Environ())
	if err != nil {
		fmt.Fprintf(os.Stderr, "vespa: %v\n", err)
		os.Exit(1)
	}
	// Only reached on platforms without an exec syscall, where the
	// child was spawned and waited for instead.
	os.Exit(code)
}
