package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Detect resolves the platform identifier for the currently running host
// from runtime.GOOS and runtime.GOARCH. It fails with ErrUnsupported when
// the host is outside the enumerated set.
func Detect() (Identifier, error) {
	return Resolve(runtime.GOOS, runtime.GOARCH)
}

// HostDescription returns a human-readable description of the running
// host for diagnostics, e.g. "linux/riscv64 (ubuntu 24.04)". It is used
// to enrich unsupported-platform errors; detection failures degrade to
// the bare os/arch pair rather than erroring.
func HostDescription(ctx context.Context) string {
	desc := runtime.GOOS + "/" + runtime.GOARCH

	plat, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil || plat == "" {
		return desc
	}
	if version != "" {
		return fmt.Sprintf("%s (%s %s)", desc, plat, version)
	}
	return fmt.Sprintf("%s (%s)", desc, plat)
}
