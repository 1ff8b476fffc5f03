package platform

import (
	"fmt"
	"strings"
)

// archAliases maps the machine strings different hosts report to the
// architecture names used in upstream artifact naming. Go's GOARCH values
// map to themselves; the uname(1)-style aliases cover values seen from
// packaging tooling and container images.
var archAliases = map[string]string{
	"amd64":   "amd64",
	"x86_64":  "amd64",
	"arm64":   "arm64",
	"aarch64": "arm64",
	"386":     "386",
	"i386":    "386",
	"i686":    "386",
	"x86":     "386",
}

// normalizeOS lowercases and trims an OS name. Hosts variously report
// "Darwin", "Linux", "Windows"; artifact naming is all lowercase.
func normalizeOS(os string) string {
	return strings.ToLower(strings.TrimSpace(os))
}

// normalizeArch maps a host-reported machine string to a canonical
// architecture name, or fails for machines outside the alias table.
func normalizeArch(arch string) (string, error) {
	canonical, ok := archAliases[strings.ToLower(strings.TrimSpace(arch))]
	if !ok {
		return "", fmt.Errorf("%w: unrecognized architecture %q", ErrUnsupported, arch)
	}
	return canonical, nil
}

// Resolve maps host-reported OS and machine strings to a supported
// Identifier. It fails with ErrUnsupported when either string is
// unrecognized or the normalized pair is outside the enumerated set
// (e.g. windows/arm64, which has no published artifact).
func Resolve(os, arch string) (Identifier, error) {
	normArch, err := normalizeArch(arch)
	if err != nil {
		return Identifier{}, err
	}

	id := Identifier{OS: normalizeOS(os), Arch: normArch}
	if !id.IsSupported() {
		return Identifier{}, fmt.Errorf("%w: %s", ErrUnsupported, id)
	}
	return id, nil
}
