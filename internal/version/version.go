// Package version holds the Vespa CLI release version this package
// tracks. The version is pinned in version.txt, embedded at compile
// time, and bumped by release automation through vespactl set-version;
// nothing at run time mutates it.
package version

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
)

//go:embed version.txt
var pinned string

// semverPattern matches the dotted numeric versions the upstream release
// feed tags, e.g. "8.250.1". Pre-release or build suffixes never appear
// on Vespa CLI release tags.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Current returns the pinned Vespa CLI version.
func Current() string {
	return strings.TrimSpace(pinned)
}

// IsValid reports whether v is a well-formed release version.
func IsValid(v string) bool {
	return semverPattern.MatchString(v)
}

// Write rewrites the pinned version file at path. Used by vespactl
// set-version when automation bumps the package to a new upstream
// release; the change takes effect on the next build.
func Write(path, v string) error {
	if !IsValid(v) {
		return fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH", v)
	}
	if err := os.WriteFile(path, []byte(v+"\n"), 0644); err != nil {
		return fmt.Errorf("write version file: %w", err)
	}
	return nil
}
