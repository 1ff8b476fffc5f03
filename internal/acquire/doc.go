// Package acquire downloads, verifies, and installs the prebuilt Vespa
// CLI binaries this package redistributes.
//
// # Flow
//
// For each (version, platform) pair the acquirer:
//   - constructs the upstream artifact URL from the deterministic
//     naming rule owned by platform.Identifier
//   - downloads the archive to a temporary location (atomic: the
//     destination appears only after a complete write)
//   - verifies the archive against the upstream sha256sums file
//   - extracts the single executable into the package tree and marks
//     it executable
//
// # Failure model
//
// There are no retries anywhere in this package: a transport error or
// unexpected status is ErrNetwork, a missing artifact is ErrNotFound,
// and a corrupt or unexpected archive is ErrExtraction. All failures
// are fatal to the current acquisition and leave no partial file at the
// install path. Retry policy belongs to the release automation driving
// the acquirer, not here.
//
// # Usage
//
//	a := acquire.New(packageRoot, acquire.WithLogger(logger))
//	paths, err := a.AcquireAll(ctx, "8.250.1")
//
// Acquisition is idempotent: re-running with the same version and
// platform overwrites the installed binary in place.
package acquire
