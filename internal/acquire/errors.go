package acquire

import "errors"

// Acquisition failures are matched with errors.Is against these
// sentinels. All are fatal to the current acquisition; the core never
// retries (retry policy, if any, belongs to the release automation
// driving it).
var (
	// ErrNotFound means the requested version has no published artifact
	// for the platform.
	ErrNotFound = errors.New("artifact not found")
	// ErrNetwork covers transport errors and unexpected HTTP statuses
	// from the upstream host.
	ErrNetwork = errors.New("network failure")
	// ErrExtraction covers corrupt archives, missing binary entries,
	// and checksum mismatches.
	ErrExtraction = errors.New("extraction failure")
)
