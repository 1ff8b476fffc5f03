package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/vespa-engine/vespacli/internal/layout"
	"github.com/vespa-engine/vespacli/internal/platform"
)

// DefaultBaseURL is the upstream host serving release artifacts.
const DefaultBaseURL = "https://github.com/vespa-engine/vespa/releases/download"

// Acquirer downloads, verifies, and installs prebuilt Vespa CLI
// binaries into a package tree. It runs at package-build time only.
type Acquirer struct {
	root       string
	baseURL    string
	downloader *Downloader
	extractor  *Extractor
	logger     hclog.Logger

	mu   sync.Mutex
	sums map[string]Checksums // per-version cache of upstream sha256sums
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithBaseURL overrides the upstream artifact host. Used by tests.
func WithBaseURL(url string) Option {
	return func(a *Acquirer) { a.baseURL = url }
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(a *Acquirer) { a.logger = logger }
}

// New creates an Acquirer installing into the package tree rooted at
// root.
func New(root string, opts ...Option) *Acquirer {
	a := &Acquirer{
		root:       root,
		baseURL:    DefaultBaseURL,
		downloader: NewDownloader(),
		extractor:  NewExtractor(),
		logger:     hclog.NewNullLogger(),
		sums:       make(map[string]Checksums),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire fetches the artifact for one version and platform, verifies
// it against the upstream checksum file, and installs the executable at
// its deterministic path inside the package tree. It returns the
// installed path.
//
// Re-acquiring the same (version, platform) overwrites the existing
// binary; a failure at any step leaves no partial file at the target
// path.
func (a *Acquirer) Acquire(ctx context.Context, ver string, id platform.Identifier) (string, error) {
	if !id.IsSupported() {
		return "", fmt.Errorf("%w: %s", platform.ErrUnsupported, id)
	}

	sums, err := a.checksums(ctx, ver)
	if err != nil {
		return "", fmt.Errorf("acquire %s %s: %w", ver, id, err)
	}

	workDir, err := os.MkdirTemp("", "vespacli-acquire-")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	archiveName := id.ArchiveName(ver)
	archivePath := filepath.Join(workDir, archiveName)
	archiveURL := fmt.Sprintf("%s/v%s/%s", a.baseURL, ver, archiveName)

	a.logger.Info("downloading artifact", "platform", id.String(), "version", ver, "url", archiveURL)
	if err := a.downloader.FetchToFile(ctx, archiveURL, archivePath); err != nil {
		return "", fmt.Errorf("acquire %s %s: %w", ver, id, err)
	}

	if err := sums.Verify(archivePath); err != nil {
		return "", fmt.Errorf("acquire %s %s: %w", ver, id, err)
	}

	destPath := layout.New(a.root, ver).BinaryPath(id)
	if err := a.extractor.ExtractBinary(archivePath, destPath, id.ExecutableName()); err != nil {
		return "", fmt.Errorf("acquire %s %s: %w", ver, id, err)
	}

	if err := SetExecutable(destPath); err != nil {
		return "", fmt.Errorf("acquire %s %s: %w", ver, id, err)
	}

	a.logger.Info("installed binary", "platform", id.String(), "version", ver, "path", destPath)
	return destPath, nil
}

// AcquireAll fetches the artifacts for every supported platform at one
// version. Platform directories are disjoint, so downloads run
// concurrently; an install lock on the tree keeps two publish runs from
// interleaving. The first failure cancels the remaining downloads.
func (a *Acquirer) AcquireAll(ctx context.Context, ver string) ([]string, error) {
	lock, err := acquireLock(layout.New(a.root, ver).BinariesRoot())
	if err != nil {
		return nil, err
	}
	defer lock.release()

	ids := platform.Supported()
	paths := make([]string, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			path, err := a.Acquire(ctx, ver, id)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// checksums returns the parsed upstream sha256sums for a version,
// fetching it on first use. AcquireAll calls Acquire concurrently, so
// the cache is guarded; holding the lock across the fetch means the
// file is downloaded once per version no matter how many platforms
// race for it.
func (a *Acquirer) checksums(ctx context.Context, ver string) (Checksums, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if sums, ok := a.sums[ver]; ok {
		return sums, nil
	}

	url := fmt.Sprintf("%s/v%s/vespa-cli_%s_sha256sums.txt", a.baseURL, ver, ver)
	a.logger.Debug("downloading checksum file", "url", url)

	body, err := a.downloader.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch checksums: %w", err)
	}
	defer body.Close()

	sums, err := ParseChecksums(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	a.sums[ver] = sums
	return sums, nil
}
