package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/vespa-engine/vespacli/internal/layout"
	"github.com/vespa-engine/vespacli/internal/platform"
)

const testVersion = "8.250.1"

// upstream is a fake release host serving archives and the sha256sums
// file for one version.
type upstream struct {
	server   *httptest.Server
	requests atomic.Int64
}

// newUpstream builds one artifact per supported platform (binary
// contents distinct per platform) plus a matching checksum file, and
// serves them under /v<version>/.
func newUpstream(t *testing.T, version string) *upstream {
	t.Helper()

	artifacts := make(map[string][]byte)
	for _, id := range platform.Supported() {
		binary := []byte("fake vespa binary for " + id.String())
		entry := fmt.Sprintf("%s/bin/%s", id.DirName(version), id.ExecutableName())

		if id.IsWindows() {
			artifacts[id.ArchiveName(version)] = makeZip(t, map[string][]byte{entry: binary})
		} else {
			artifacts[id.ArchiveName(version)] = makeTarGz(t, map[string][]byte{entry: binary})
		}
	}
	artifacts[fmt.Sprintf("vespa-cli_%s_sha256sums.txt", version)] = sumsFile(artifacts)

	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.requests.Add(1)
		content, ok := artifacts[filepath.Base(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(content)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func TestAcquire(t *testing.T) {
	tests := []struct {
		name string
		id   platform.Identifier
	}{
		{name: "linux_amd64_targz", id: platform.Identifier{OS: "linux", Arch: "amd64"}},
		{name: "darwin_arm64_targz", id: platform.Identifier{OS: "darwin", Arch: "arm64"}},
		{name: "windows_amd64_zip", id: platform.Identifier{OS: "windows", Arch: "amd64"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUpstream(t, testVersion)
			root := t.TempDir()

			a := New(root, WithBaseURL(u.server.URL))
			path, err := a.Acquire(context.Background(), testVersion, tt.id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := layout.New(root, testVersion).BinaryPath(tt.id)
			if path != want {
				t.Errorf("installed at %q, want %q", path, want)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read installed binary: %v", err)
			}
			if string(content) != "fake vespa binary for "+tt.id.String() {
				t.Errorf("unexpected binary content %q", content)
			}

			if runtime.GOOS != "windows" {
				info, _ := os.Stat(path)
				if info.Mode().Perm()&0111 == 0 {
					t.Error("installed binary is not executable")
				}
			}
		})
	}
}

func TestAcquireIdempotent(t *testing.T) {
	u := newUpstream(t, testVersion)
	root := t.TempDir()
	id := platform.Identifier{OS: "linux", Arch: "amd64"}

	a := New(root, WithBaseURL(u.server.URL))

	first, err := a.Acquire(context.Background(), testVersion, id)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	firstContent, _ := os.ReadFile(first)

	second, err := a.Acquire(context.Background(), testVersion, id)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if second != first {
		t.Errorf("second acquire installed at %q, want %q", second, first)
	}

	secondContent, _ := os.ReadFile(second)
	if string(firstContent) != string(secondContent) {
		t.Error("re-acquire changed the installed binary")
	}

	entries, err := os.ReadDir(filepath.Dir(first))
	if err != nil {
		t.Fatalf("read bin dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file in bin dir, got %d", len(entries))
	}
}

func TestAcquireUnsupportedPlatform(t *testing.T) {
	u := newUpstream(t, testVersion)
	root := t.TempDir()

	a := New(root, WithBaseURL(u.server.URL))
	_, err := a.Acquire(context.Background(), testVersion, platform.Identifier{OS: "freebsd", Arch: "amd64"})

	if !errors.Is(err, platform.ErrUnsupported) {
		t.Fatalf("got error %v, want platform.ErrUnsupported", err)
	}
	if n := u.requests.Load(); n != 0 {
		t.Errorf("unsupported platform caused %d network requests", n)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("unsupported platform left %d filesystem entries", len(entries))
	}
}

func TestAcquireVersionNotFound(t *testing.T) {
	u := newUpstream(t, testVersion)
	root := t.TempDir()

	a := New(root, WithBaseURL(u.server.URL))
	_, err := a.Acquire(context.Background(), "9.999.0", platform.Identifier{OS: "linux", Arch: "amd64"})

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got error %v, want ErrNotFound", err)
	}
}

func TestAcquireNetworkFailure(t *testing.T) {
	u := newUpstream(t, testVersion)
	u.server.Close() // Upstream unreachable.
	root := t.TempDir()
	id := platform.Identifier{OS: "linux", Arch: "amd64"}

	a := New(root, WithBaseURL(u.server.URL))
	_, err := a.Acquire(context.Background(), testVersion, id)

	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("got error %v, want ErrNetwork", err)
	}
	if _, statErr := os.Stat(layout.New(root, testVersion).BinaryPath(id)); !os.IsNotExist(statErr) {
		t.Error("failed acquire left a file at the install path")
	}
}

func TestAcquireChecksumMismatch(t *testing.T) {
	id := platform.Identifier{OS: "linux", Arch: "amd64"}
	entry := fmt.Sprintf("%s/bin/vespa", id.DirName(testVersion))

	archive := makeTarGz(t, map[string][]byte{entry: []byte("real binary")})
	sums := sumsFile(map[string][]byte{id.ArchiveName(testVersion): []byte("different bytes")})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Base(r.URL.Path) {
		case id.ArchiveName(testVersion):
			w.Write(archive)
		case fmt.Sprintf("vespa-cli_%s_sha256sums.txt", testVersion):
			w.Write(sums)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	root := t.TempDir()
	a := New(root, WithBaseURL(server.URL))
	_, err := a.Acquire(context.Background(), testVersion, id)

	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("got error %v, want ErrExtraction", err)
	}
	if _, statErr := os.Stat(layout.New(root, testVersion).BinaryPath(id)); !os.IsNotExist(statErr) {
		t.Error("checksum mismatch still installed a binary")
	}
}

func TestAcquireAll(t *testing.T) {
	u := newUpstream(t, testVersion)
	root := t.TempDir()

	a := New(root, WithBaseURL(u.server.URL))
	paths, err := a.AcquireAll(context.Background(), testVersion)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(paths) != len(platform.Supported()) {
		t.Fatalf("expected %d installed binaries, got %d", len(platform.Supported()), len(paths))
	}

	lay := layout.New(root, testVersion)
	for i, id := range platform.Supported() {
		if paths[i] != lay.BinaryPath(id) {
			t.Errorf("platform %s installed at %q, want %q", id, paths[i], lay.BinaryPath(id))
		}
		if _, err := os.Stat(paths[i]); err != nil {
			t.Errorf("missing installed binary for %s: %v", id, err)
		}
	}

	// The install lock must be gone afterwards.
	if _, err := os.Stat(filepath.Join(lay.BinariesRoot(), lockFileName)); !os.IsNotExist(err) {
		t.Error("install lock left behind after AcquireAll")
	}
}

func TestAcquireAllWhileLocked(t *testing.T) {
	u := newUpstream(t, testVersion)
	root := t.TempDir()

	lock, err := acquireLock(layout.New(root, testVersion).BinariesRoot())
	if err != nil {
		t.Fatalf("take lock: %v", err)
	}
	defer lock.release()

	a := New(root, WithBaseURL(u.server.URL))
	if _, err := a.AcquireAll(context.Background(), testVersion); !errors.Is(err, ErrLockHeld) {
		t.Fatalf("got error %v, want ErrLockHeld", err)
	}
}
