package acquire

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Checksums holds the expected SHA256 digests for one release, parsed
// from the upstream sha256sums file. Lines are "<hex digest>  <filename>".
type Checksums map[string]string

// ParseChecksums parses the contents of an upstream sha256sums file.
func ParseChecksums(r io.Reader) (Checksums, error) {
	sums := make(Checksums)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		sums[filepath.Base(fields[1])] = fields[0]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan checksum file: %w", err)
	}
	if len(sums) == 0 {
		return nil, fmt.Errorf("checksum file contains no entries")
	}
	return sums, nil
}

// Verify checks the file at path against the expected digest for its
// base name. A missing entry or a digest mismatch is an extraction
// failure: the archive cannot be trusted.
func (c Checksums) Verify(path string) error {
	name := filepath.Base(path)
	expected, ok := c[name]
	if !ok {
		return fmt.Errorf("%w: no checksum published for %s", ErrExtraction, name)
	}

	actual, err := fileSHA256(path)
	if err != nil {
		return fmt.Errorf("checksum %s: %w", name, err)
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: checksum mismatch for %s: got %s, want %s", ErrExtraction, name, actual, expected)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
