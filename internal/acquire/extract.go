package acquire

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Extractor pulls the single wrapped binary out of an upstream archive.
// Upstream ships tar.gz everywhere except Windows, which ships zip; both
// contain a vespa-cli_<version>_<os>_<arch>/bin/<executable> entry.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBinary finds the entry named binaryName in the archive at
// archivePath and writes it to destPath, replacing any existing file
// atomically. The archive format is chosen by file extension.
func (e *Extractor) ExtractBinary(archivePath, destPath, binaryName string) error {
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"):
		return e.extractFromTarGz(archivePath, destPath, binaryName)
	case strings.HasSuffix(archivePath, ".zip"):
		return e.extractFromZip(archivePath, destPath, binaryName)
	default:
		return fmt.Errorf("%w: unrecognized archive format: %s", ErrExtraction, filepath.Base(archivePath))
	}
}

func (e *Extractor) extractFromTarGz(archivePath, destPath, binaryName string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("%w: read gzip header: %v", ErrExtraction, err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return fmt.Errorf("%w: %s not found in %s", ErrExtraction, binaryName, filepath.Base(archivePath))
		}
		if err != nil {
			return fmt.Errorf("%w: read tar header: %v", ErrExtraction, err)
		}

		if header.Typeflag == tar.TypeReg && filepath.Base(header.Name) == binaryName {
			return writeBinary(tarReader, destPath)
		}
	}
}

func (e *Extractor) extractFromZip(archivePath, destPath, binaryName string) error {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open zip: %v", ErrExtraction, err)
	}
	defer zipReader.Close()

	for _, entry := range zipReader.File {
		if entry.FileInfo().IsDir() || filepath.Base(entry.Name) != binaryName {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("%w: open zip entry %s: %v", ErrExtraction, entry.Name, err)
		}
		err = writeBinary(rc, destPath)
		rc.Close()
		return err
	}

	return fmt.Errorf("%w: %s not found in %s", ErrExtraction, binaryName, filepath.Base(archivePath))
}

// writeBinary writes the binary contents to destPath with the executable
// bit set, via a temp file and atomic rename so re-acquiring the same
// platform overwrites cleanly and a failed write leaves nothing partial.
func writeBinary(r io.Reader, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create bin dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	outFile, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("create binary file: %w", err)
	}

	if _, err := io.Copy(outFile, r); err != nil {
		outFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write binary: %v", ErrExtraction, err)
	}

	if err := outFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close binary file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename binary file: %w", err)
	}

	return nil
}

// SetExecutable sets the executable permission bits on a file. Archives
// usually carry the mode already; this makes it explicit. On platforms
// without a permission concept for the target file this is a no-op at
// the OS level.
func SetExecutable(path string) error {
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
