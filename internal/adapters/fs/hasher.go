// Package fs provides filesystem helpers for collectors: content digests
// and fingerprint-embedding filenames for captured source tarballs.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/stencil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash content fingerprints.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// FileDigest returns the hex-encoded xxhash64 of a file's content.
func (h *Hasher) FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// FingerprintName returns the file's basename with its content digest
// embedded before the extension. Source tarballs are recorded under such
// names so that an unchanged tarball never produces a new commit.
func (h *Hasher) FingerprintName(path string) (string, error) {
	digest, err := h.FileDigest(path)
	if err != nil {
		return "", err
	}
	base := filepath.Base(path)
	ext := extensions(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + "-" + digest + ext, nil
}

// archiveExts are the suffixes recognized as part of an archive extension
// chain. Anything else, version digits in particular, belongs to the stem.
var archiveExts = map[string]bool{
	".tar":  true,
	".gz":   true,
	".bz2":  true,
	".xz":   true,
	".zst":  true,
	".tgz":  true,
	".tbz2": true,
	".txz":  true,
	".zip":  true,
}

// extensions returns the archive extension chain of a filename, so that
// "app.tar.gz" yields ".tar.gz" and "redis-2.6.0.tar.gz" keeps its
// versioned stem intact.
func extensions(base string) string {
	var ext string
	for {
		e := filepath.Ext(base)
		if e == "" || !archiveExts[strings.ToLower(e)] {
			return ext
		}
		ext = e + ext
		base = strings.TrimSuffix(base, e)
	}
}
