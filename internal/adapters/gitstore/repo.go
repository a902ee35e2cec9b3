// Package gitstore implements the versioned blueprint store on a
// content-addressable object repository: blobs, trees and commits addressed
// by sha256, with one branch reference per blueprint name.
package gitstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Repository is the on-disk object store at a fixed location:
// objects/<aa>/<rest> for content-addressed objects and refs/heads/<name>
// for branch tips. It is created lazily on the first commit.
type Repository struct {
	root string
}

// NewRepository binds a repository to its root directory without touching
// the filesystem.
func NewRepository(root string) *Repository {
	return &Repository{root: root}
}

// Exists reports whether the repository has been initialized.
func (r *Repository) Exists() bool {
	info, err := os.Stat(filepath.Join(r.root, "refs", "heads"))
	return err == nil && info.IsDir()
}

// ensure creates the repository layout if missing.
func (r *Repository) ensure() error {
	for _, dir := range []string{
		filepath.Join(r.root, "objects"),
		filepath.Join(r.root, "refs", "heads"),
	} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "dir", dir)
		}
	}
	return nil
}

func (r *Repository) refPath(name string) string {
	return filepath.Join(r.root, "refs", "heads", name)
}

// readRef returns the commit id a branch points at, or "" when the branch
// does not exist.
func (r *Repository) readRef(name string) (string, error) {
	data, err := os.ReadFile(r.refPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "ref", name)
	}
	return strings.TrimSpace(string(data)), nil
}

// updateRef atomically points a branch at a commit. Atomicity comes from
// the rename; concurrent writers race but never corrupt the ref.
func (r *Repository) updateRef(name, commitID string) error {
	if err := writeFileAtomic(r.refPath(name), []byte(commitID+"\n")); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "ref", name)
	}
	return nil
}

// deleteRef removes a branch. Reports fs.ErrNotExist unchanged so callers
// can map it to their not-found condition.
func (r *Repository) deleteRef(name string) error {
	return os.Remove(r.refPath(name))
}

// listRefs returns all branch names in sorted order.
func (r *Repository) listRefs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, "refs", "heads"))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
