package gitstore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.trai.ch/stencil/internal/core/domain"
	"go.trai.ch/zerr"
)

// objectType distinguishes the three kinds of content-addressed objects.
type objectType string

const (
	objectBlob   objectType = "blob"
	objectTree   objectType = "tree"
	objectCommit objectType = "commit"
)

// treeEntry names one file inside a tree object. Entries are sorted by name
// before hashing so that the same contents always produce the same tree id.
type treeEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	ID   string `json:"id"`
}

// commitObject snapshots a tree at a point in time. The parent chain forms
// the branch history.
type commitObject struct {
	Tree      string `json:"tree"`
	Parent    string `json:"parent,omitempty"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

// hashObject computes the content address of a typed payload. The type and
// length prefix keeps a blob and a tree with identical bytes from colliding.
func hashObject(typ objectType, payload []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s %d\x00", typ, len(payload))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

func (r *Repository) objectPath(id string) string {
	return filepath.Join(r.root, "objects", id[:2], id[2:])
}

// writeObject stores a typed payload and returns its id. Existing objects
// are left untouched; identical content always has an identical address.
func (r *Repository) writeObject(typ objectType, payload []byte) (string, error) {
	id := hashObject(typ, payload)
	path := r.objectPath(id)
	if _, err := os.Stat(path); err == nil {
		return id, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "object", id)
	}
	if err := writeFileAtomic(path, payload); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "object", id)
	}
	return id, nil
}

func (r *Repository) readObject(id string) ([]byte, error) {
	data, err := os.ReadFile(r.objectPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrObjectMissing, "object", id)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "object", id)
	}
	return data, nil
}

// writeBlob stores raw bytes.
func (r *Repository) writeBlob(content []byte) (string, error) {
	return r.writeObject(objectBlob, content)
}

// writeTree stores a tree object with entries sorted by name.
func (r *Repository) writeTree(entries []treeEntry) (string, error) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	payload, err := json.Marshal(entries)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return r.writeObject(objectTree, payload)
}

func (r *Repository) readTree(id string) ([]treeEntry, error) {
	payload, err := r.readObject(id)
	if err != nil {
		return nil, err
	}
	var entries []treeEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrObjectCorrupt.Error()), "object", id)
	}
	return entries, nil
}

// writeCommit stores a commit object pointing at a tree, with an optional
// parent commit.
func (r *Repository) writeCommit(c commitObject) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return r.writeObject(objectCommit, payload)
}

func (r *Repository) readCommit(id string) (commitObject, error) {
	var c commitObject
	payload, err := r.readObject(id)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(payload, &c); err != nil {
		return c, zerr.With(zerr.Wrap(err, domain.ErrObjectCorrupt.Error()), "object", id)
	}
	return c, nil
}

// findEntry returns the id of a named file inside a tree, or "".
func findEntry(entries []treeEntry, name string) string {
	for _, entry := range entries {
		if entry.Name == name {
			return entry.ID
		}
	}
	return ""
}
