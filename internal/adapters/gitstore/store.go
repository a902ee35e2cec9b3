package gitstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/stencil/internal/core/domain"
	"go.trai.ch/stencil/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// ignoreName is the filename ignore rules are stored under in a commit.
	ignoreName = ".stencilignore"
	// legacyIgnoreName is accepted on read only; older repositories stored
	// the rules under the generic name.
	legacyIgnoreName = ".gitignore"
)

var _ ports.BlueprintStore = (*Store)(nil)

// Store implements ports.BlueprintStore on a Repository.
type Store struct {
	repo       *Repository
	ignorePath string
	logger     ports.Logger
}

// New creates a Store over the repository at root. ignorePath names the
// local ignore-rules file included in every commit when present; empty
// disables it.
func New(root, ignorePath string, logger ports.Logger) *Store {
	return &Store{
		repo:       NewRepository(root),
		ignorePath: ignorePath,
		logger:     logger,
	}
}

// Commit writes the blueprint's canonical document, its referenced source
// tarballs and the ignore file as a fresh tree, then advances the branch
// named after the blueprint. Building the tree from scratch every time is
// what clears out tarballs the previous commit referenced but this one
// does not.
func (s *Store) Commit(bp *domain.Blueprint, message string) (string, error) {
	name := bp.Name()
	if err := domain.ValidateName(name); err != nil {
		return "", err
	}
	if name == "" {
		return "", zerr.Wrap(domain.ErrInvalidName, "cannot commit an anonymous blueprint")
	}
	if err := s.repo.ensure(); err != nil {
		return "", err
	}

	parent, err := s.repo.readRef(name)
	if err != nil {
		return "", err
	}

	doc, err := bp.MarshalCanonical()
	if err != nil {
		return "", err
	}
	docID, err := s.repo.writeBlob(doc)
	if err != nil {
		return "", err
	}
	entries := []treeEntry{{Name: domain.DocumentName, Type: string(objectBlob), ID: docID}}

	tarballs, err := s.tarballEntries(bp)
	if err != nil {
		return "", err
	}
	entries = append(entries, tarballs...)

	if entry, ok, err := s.ignoreEntry(); err != nil {
		return "", err
	} else if ok {
		entries = append(entries, entry)
	}

	treeID, err := s.repo.writeTree(entries)
	if err != nil {
		return "", err
	}
	commitID, err := s.repo.writeCommit(commitObject{
		Tree:      treeID,
		Parent:    parent,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	if err := s.repo.updateRef(name, commitID); err != nil {
		return "", err
	}

	bp.Bind(commitID, &treeSource{repo: s.repo, treeID: treeID})
	s.logger.Info(fmt.Sprintf("committed %s (%.12s)", name, commitID))
	return commitID, nil
}

// tarballEntries stores every referenced source tarball as a blob, read
// from its absolute path. Multiple unpack directories may reference the
// same tarball; it is stored once.
func (s *Store) tarballEntries(bp *domain.Blueprint) ([]treeEntry, error) {
	seen := make(map[string]bool)
	var entries []treeEntry
	for _, filename := range bp.Sources {
		if seen[filename] {
			continue
		}
		seen[filename] = true

		path, err := filepath.Abs(filename)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceMissing.Error()), "tarball", filename)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceMissing.Error()), "tarball", path)
		}
		id, err := s.repo.writeBlob(content)
		if err != nil {
			return nil, err
		}
		entries = append(entries, treeEntry{Name: filename, Type: string(objectBlob), ID: id})
	}
	return entries, nil
}

func (s *Store) ignoreEntry() (treeEntry, bool, error) {
	if s.ignorePath == "" {
		return treeEntry{}, false, nil
	}
	content, err := os.ReadFile(s.ignorePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return treeEntry{}, false, nil
		}
		return treeEntry{}, false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.ignorePath)
	}
	id, err := s.repo.writeBlob(content)
	if err != nil {
		return treeEntry{}, false, err
	}
	return treeEntry{Name: ignoreName, Type: string(objectBlob), ID: id}, true, nil
}

// Load resolves the branch tip for a name, or an explicit commit id, and
// deserializes the blueprint document from its tree.
func (s *Store) Load(name, commitID string) (*domain.Blueprint, error) {
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	if !s.repo.Exists() {
		return nil, zerr.With(domain.ErrNotFound, "name", name)
	}
	if commitID == "" {
		tip, err := s.repo.readRef(name)
		if err != nil {
			return nil, err
		}
		if tip == "" {
			return nil, zerr.With(domain.ErrNotFound, "name", name)
		}
		commitID = tip
	}

	commit, err := s.repo.readCommit(commitID)
	if err != nil {
		if errors.Is(err, domain.ErrObjectMissing) {
			return nil, zerr.With(domain.ErrNotFound, "commit", commitID)
		}
		return nil, err
	}
	entries, err := s.repo.readTree(commit.Tree)
	if err != nil {
		return nil, err
	}
	docID := findEntry(entries, domain.DocumentName)
	if docID == "" {
		return nil, zerr.With(domain.ErrDocumentMissing, "commit", commitID)
	}
	doc, err := s.repo.readObject(docID)
	if err != nil {
		return nil, err
	}

	bp, err := domain.UnmarshalBlueprint(doc)
	if err != nil {
		return nil, err
	}
	if err := bp.Rename(name); err != nil {
		return nil, err
	}
	bp.Bind(commitID, &treeSource{repo: s.repo, treeID: commit.Tree})
	return bp, nil
}

// Destroy deletes the branch for a name. The commit and its objects remain;
// other branches may share them.
func (s *Store) Destroy(name string) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	if !s.repo.Exists() {
		return zerr.With(domain.ErrNotFound, "name", name)
	}
	if err := s.repo.deleteRef(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrNotFound, "name", name)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "name", name)
	}
	s.logger.Info(fmt.Sprintf("destroyed %s", name))
	return nil
}

// List returns every blueprint name. A repository that was never committed
// to yields an empty list, not an error.
func (s *Store) List() ([]string, error) {
	if !s.repo.Exists() {
		return nil, nil
	}
	return s.repo.listRefs()
}

// IgnoreContent reads the ignore rules stored with the blueprint's commit,
// preferring the current filename and accepting the legacy one on read.
func (s *Store) IgnoreContent(bp *domain.Blueprint) ([]byte, error) {
	if bp.CommitID() == "" {
		return nil, nil
	}
	commit, err := s.repo.readCommit(bp.CommitID())
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.readTree(commit.Tree)
	if err != nil {
		return nil, err
	}
	id := findEntry(entries, ignoreName)
	if id == "" {
		id = findEntry(entries, legacyIgnoreName)
	}
	if id == "" {
		return nil, nil
	}
	return s.repo.readObject(id)
}

// treeSource resolves stored file bytes inside one commit tree. It backs
// the lazy content funcs handed to walk consumers.
type treeSource struct {
	repo   *Repository
	treeID string
}

func (t *treeSource) Content(filename string) ([]byte, error) {
	entries, err := t.repo.readTree(t.treeID)
	if err != nil {
		return nil, err
	}
	id := findEntry(entries, filename)
	if id == "" {
		return nil, zerr.With(domain.ErrObjectMissing, "file", filename)
	}
	return t.repo.readObject(id)
}
