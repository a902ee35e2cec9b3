package gitstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stencil/internal/core/domain"
)

func TestHashObject_TypePrefixSeparatesKinds(t *testing.T) {
	payload := []byte(`[]`)

	assert.NotEqual(t, hashObject(objectBlob, payload), hashObject(objectTree, payload))
	assert.Equal(t, hashObject(objectBlob, payload), hashObject(objectBlob, payload))
}

func TestWriteTree_EntryOrderDoesNotMatter(t *testing.T) {
	repo := NewRepository(t.TempDir())
	require.NoError(t, repo.ensure())

	a := treeEntry{Name: "a", Type: string(objectBlob), ID: "1111"}
	b := treeEntry{Name: "b", Type: string(objectBlob), ID: "2222"}

	first, err := repo.writeTree([]treeEntry{b, a})
	require.NoError(t, err)
	second, err := repo.writeTree([]treeEntry{a, b})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteObject_Idempotent(t *testing.T) {
	repo := NewRepository(t.TempDir())
	require.NoError(t, repo.ensure())

	first, err := repo.writeBlob([]byte("content"))
	require.NoError(t, err)
	second, err := repo.writeBlob([]byte("content"))
	require.NoError(t, err)
	require.Equal(t, first, second)

	data, err := repo.readObject(first)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestReadObject_Missing(t *testing.T) {
	repo := NewRepository(t.TempDir())
	require.NoError(t, repo.ensure())

	_, err := repo.readObject(hashObject(objectBlob, []byte("never written")))
	assert.ErrorIs(t, err, domain.ErrObjectMissing)
}

func TestRefs(t *testing.T) {
	repo := NewRepository(t.TempDir())
	require.NoError(t, repo.ensure())

	// Absent ref reads as empty, not as an error.
	tip, err := repo.readRef("web")
	require.NoError(t, err)
	assert.Empty(t, tip)

	require.NoError(t, repo.updateRef("web", "abc123"))
	tip, err = repo.readRef("web")
	require.NoError(t, err)
	assert.Equal(t, "abc123", tip)

	require.NoError(t, repo.updateRef("web", "def456"))
	tip, err = repo.readRef("web")
	require.NoError(t, err)
	assert.Equal(t, "def456", tip)

	names, err := repo.listRefs()
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, names)
}

func TestCommitChain(t *testing.T) {
	repo := NewRepository(t.TempDir())
	require.NoError(t, repo.ensure())

	treeID, err := repo.writeTree(nil)
	require.NoError(t, err)

	first, err := repo.writeCommit(commitObject{
		Tree:      treeID,
		Timestamp: time.Date(2013, 4, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})
	require.NoError(t, err)

	second, err := repo.writeCommit(commitObject{
		Tree:      treeID,
		Parent:    first,
		Message:   "update",
		Timestamp: time.Date(2013, 4, 2, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
	})
	require.NoError(t, err)

	c, err := repo.readCommit(second)
	require.NoError(t, err)
	assert.Equal(t, first, c.Parent)
	assert.Equal(t, "update", c.Message)

	root, err := repo.readCommit(first)
	require.NoError(t, err)
	assert.Empty(t, root.Parent)
}

func TestIgnoreContent_LegacyFilename(t *testing.T) {
	repo := NewRepository(t.TempDir())
	require.NoError(t, repo.ensure())

	// Older repositories stored the rules under .gitignore.
	docID, err := repo.writeBlob([]byte("{}\n"))
	require.NoError(t, err)
	rulesID, err := repo.writeBlob([]byte("*.log\n"))
	require.NoError(t, err)
	treeID, err := repo.writeTree([]treeEntry{
		{Name: domain.DocumentName, Type: string(objectBlob), ID: docID},
		{Name: legacyIgnoreName, Type: string(objectBlob), ID: rulesID},
	})
	require.NoError(t, err)
	commitID, err := repo.writeCommit(commitObject{Tree: treeID, Timestamp: "2013-04-01T12:00:00Z"})
	require.NoError(t, err)
	require.NoError(t, repo.updateRef("legacy", commitID))

	store := &Store{repo: repo, logger: nopLog{}}
	bp, err := store.Load("legacy", "")
	require.NoError(t, err)

	content, err := store.IgnoreContent(bp)
	require.NoError(t, err)
	assert.Equal(t, []byte("*.log\n"), content)
}

func TestLoad_MissingDocument(t *testing.T) {
	repo := NewRepository(t.TempDir())
	require.NoError(t, repo.ensure())

	treeID, err := repo.writeTree(nil)
	require.NoError(t, err)
	commitID, err := repo.writeCommit(commitObject{Tree: treeID, Timestamp: "2013-04-01T12:00:00Z"})
	require.NoError(t, err)
	require.NoError(t, repo.updateRef("hollow", commitID))

	store := &Store{repo: repo, logger: nopLog{}}
	_, err = store.Load("hollow", "")
	assert.ErrorIs(t, err, domain.ErrDocumentMissing)
}

type nopLog struct{}

func (nopLog) Info(string) {}
func (nopLog) Warn(string) {}
func (nopLog) Error(error) {}
