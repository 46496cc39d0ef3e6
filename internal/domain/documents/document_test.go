package documents

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFolder(t *testing.T) {
	t.Run("creates folder", func(t *testing.T) {
		owner := uuid.New()
		f, err := NewFolder(owner, nil, nil, "Discovery")
		require.NoError(t, err)
		assert.Equal(t, owner, f.OwnerID)
		assert.False(t, f.Shared)
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewFolder(uuid.New(), nil, nil, "")
		assert.Error(t, err)
	})

	t.Run("rename validates name", func(t *testing.T) {
		f, _ := NewFolder(uuid.New(), nil, nil, "Discovery")
		assert.Error(t, f.Rename(""))
		require.NoError(t, f.Rename("Exhibits"))
		assert.Equal(t, "Exhibits", f.Name)
	})
}

func TestNewDocument(t *testing.T) {
	t.Run("creates document", func(t *testing.T) {
		d, err := NewDocument(uuid.New(), nil, nil, "agreement.pdf", "application/pdf", 52344, "docs/2026/08/abc123")
		require.NoError(t, err)
		assert.Equal(t, "agreement.pdf", d.FileName)
	})

	t.Run("rejects empty size or key", func(t *testing.T) {
		_, err := NewDocument(uuid.New(), nil, nil, "a.pdf", "application/pdf", 0, "k")
		assert.Error(t, err)
		_, err = NewDocument(uuid.New(), nil, nil, "a.pdf", "application/pdf", 10, "")
		assert.Error(t, err)
	})

	t.Run("move to folder", func(t *testing.T) {
		d, _ := NewDocument(uuid.New(), nil, nil, "a.pdf", "application/pdf", 10, "k")
		folderID := uuid.New()
		d.MoveToFolder(&folderID)
		require.NotNil(t, d.FolderID)
		assert.Equal(t, folderID, *d.FolderID)
	})
}

func TestDeduplicateName(t *testing.T) {
	t.Run("no collision keeps name", func(t *testing.T) {
		got := DeduplicateName("notes.txt", func(string) bool { return false })
		assert.Equal(t, "notes.txt", got)
	})

	t.Run("suffix before extension", func(t *testing.T) {
		existing := map[string]bool{"notes.txt": true}
		got := DeduplicateName("notes.txt", func(n string) bool { return existing[n] })
		assert.Equal(t, "notes (1).txt", got)
	})

	t.Run("increments until free", func(t *testing.T) {
		existing := map[string]bool{
			"scan.pdf":     true,
			"scan (1).pdf": true,
			"scan (2).pdf": true,
		}
		got := DeduplicateName("scan.pdf", func(n string) bool { return existing[n] })
		assert.Equal(t, "scan (3).pdf", got)
	})

	t.Run("handles names without extension", func(t *testing.T) {
		existing := map[string]bool{"README": true}
		got := DeduplicateName("README", func(n string) bool { return existing[n] })
		assert.Equal(t, "README (1)", got)
	})
}
