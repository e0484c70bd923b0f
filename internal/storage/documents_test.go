package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDocumentStore_Save(t *testing.T) {
	tempDir := t.TempDir()
	store := NewDocumentStore(tempDir, zap.NewNop())

	t.Run("saves document", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "quotation_T1.pdf")
		content := []byte("%PDF-1.4 content")

		err := store.Save(fullPath, content)

		require.NoError(t, err)
		saved, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, content, saved)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "archive", "2025", "quotation_T2.pdf")

		err := store.Save(fullPath, []byte("content"))

		require.NoError(t, err)
		assert.FileExists(t, fullPath)
	})

	t.Run("overwrites existing document", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "quotation_T3.pdf")

		require.NoError(t, store.Save(fullPath, []byte("original")))
		require.NoError(t, store.Save(fullPath, []byte("updated")))

		content, _ := os.ReadFile(fullPath)
		assert.Equal(t, []byte("updated"), content)
	})
}

func TestDocumentStore_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	store := NewDocumentStore(tempDir, zap.NewNop())

	t.Run("accepts path within base", func(t *testing.T) {
		assert.NoError(t, store.ValidatePath(filepath.Join(tempDir, "quotation_T1.pdf")))
	})

	t.Run("rejects path outside base", func(t *testing.T) {
		err := store.ValidatePath("/etc/passwd")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "escapes base directory")
	})

	t.Run("rejects traversal", func(t *testing.T) {
		err := store.ValidatePath(filepath.Join(tempDir, "..", "..", "etc", "passwd"))
		assert.Error(t, err)
	})

	t.Run("rejects similar prefix", func(t *testing.T) {
		err := store.ValidatePath(tempDir + "_other/file.pdf")
		assert.Error(t, err)
	})
}

func TestDocumentStore_QuotationPDFPath(t *testing.T) {
	store := NewDocumentStore("/docs", zap.NewNop())

	t.Run("uses trip id in name", func(t *testing.T) {
		path := store.QuotationPDFPath("T1")
		assert.Equal(t, filepath.Join("/docs", "quotation_T1.pdf"), path)
	})

	t.Run("sanitizes hostile trip ids", func(t *testing.T) {
		path := store.QuotationPDFPath("../../etc/passwd")
		assert.False(t, strings.Contains(path, ".."+string(filepath.Separator)))
		assert.NoError(t, store.ValidatePath(path))
	})
}
