// Package storage keeps generated quotation documents on the local
// filesystem, rooted under a single base directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// DocumentStore writes generated documents (quotation PDFs) under a base
// directory and refuses paths that escape it.
type DocumentStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewDocumentStore creates a DocumentStore rooted at baseDir.
func NewDocumentStore(baseDir string, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// QuotationPDFPath returns the canonical path for a trip's quotation PDF.
// The trip id is sanitized so it is always safe as a file name.
func (s *DocumentStore) QuotationPDFPath(tripID string) string {
	safe := unsafeNameChars.ReplaceAllString(tripID, "_")
	return filepath.Join(s.baseDir, fmt.Sprintf("quotation_%s.pdf", safe))
}

// Save writes content to fullPath, creating parent directories as needed.
func (s *DocumentStore) Save(fullPath string, content []byte) error {
	if err := s.ValidatePath(fullPath); err != nil {
		return err
	}

	parentDir := filepath.Dir(fullPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		s.logger.Error("Failed to create document directory",
			zap.String("path", parentDir),
			zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write document",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Document saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return nil
}

// ValidatePath checks that the path stays within the base directory.
func (s *DocumentStore) ValidatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}

	return nil
}
