package filestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/milavdabgar/gpp-portal/internal/pkg/logger"
)

// Store archives uploaded CSV files and generated reports on disk.
type Store interface {
	// SaveUpload archives an uploaded file under the given subdirectory and
	// returns the stored relative path.
	SaveUpload(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// SaveContent writes generated content (a LaTeX report, an export) under
	// the given subdirectory and returns the stored relative path.
	SaveContent(name, subPath string, content []byte) (string, error)

	// Remove deletes a previously stored file.
	Remove(relPath string) error

	// FullPath resolves a stored relative path to its filesystem location.
	FullPath(relPath string) string
}

// LocalStore keeps archived files on the local filesystem.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates the base directory if needed and returns a store.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")
	return &LocalStore{basePath: basePath}, nil
}

// SaveUpload archives an uploaded file under subPath with a unique name.
func (ls *LocalStore) SaveUpload(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	relPath := filepath.Join(subPath, uniqueName(fileHeader.Filename))
	dst, err := ls.create(relPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Debug().Str("path", relPath).Int64("size", fileHeader.Size).Msg("Archived uploaded file")
	return relPath, nil
}

// SaveContent writes generated content under subPath with a unique name.
func (ls *LocalStore) SaveContent(name, subPath string, content []byte) (string, error) {
	relPath := filepath.Join(subPath, uniqueName(name))
	dst, err := ls.create(relPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.Write(content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return relPath, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (ls *LocalStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(ls.FullPath(relPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", relPath, err)
	}
	return nil
}

// FullPath resolves a stored relative path against the base directory.
func (ls *LocalStore) FullPath(relPath string) string {
	return filepath.Join(ls.basePath, relPath)
}

func (ls *LocalStore) create(relPath string) (*os.File, error) {
	full := ls.FullPath(relPath)
	if err := os.MkdirAll(filepath.Dir(full), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	f, err := os.Create(full)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", relPath, err)
	}
	return f, nil
}

func uniqueName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext)
}
