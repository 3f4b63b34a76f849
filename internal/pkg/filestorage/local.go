package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gradnexus/campusconnect/internal/pkg/logger"
)

// PublicPrefix is the URL path under which the storage root is served.
const PublicPrefix = "/uploads"

// ErrInvalidPath is returned for URLs that do not point inside the storage root.
var ErrInvalidPath = errors.New("invalid file path")

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory of stored files
	baseURL  string // scheme and host prepended to returned URLs, may be empty
}

// NewLocalStorage creates the storage root if needed.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath returns the storage root served under PublicPrefix.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// Save copies the upload to dir under a random name that keeps the original extension.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, dir string) (string, error) {
	if fileHeader == nil {
		return "", errors.New("no file provided")
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fullDir := filepath.Join(ls.basePath, filepath.Clean("/"+dir))
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(fullDir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := ls.baseURL + path.Join(PublicPrefix, dir, name)
	logger.Debug().Str("filename", fileHeader.Filename).Str("url", url).Msg("File saved")
	return url, nil
}

// Delete removes the file behind fileURL.
func (ls *LocalStorage) Delete(fileURL string) error {
	full, err := ls.FullPath(fileURL)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		logger.Error().Err(err).Str("path", full).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// FullPath maps a URL returned by Save back to its filesystem path.
func (ls *LocalStorage) FullPath(fileURL string) (string, error) {
	rel := strings.TrimPrefix(fileURL, ls.baseURL)
	rel, ok := strings.CutPrefix(rel, PublicPrefix+"/")
	if !ok {
		return "", ErrInvalidPath
	}
	clean := path.Clean("/" + rel)
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(clean)), nil
}
