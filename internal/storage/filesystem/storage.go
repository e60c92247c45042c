package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dating-admin/pkg/storage"
)

type filesystemStorage struct {
	basePath string
}

// NewFilesystemStorage crée le répertoire de base si besoin
func NewFilesystemStorage(basePath string) (storage.Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", basePath, err)
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", basePath, err)
	}

	return &filesystemStorage{basePath: abs}, nil
}

// resolve refuse toute clé qui sortirait du répertoire de base
func (s *filesystemStorage) resolve(path string) (string, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(path))
	if fullPath != s.basePath && !strings.HasPrefix(fullPath, s.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes storage root: %s", path)
	}
	return fullPath, nil
}

func (s *filesystemStorage) Upload(ctx context.Context, path string, data io.Reader) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories for %s: %w", path, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return fmt.Errorf("failed to write data to %s: %w", path, err)
	}

	return nil
}

func (s *filesystemStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s: %w", path, storage.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	return file, nil
}

func (s *filesystemStorage) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence %s: %w", path, err)
	}

	return true, nil
}

func (s *filesystemStorage) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}

	return nil
}

// List parcourt uniquement le sous-arbre du préfixe; les clés sont en slash
func (s *filesystemStorage) List(ctx context.Context, prefix string) ([]string, error) {
	root, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		root += string(filepath.Separator)
	}

	walkRoot := root
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		walkRoot = filepath.Dir(walkRoot)
	}

	var files []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasPrefix(path, root) {
			return nil
		}

		relPath, err := filepath.Rel(s.basePath, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files with prefix %s: %w", prefix, err)
	}

	return files, nil
}

// GetURL retourne la clé telle quelle; l'API sert le fichier elle-même
func (s *filesystemStorage) GetURL(ctx context.Context, path string) (string, error) {
	return path, nil
}
