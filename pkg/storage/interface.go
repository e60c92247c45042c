package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound est retourné par Download quand la clé n'existe pas
var ErrObjectNotFound = errors.New("object not found")

// Storage définit l'interface pour le stockage des photos
type Storage interface {
	Upload(ctx context.Context, path string, data io.Reader) error
	// Download retourne un flux que l'appelant doit fermer
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Delete ne retourne pas d'erreur si l'objet n'existe pas
	Delete(ctx context.Context, path string) error
	// List retourne les clés complètes commençant par prefix
	List(ctx context.Context, prefix string) ([]string, error)
	GetURL(ctx context.Context, path string) (string, error)
}

// StorageConfig contient la configuration du storage
type StorageConfig struct {
	Type      string // "filesystem" ou "garage"
	BasePath  string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}
