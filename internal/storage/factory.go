package storage

import (
	"fmt"

	"dating-admin/internal/storage/filesystem"
	"dating-admin/internal/storage/garage"
	"dating-admin/pkg/storage"
)

// NewStorage crée le backend choisi par STORAGE_TYPE
func NewStorage(config *storage.StorageConfig) (storage.Storage, error) {
	switch config.Type {
	case "filesystem":
		return filesystem.NewFilesystemStorage(config.BasePath)
	case "garage":
		return garage.NewGarageStorage(config)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.Type)
	}
}
