package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"strings"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"
	"dating-admin/pkg/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StorageService range les photos sous photos/<user_id>/<filename>
type StorageService struct {
	storage storage.Storage
	tracer  trace.Tracer
}

func NewStorageService(storage storage.Storage) *StorageService {
	return &StorageService{
		storage: storage,
		tracer:  otel.Tracer("dating-admin/storage"),
	}
}

func photoPrefix(userID uuid.UUID) string {
	return fmt.Sprintf("photos/%s/", userID.String())
}

func photoPath(userID uuid.UUID, filename string) string {
	return photoPrefix(userID) + filename
}

// UploadUserPhotos enregistre les fichiers déjà validés; s'arrête au premier échec
func (s *StorageService) UploadUserPhotos(ctx context.Context, userID uuid.UUID, files []*multipart.FileHeader) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "StorageService.UploadUserPhotos")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID.String()), attribute.Int("photos.count", len(files)))

	uploaded := make([]string, 0, len(files))
	for _, fileHeader := range files {
		if err := s.uploadOne(ctx, userID, fileHeader); err != nil {
			span.RecordError(err)
			return uploaded, err
		}
		uploaded = append(uploaded, fileHeader.Filename)
	}

	logutils.Log.Infof("StorageService.UploadUserPhotos: Stored %d photos for user %s", len(uploaded), userID)
	return uploaded, nil
}

func (s *StorageService) uploadOne(ctx context.Context, userID uuid.UUID, fileHeader *multipart.FileHeader) error {
	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	if err := s.storage.Upload(ctx, photoPath(userID, fileHeader.Filename), file); err != nil {
		return fmt.Errorf("failed to upload photo %s: %w", fileHeader.Filename, err)
	}
	return nil
}

// ListUserPhotos retourne les noms de fichiers triés
func (s *StorageService) ListUserPhotos(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "StorageService.ListUserPhotos")
	defer span.End()

	prefix := photoPrefix(userID)
	keys, err := s.storage.List(ctx, prefix)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list photos of user %s: %w", userID, err)
	}

	filenames := make([]string, 0, len(keys))
	for _, key := range keys {
		if name, ok := strings.CutPrefix(key, prefix); ok && name != "" {
			filenames = append(filenames, name)
		}
	}
	sort.Strings(filenames)

	return filenames, nil
}

// DownloadUserPhoto retourne un flux que l'appelant doit fermer
func (s *StorageService) DownloadUserPhoto(ctx context.Context, userID uuid.UUID, filename string) (io.ReadCloser, error) {
	ctx, span := s.tracer.Start(ctx, "StorageService.DownloadUserPhoto")
	defer span.End()

	reader, err := s.storage.Download(ctx, photoPath(userID, filename))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, domain.NotFound("photo", filename)
		}
		return nil, fmt.Errorf("failed to download photo %s: %w", filename, err)
	}
	return reader, nil
}

// PhotoURL retourne l'URL publique (ou présignée) d'une photo
func (s *StorageService) PhotoURL(ctx context.Context, userID uuid.UUID, filename string) (string, error) {
	return s.storage.GetURL(ctx, photoPath(userID, filename))
}

// DeleteUserPhotos supprime toutes les photos d'un membre; continue après un échec
func (s *StorageService) DeleteUserPhotos(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, span := s.tracer.Start(ctx, "StorageService.DeleteUserPhotos")
	defer span.End()

	filenames, err := s.ListUserPhotos(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	var errs []error
	deleted := 0
	for _, filename := range filenames {
		if err := s.storage.Delete(ctx, photoPath(userID, filename)); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted++
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		span.RecordError(err)
		return deleted, fmt.Errorf("failed to delete %d photos of user %s: %w", len(errs), userID, err)
	}
	return deleted, nil
}
