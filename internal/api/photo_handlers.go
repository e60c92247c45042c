package api

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"dating-admin/internal/logutils"
	"dating-admin/internal/metrics"
	"dating-admin/internal/validation"
	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
)

// sniffSize borne la lecture utilisée pour vérifier le contenu d'une image
const sniffSize = 512

// UploadUserPhotos enregistre des photos pour un membre existant
func (h *Handlers) UploadUserPhotos(c *gin.Context) {
	userID := validatedID(c)
	validator := validation.GetValidator(c)

	if _, err := h.services.Users.GetUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	files := c.MustGet("validated_files").([]*multipart.FileHeader)
	processed := make([]*multipart.FileHeader, 0, len(files))
	for _, fileHeader := range files {
		sanitized := *fileHeader
		sanitized.Filename = validator.SanitizeFilename(fileHeader.Filename)

		content, err := readHead(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody{
				Error:     "validation_failed",
				Message:   "failed to open file: " + fileHeader.Filename,
				RequestID: c.GetString(requestIDKey),
			})
			return
		}

		if result := validator.ValidateImageContent(content, sanitized.Filename); !result.Valid {
			c.JSON(http.StatusBadRequest, errorBody{
				Error:            "validation_failed",
				Message:          "content validation failed for file: " + fileHeader.Filename,
				RequestID:        c.GetString(requestIDKey),
				ValidationErrors: result.Errors,
			})
			return
		}
		processed = append(processed, &sanitized)
	}

	uploaded, err := h.services.Photos.UploadUserPhotos(c.Request.Context(), userID, processed)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.RecordAdminAction("photos", "upload")
	c.JSON(http.StatusCreated, models.PhotoListResponse{UserID: userID, Files: uploaded, Count: len(uploaded)})
}

func readHead(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content := make([]byte, sniffSize)
	n, err := io.ReadFull(file, content)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return content[:n], nil
}

func (h *Handlers) ListUserPhotos(c *gin.Context) {
	userID := validatedID(c)

	files, err := h.services.Photos.ListUserPhotos(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.PhotoListResponse{UserID: userID, Files: files, Count: len(files)})
}

func (h *Handlers) DownloadUserPhoto(c *gin.Context) {
	userID := validatedID(c)
	filename := c.GetString("validated_filename")

	reader, err := h.services.Photos.DownloadUserPhoto(c.Request.Context(), userID, filename)
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logutils.Log.WithError(err).Warnf("Failed to close photo %s", filename)
		}
	}()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, reader, map[string]string{
		"Cache-Control": "private, max-age=300",
	})
}
