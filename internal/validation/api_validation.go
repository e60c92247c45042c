// internal/validation/api_validation.go - Validation spécifique à l'API

package validation

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"dating-admin/pkg/models"

	"github.com/google/uuid"
)

// APIValidator gère la validation des requêtes API
type APIValidator struct {
	validationService *ValidationService
	defaultPageSize   int
}

// RawListQuery contient les paramètres de liste tels que reçus en query string
type RawListQuery struct {
	Page   string
	Limit  string
	Sort   string
	Order  string
	Search string
	Status string
}

// NewAPIValidator crée un nouveau validateur d'API
func NewAPIValidator(config *ValidationConfig, defaultPageSize int) *APIValidator {
	vs := NewValidationService(config)
	if defaultPageSize < 1 || defaultPageSize > vs.config.MaxPageSize {
		defaultPageSize = min(10, vs.config.MaxPageSize)
	}
	return &APIValidator{
		validationService: vs,
		defaultPageSize:   defaultPageSize,
	}
}

// ValidateIDParam valide un identifiant depuis l'URL
func (av *APIValidator) ValidateIDParam(field, raw string) (uuid.UUID, *ValidationResult) {
	return av.validationService.ValidateID(field, raw)
}

// ParseListQuery convertit et valide les paramètres de liste.
// Les valeurs absentes prennent les défauts (page 1, taille par défaut, tri par défaut, desc).
func (av *APIValidator) ParseListQuery(raw RawListQuery, rules models.ListRules) (models.ListQuery, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	query := models.ListQuery{
		Page:   1,
		Limit:  av.defaultPageSize,
		Sort:   strings.TrimSpace(raw.Sort),
		Order:  models.SortOrder(strings.ToLower(strings.TrimSpace(raw.Order))),
		Search: strings.TrimSpace(raw.Search),
		Status: strings.TrimSpace(raw.Status),
	}

	if raw.Page != "" {
		page, err := strconv.Atoi(raw.Page)
		if err != nil {
			result.AddError("page", raw.Page, "page must be a valid integer", "INVALID_PAGE")
		} else {
			query.Page = page
		}
	}

	if raw.Limit != "" {
		limit, err := strconv.Atoi(raw.Limit)
		if err != nil {
			result.AddError("limit", raw.Limit, "limit must be a valid integer", "INVALID_LIMIT")
		} else {
			query.Limit = limit
		}
	}

	if !result.Valid {
		return query, result
	}

	result.Merge(av.validationService.ValidateListQuery(query, rules))

	if query.Sort == "" {
		query.Sort = rules.DefaultSort
	}
	if query.Order == "" {
		query.Order = models.SortDesc
	}

	return query, result
}

// ValidateRequest valide un DTO de requête via ses tags
func (av *APIValidator) ValidateRequest(req any) *ValidationResult {
	return av.validationService.ValidateStruct(req)
}

// ValidatePhotoUpload valide un upload de photos
func (av *APIValidator) ValidatePhotoUpload(files []*multipart.FileHeader) *ValidationResult {
	return av.validationService.ValidateFiles(files)
}

// ValidateFilenameParam valide un paramètre filename depuis l'URL
func (av *APIValidator) ValidateFilenameParam(filename string) *ValidationResult {
	return av.validationService.ValidateFilename(filename)
}

// SanitizeFilename nettoie un nom de fichier en supprimant les caractères dangereux
func (av *APIValidator) SanitizeFilename(filename string) string {
	// Séparer l'extension du nom de base pour la protéger
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	if base == "" && ext != "" {
		base = "hidden_file"
	}

	base = regexp.MustCompile(`\.\.+`).ReplaceAllString(base, "_")

	dangerous := regexp.MustCompile(`[\/\\:*?"<>|]+`)
	base = dangerous.ReplaceAllString(base, "_")

	base = regexp.MustCompile(`^\.+|\.+`).ReplaceAllString(base, "_")
	base = regexp.MustCompile(`_+`).ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")

	ext = strings.ToLower(strings.Trim(ext, "_"))
	if len(ext) < 2 {
		ext = ""
	}

	if base == "" {
		base = "unnamed_file"
	}

	if base == "hidden_file" {
		base = ""
	}

	sanitized := base + ext

	if len(sanitized) > 200 {
		if len(ext) < 200 {
			maxBaseLen := 200 - len(ext)
			if len(base) > maxBaseLen {
				base = base[:maxBaseLen]
			}
			sanitized = base + ext
		} else {
			sanitized = sanitized[:200]
		}
	}

	return sanitized
}

// ValidateImageContent vérifie que le contenu est bien une image
func (av *APIValidator) ValidateImageContent(content []byte, filename string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if int64(len(content)) > av.validationService.config.MaxFileSize {
		result.AddError("content", filename, "content too large", "CONTENT_TOO_LARGE")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".heic" {
		// non reconnu par la détection standard
		return result
	}

	detected := http.DetectContentType(content)
	if !strings.HasPrefix(detected, "image/") {
		result.AddError("content", filename,
			fmt.Sprintf("content is %s, expected an image", detected),
			"NOT_AN_IMAGE")
	}

	return result
}
