// internal/validation/validation.go - Service de validation des entrées

package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"dating-admin/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxSearchLength est la longueur maximale du texte de recherche (en runes)
const MaxSearchLength = 100

// ValidationConfig contient la configuration de validation
type ValidationConfig struct {
	MaxFileSize       int64           // Taille max par fichier (bytes)
	MaxTotalSize      int64           // Taille max totale (bytes)
	MaxFiles          int             // Nombre max de fichiers
	AllowedExtensions map[string]bool // Extensions autorisées
	MaxFilenameLength int             // Longueur max du nom de fichier
	AllowedMimeTypes  map[string]bool // Types MIME autorisés
	MaxPageSize       int             // Limite max d'une page de liste
}

// DefaultValidationConfig retourne une configuration par défaut pour les photos de profil
func DefaultValidationConfig() *ValidationConfig {
	return &ValidationConfig{
		MaxFileSize:       8 * 1024 * 1024,  // 8MB par photo
		MaxTotalSize:      40 * 1024 * 1024, // 40MB par envoi
		MaxFiles:          10,
		MaxFilenameLength: 255,
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".gif":  true,
			".webp": true,
			".heic": true,
		},
		AllowedMimeTypes: map[string]bool{
			"image/jpeg":               true,
			"image/png":                true,
			"image/gif":                true,
			"image/webp":               true,
			"image/heic":               true,
			"application/octet-stream": true,
		},
		MaxPageSize: 100,
	}
}

// ValidationService gère la validation des entrées
type ValidationService struct {
	config  *ValidationConfig
	structs *validator.Validate
}

// NewValidationService crée un nouveau service de validation
func NewValidationService(config *ValidationConfig) *ValidationService {
	if config == nil {
		config = DefaultValidationConfig()
	}
	if config.MaxPageSize < 1 {
		config.MaxPageSize = 100
	}

	return &ValidationService{
		config:  config,
		structs: validator.New(),
	}
}

// ValidationError représente une erreur de validation avec détails
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// ValidationResult contient le résultat de validation
type ValidationResult struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors,omitempty"`
}

// AddError ajoute une erreur de validation
func (vr *ValidationResult) AddError(field, value, message, code string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Code:    code,
	})
}

// Merge ajoute les erreurs d'un autre résultat
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil || other.Valid {
		return
	}
	vr.Valid = false
	vr.Errors = append(vr.Errors, other.Errors...)
}

// Message résume les erreurs en une phrase lisible par l'opérateur
func (vr *ValidationResult) Message() string {
	if vr.Valid || len(vr.Errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// ValidateID valide un identifiant UUID
func (vs *ValidationService) ValidateID(field, raw string) (uuid.UUID, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if raw == "" {
		result.AddError(field, "", field+" is required", "REQUIRED")
		return uuid.Nil, result
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		result.AddError(field, raw, field+" must be a valid UUID", "INVALID_UUID")
		return uuid.Nil, result
	}

	return id, result
}

// ValidateListQuery valide pagination, tri, filtre et recherche d'une liste
func (vs *ValidationService) ValidateListQuery(query models.ListQuery, rules models.ListRules) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if query.Page < 1 {
		result.AddError("page", strconv.Itoa(query.Page), "page must be greater than or equal to 1", "INVALID_PAGE")
	}

	if query.Limit < 1 || query.Limit > vs.config.MaxPageSize {
		result.AddError("limit", strconv.Itoa(query.Limit),
			fmt.Sprintf("limit must be between 1 and %d", vs.config.MaxPageSize),
			"INVALID_LIMIT")
	}

	if query.Sort != "" && !rules.AllowsSort(query.Sort) {
		result.AddError("sort", query.Sort, "sort field not allowed", "INVALID_SORT")
	}

	if query.Order != "" && !query.Order.Valid() {
		result.AddError("order", string(query.Order), "order must be asc or desc", "INVALID_ORDER")
	}

	if !rules.AllowsStatus(query.Status) {
		result.AddError("status", query.Status,
			fmt.Sprintf("invalid status (must be: %s)", strings.Join(rules.Statuses, ", ")),
			"INVALID_STATUS")
	}

	if utf8.RuneCountInString(query.Search) > MaxSearchLength {
		result.AddError("search", query.Search,
			fmt.Sprintf("search too long (max %d characters)", MaxSearchLength),
			"TOO_LONG")
	}

	return result
}

// ValidateStruct applique les tags `validate` d'un DTO
func (vs *ValidationService) ValidateStruct(v any) *ValidationResult {
	result := &ValidationResult{Valid: true}

	err := vs.structs.Struct(v)
	if err == nil {
		return result
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		result.AddError("body", "", err.Error(), "INVALID_BODY")
		return result
	}

	for _, fe := range fieldErrors {
		result.AddError(lowerFirst(fe.Field()), fmt.Sprintf("%v", fe.Value()),
			fmt.Sprintf("failed on '%s' rule", fe.Tag()),
			"INVALID_"+strings.ToUpper(fe.Tag()))
	}

	return result
}

// ValidateFilename valide un nom de fichier de photo
func (vs *ValidationService) ValidateFilename(filename string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if filename == "" {
		result.AddError("filename", "", "filename is required", "REQUIRED")
		return result
	}

	if len(filename) > vs.config.MaxFilenameLength {
		result.AddError("filename", filename,
			fmt.Sprintf("filename too long (max %d characters)", vs.config.MaxFilenameLength),
			"TOO_LONG")
	}

	if !utf8.ValidString(filename) {
		result.AddError("filename", filename, "filename must be valid UTF-8", "INVALID_ENCODING")
	}

	forbiddenChars := []string{
		"..", "/", "\\", ":", "*", "?", "\"", "<", ">", "|",
		"\x00", "\x01", "\x02", "\x03", "\x04", "\x05", "\x06", "\x07",
		"\x08", "\x09", "\x0a", "\x0b", "\x0c", "\x0d", "\x0e", "\x0f",
	}

	for _, char := range forbiddenChars {
		if strings.Contains(filename, char) {
			result.AddError("filename", filename,
				fmt.Sprintf("filename contains forbidden character: %q", char),
				"FORBIDDEN_CHAR")
		}
	}

	if strings.HasPrefix(filename, " ") || strings.HasSuffix(filename, " ") ||
		strings.HasPrefix(filename, ".") || strings.HasSuffix(filename, ".") {
		result.AddError("filename", filename,
			"filename cannot start or end with space or dot",
			"INVALID_FORMAT")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.AddError("filename", filename, "filename must have an extension", "NO_EXTENSION")
	} else if !vs.config.AllowedExtensions[ext] {
		result.AddError("filename", filename,
			fmt.Sprintf("file extension %s not allowed", ext),
			"FORBIDDEN_EXTENSION")
	}

	return result
}

// ValidateFileHeader valide un header de fichier multipart
func (vs *ValidationService) ValidateFileHeader(header *multipart.FileHeader) *ValidationResult {
	result := &ValidationResult{Valid: true}

	result.Merge(vs.ValidateFilename(header.Filename))

	if header.Size > vs.config.MaxFileSize {
		result.AddError("file_size", fmt.Sprintf("%d", header.Size),
			fmt.Sprintf("file too large (max %d bytes)", vs.config.MaxFileSize),
			"FILE_TOO_LARGE")
	}

	if header.Size == 0 {
		result.AddError("file_size", "0", "file is empty", "EMPTY_FILE")
	}

	if len(header.Header["Content-Type"]) > 0 {
		contentType := header.Header["Content-Type"][0]
		mainType := strings.Split(contentType, ";")[0]
		if !vs.config.AllowedMimeTypes[mainType] {
			result.AddError("content_type", contentType,
				fmt.Sprintf("content type %s not allowed", mainType),
				"FORBIDDEN_MIME_TYPE")
		}
	}

	return result
}

// ValidateFiles valide un ensemble de photos
func (vs *ValidationService) ValidateFiles(files []*multipart.FileHeader) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(files) == 0 {
		result.AddError("files", "", "no files provided", "NO_FILES")
		return result
	}

	if len(files) > vs.config.MaxFiles {
		result.AddError("files", fmt.Sprintf("%d files", len(files)),
			fmt.Sprintf("too many files (max %d)", vs.config.MaxFiles),
			"TOO_MANY_FILES")
	}

	var totalSize int64
	filenames := make(map[string]bool)

	for i, file := range files {
		fileResult := vs.ValidateFileHeader(file)
		if !fileResult.Valid {
			// Préfixer les erreurs avec l'index du fichier
			for _, err := range fileResult.Errors {
				err.Field = fmt.Sprintf("files[%d].%s", i, err.Field)
			}
			result.Merge(fileResult)
		}

		if filenames[file.Filename] {
			result.AddError(fmt.Sprintf("files[%d].filename", i), file.Filename,
				"duplicate filename", "DUPLICATE_FILENAME")
		}
		filenames[file.Filename] = true

		totalSize += file.Size
	}

	if totalSize > vs.config.MaxTotalSize {
		result.AddError("total_size", fmt.Sprintf("%d", totalSize),
			fmt.Sprintf("total size too large (max %d bytes)", vs.config.MaxTotalSize),
			"TOTAL_SIZE_TOO_LARGE")
	}

	return result
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
