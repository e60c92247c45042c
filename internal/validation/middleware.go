// internal/validation/middleware.go
package validation

import (
	"net/http"

	"dating-admin/pkg/models"

	"github.com/gin-gonic/gin"
)

// RequestValidator définit une fonction de validation pour une requête
type RequestValidator func(*gin.Context, *APIValidator) *ValidationResult

// ValidateRequest est le middleware principal qui exécute une liste de validators
func ValidateRequest(validators ...RequestValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		validator := GetValidator(c)
		if validator == nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Validation service unavailable",
			})
			c.Abort()
			return
		}

		// Exécuter toutes les validations dans l'ordre
		for _, validate := range validators {
			if result := validate(c, validator); !result.Valid {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":             "validation_failed",
					"message":           result.Message(),
					"request_id":        c.GetString("request_id"),
					"validation_errors": result.Errors,
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// GetValidator récupère le validator injecté dans le contexte
func GetValidator(c *gin.Context) *APIValidator {
	if validator, exists := c.Get("validator"); exists {
		if apiValidator, ok := validator.(*APIValidator); ok {
			return apiValidator
		}
	}
	return nil
}

// ValidateIDParam valide un paramètre UUID et stocke la valeur parsée sous "validated_id"
func ValidateIDParam(paramName string) RequestValidator {
	return func(c *gin.Context, v *APIValidator) *ValidationResult {
		id, result := v.ValidateIDParam(paramName, c.Param(paramName))
		if result.Valid {
			c.Set("validated_id", id)
		}
		return result
	}
}

// ValidateListQuery valide les paramètres de liste et stocke la requête sous "validated_list_query"
func ValidateListQuery(rules models.ListRules) RequestValidator {
	return func(c *gin.Context, v *APIValidator) *ValidationResult {
		query, result := v.ParseListQuery(RawListQuery{
			Page:   c.Query("page"),
			Limit:  c.Query("limit"),
			Sort:   c.Query("sort"),
			Order:  c.Query("order"),
			Search: c.Query("search"),
			Status: c.Query("status"),
		}, rules)

		if result.Valid {
			c.Set("validated_list_query", query)
		}
		return result
	}
}

// ValidateFilenameParam valide un nom de fichier depuis l'URL
func ValidateFilenameParam(paramName string) RequestValidator {
	return func(c *gin.Context, v *APIValidator) *ValidationResult {
		filename := c.Param(paramName)
		result := v.ValidateFilenameParam(filename)

		if result.Valid {
			c.Set("validated_filename", v.SanitizeFilename(filename))
		}

		return result
	}
}

// ValidateFileUpload valide un upload multipart (champ "files")
func ValidateFileUpload(c *gin.Context, v *APIValidator) *ValidationResult {
	form, err := c.MultipartForm()
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError("files", "", "Failed to parse multipart form: "+err.Error(), "MULTIPART_PARSE_ERROR")
		return result
	}

	files := form.File["files"]
	result := v.ValidatePhotoUpload(files)

	if result.Valid {
		c.Set("validated_files", files)
	}

	return result
}

// ParseJSONRequest décode le corps JSON, applique les tags `validate`
// et stocke la requête sous "validated_request"
func ParseJSONRequest[T any]() RequestValidator {
	return func(c *gin.Context, v *APIValidator) *ValidationResult {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			result := &ValidationResult{Valid: true}
			result.AddError("body", "", err.Error(), "INVALID_JSON")
			return result
		}

		result := v.ValidateRequest(&req)
		if result.Valid {
			c.Set("validated_request", req)
		}
		return result
	}
}
