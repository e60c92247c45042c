package api

import (
	"errors"
	"net/http"

	"dating-admin/internal/domain"
	"dating-admin/internal/logutils"

	"github.com/gin-gonic/gin"
)

// errorBody est l'enveloppe commune de toutes les réponses d'erreur
type errorBody struct {
	Error            string `json:"error"`
	Message          string `json:"message"`
	RequestID        string `json:"request_id,omitempty"`
	ValidationErrors any    `json:"validation_errors,omitempty"`
}

// respondError traduit une erreur de service en statut HTTP
func respondError(c *gin.Context, err error) {
	body := errorBody{
		Message:   err.Error(),
		RequestID: c.GetString(requestIDKey),
	}
	status := http.StatusInternalServerError

	var notFound domain.NotFoundError
	switch {
	case domain.IsInvalid(err):
		status = http.StatusBadRequest
		body.Error = "validation_failed"
		body.ValidationErrors = domain.ValidationDetails(err)
		var invalid domain.InvalidError
		if errors.As(err, &invalid) {
			body.Message = invalid.Error()
		}
	case domain.IsUnauthorized(err):
		status = http.StatusUnauthorized
		body.Error = "unauthorized"
		body.Message = "invalid credentials"
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		body.Error = "not_found"
		body.Message = notFound.Error()
	case domain.IsNotFound(err):
		status = http.StatusNotFound
		body.Error = "not_found"
	case domain.IsConflict(err):
		status = http.StatusConflict
		body.Error = "conflict"
	default:
		body.Error = "internal_error"
		body.Message = "an unexpected error occurred"
		logutils.Log.WithError(err).WithField("request_id", body.RequestID).Error("Unhandled error")
	}

	c.AbortWithStatusJSON(status, body)
}
