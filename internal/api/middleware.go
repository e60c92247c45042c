package api

import (
	"fmt"
	"net/http"
	"time"

	"dating-admin/internal/logutils"
	"dating-admin/internal/validation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// ValidationMiddleware injecte l'APIValidator dans le contexte
func ValidationMiddleware(validator *validation.APIValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("validator", validator)
		c.Next()
	}
}

// RequestIDMiddleware reprend X-Request-ID ou en génère un
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// AccessLogMiddleware écrit une ligne logrus par requête
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logutils.Log.WithFields(logutils.Fields{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": float64(time.Since(start).Microseconds()) / 1000,
			"ip":         c.ClientIP(),
		})

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// RecoveryMiddleware transforme un panic en 500 JSON
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logutils.Log.WithField("request_id", c.GetString(requestIDKey)).
			Errorf("Panic recovered: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
			Error:     "internal_error",
			Message:   "an unexpected error occurred",
			RequestID: c.GetString(requestIDKey),
		})
	})
}

// CORSMiddleware autorise uniquement les origines configurées
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		config.AllowOrigins = nil
		config.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(config)
}

// SecurityHeadersMiddleware ajoute des headers de sécurité
func SecurityHeadersMiddleware(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if production {
			c.Header("Strict-Transport-Security", fmt.Sprintf("max-age=%d; includeSubDomains", int((365*24*time.Hour).Seconds())))
		}
		c.Next()
	}
}
