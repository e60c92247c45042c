// Package metrics expose les métriques Prometheus de l'API d'administration.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal compte les requêtes par route et statut
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AdminActionsTotal compte les mutations effectuées par les opérateurs
	AdminActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_actions_total",
			Help: "Total number of admin mutations",
		},
		[]string{"resource", "action"},
	)
)

// RecordAdminAction enregistre une mutation réussie
func RecordAdminAction(resource, action string) {
	AdminActionsTotal.WithLabelValues(resource, action).Inc()
}

// Middleware mesure chaque requête; la route est le motif gin, pas le chemin brut
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler sert le registre par défaut au format Prometheus
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
