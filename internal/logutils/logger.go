package logutils

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Log est le logger partagé par tous les paquets
var Log = logrus.New()

// Fields est un alias de logrus.Fields
type Fields = logrus.Fields

func init() {
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat:           "2006-01-02 15:04:05",
		EnvironmentOverrideColors: true,
		FullTimestamp:             true,
	})
}

// SetLevel applique un niveau textuel (debug, info, warn, error).
// Un niveau inconnu retombe sur info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}
}

// SetJSON bascule sur un format JSON, utilisé en production
func SetJSON() {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
}
