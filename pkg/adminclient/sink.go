package adminclient

import (
	"sync"

	"dating-admin/internal/logutils"
)

// Sink reçoit les messages destinés à l'opérateur
type Sink interface {
	Success(msg string)
	Error(msg string)
}

// LogSink écrit les messages dans le logger applicatif
type LogSink struct{}

func (LogSink) Success(msg string) { logutils.Log.Info(msg) }
func (LogSink) Error(msg string)   { logutils.Log.Error(msg) }

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Message struct {
	Level Level
	Text  string
}

// RecorderSink conserve les messages, pour les tests et l'affichage CLI
type RecorderSink struct {
	mu       sync.Mutex
	messages []Message
}

func (r *RecorderSink) Success(msg string) { r.record(LevelSuccess, msg) }
func (r *RecorderSink) Error(msg string)   { r.record(LevelError, msg) }

func (r *RecorderSink) record(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: msg})
}

func (r *RecorderSink) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Drain retourne les messages et vide le tampon
func (r *RecorderSink) Drain() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages
	r.messages = nil
	return msgs
}

func (r *RecorderSink) Errors() []string    { return r.texts(LevelError) }
func (r *RecorderSink) Successes() []string { return r.texts(LevelSuccess) }

func (r *RecorderSink) texts(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.messages {
		if m.Level == level {
			out = append(out, m.Text)
		}
	}
	return out
}
