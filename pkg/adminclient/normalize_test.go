package adminclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dating-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMessageWithSenderObject(t *testing.T) {
	n := NewNormalizer()

	got := n.Normalize(map[string]any{
		"type":    "message",
		"sender":  map[string]any{"fullName": "An"},
		"content": "Hi",
	})

	assert.Equal(t, "New message", got.Title)
	assert.Equal(t, "Hi", got.Text)
	assert.Equal(t, "An", got.SenderName)
	assert.Equal(t, "message", got.Type)
}

func TestNormalizeKeepsExplicitTitle(t *testing.T) {
	got := NewNormalizer().Normalize(map[string]any{
		"type":  "message",
		"title": "Rendez-vous confirmé",
		"text":  "A demain",
	})

	assert.Equal(t, "Rendez-vous confirmé", got.Title)
	assert.Equal(t, "A demain", got.Text)
}

func TestNormalizeSynthesizesDistinctIDs(t *testing.T) {
	n := NewNormalizer()

	a := n.Normalize(map[string]any{"content": "one"})
	b := n.Normalize(map[string]any{"content": "two"})

	assert.True(t, strings.HasPrefix(a.ID, "notif-"))
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNormalizeFieldPriority(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name   string
		record map[string]any
		check  func(t *testing.T, got Notification)
	}{
		{
			name:   "id before _id",
			record: map[string]any{"id": "n1", "_id": "legacy"},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "n1", got.ID) },
		},
		{
			name:   "numeric legacy id",
			record: map[string]any{"_id": float64(4521)},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "4521", got.ID) },
		},
		{
			name:   "blank content falls through to text",
			record: map[string]any{"content": "  ", "text": "fallback"},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "fallback", got.Text) },
		},
		{
			name:   "nested data message",
			record: map[string]any{"data": map[string]any{"message": "from data"}},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "from data", got.Text) },
		},
		{
			name:   "sender as plain string under from",
			record: map[string]any{"from": "Camille"},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "Camille", got.SenderName) },
		},
		{
			name:   "user object with username only",
			record: map[string]any{"user": map[string]any{"username": "jdupont"}},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "jdupont", got.SenderName) },
		},
		{
			name:   "sender under data",
			record: map[string]any{"data": map[string]any{"sender": map[string]any{"full_name": "Léa"}}},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "Léa", got.SenderName) },
		},
		{
			name:   "kind used as type",
			record: map[string]any{"kind": "match"},
			check: func(t *testing.T, got Notification) {
				assert.Equal(t, "match", got.Type)
				assert.Equal(t, "New match", got.Title)
			},
		},
		{
			name:   "unknown type gets generic title",
			record: map[string]any{"type": "promo"},
			check:  func(t *testing.T, got Notification) { assert.Equal(t, "Notification", got.Title) },
		},
		{
			name:   "read flags",
			record: map[string]any{"is_read": true},
			check:  func(t *testing.T, got Notification) { assert.True(t, got.Read) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, n.Normalize(tt.record))
		})
	}
}

func TestNormalizeEmptyRecord(t *testing.T) {
	got := NewNormalizer().Normalize(map[string]any{})

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "system", got.Type)
	assert.Equal(t, "System notification", got.Title)
	assert.Equal(t, "No content", got.Text)
	assert.Equal(t, "Unknown", got.SenderName)
	assert.True(t, got.CreatedAt.IsZero())
}

func TestNormalizeTimestamps(t *testing.T) {
	n := NewNormalizer()
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	assert.True(t, want.Equal(n.Normalize(map[string]any{"createdAt": "2025-03-14T09:30:00Z"}).CreatedAt))
	assert.True(t, want.Equal(n.Normalize(map[string]any{"created_at": "2025-03-14T10:30:00+01:00"}).CreatedAt))
	assert.True(t, want.Equal(n.Normalize(map[string]any{"timestamp": float64(want.Unix())}).CreatedAt))
	assert.True(t, want.Equal(n.Normalize(map[string]any{"date": float64(want.UnixMilli())}).CreatedAt))
}

func TestNormalizeAllSortsNewestFirst(t *testing.T) {
	n := NewNormalizer()

	got := n.NormalizeAll([]map[string]any{
		{"id": "old", "createdAt": "2025-01-01T00:00:00Z"},
		{"id": "new", "createdAt": "2025-06-01T00:00:00Z"},
		{"id": "tie-1", "createdAt": "2025-03-01T00:00:00Z"},
		{"id": "tie-2", "createdAt": "2025-03-01T00:00:00Z"},
	})

	require.Len(t, got, 4)
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"new", "tie-1", "tie-2", "old"}, ids)
}

func TestNotificationFetchOrder(t *testing.T) {
	// le serveur renvoie toujours le plus ancien en premier
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.ListResponse[map[string]any]{
			Items: []map[string]any{
				{"id": "old", "type": "system", "createdAt": "2025-01-01T00:00:00Z"},
				{"id": "new", "type": "match", "createdAt": "2025-06-01T00:00:00Z"},
			},
			Pagination: models.NewPagination(2, 1, 10),
		})
	}))
	defer srv.Close()

	fetch := NotificationFetch(New(Config{BaseURL: srv.URL}), NewNormalizer())

	tests := []struct {
		name  string
		state FilterState
		want  []string
	}{
		{"default sort", FilterState{Page: 1, PageSize: 10, SortField: "createdAt", SortOrder: models.SortDesc}, []string{"new", "old"}},
		{"no sort", FilterState{Page: 1, PageSize: 10}, []string{"new", "old"}},
		{"createdAt ascending", FilterState{Page: 1, PageSize: 10, SortField: "createdAt", SortOrder: models.SortAsc}, []string{"old", "new"}},
		{"other field", FilterState{Page: 1, PageSize: 10, SortField: "type", SortOrder: models.SortDesc}, []string{"old", "new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := fetch(context.Background(), tt.state)
			require.NoError(t, err)
			require.Len(t, page.Items, 2)
			assert.Equal(t, tt.want, []string{page.Items[0].ID, page.Items[1].ID})
		})
	}
}
