package adminclient

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"dating-admin/pkg/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Notification est la forme unifiée d'une notification, quelle que soit
// la forme de l'enregistrement source
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	SenderName string    `json:"senderName"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

const (
	fallbackTitle  = "Notification"
	fallbackText   = "No content"
	fallbackSender = "Unknown"
	fallbackType   = "system"
)

var defaultTitles = map[string]string{
	"message":  "New message",
	"match":    "New match",
	"like":     "New like",
	"blindate": "Blind date update",
	"report":   "New report",
	"system":   "System notification",
}

type raw = map[string]any

// accessor extrait une valeur texte; "" signifie absente
type accessor func(raw) string

func firstNonEmpty(r raw, accessors []accessor) string {
	for _, get := range accessors {
		if v := get(r); v != "" {
			return v
		}
	}
	return ""
}

func lookup(r raw, path ...string) (any, bool) {
	var cur any = r
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// field lit une chaîne (ou un nombre) au chemin donné
func field(path ...string) accessor {
	return func(r raw) string {
		v, ok := lookup(r, path...)
		if !ok {
			return ""
		}
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val)
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		case int:
			return strconv.Itoa(val)
		case int64:
			return strconv.FormatInt(val, 10)
		}
		return ""
	}
}

var personNameKeys = []string{"fullName", "full_name", "name", "username", "email"}

// person lit un expéditeur donné soit en texte, soit en objet
func person(path ...string) accessor {
	return func(r raw) string {
		v, ok := lookup(r, path...)
		if !ok {
			return ""
		}
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val)
		case map[string]any:
			return firstNonEmpty(val, lo.Map(personNameKeys, func(key string, _ int) accessor {
				return field(key)
			}))
		}
		return ""
	}
}

var (
	idAccessors    = []accessor{field("id"), field("_id"), field("notificationId")}
	typeAccessors  = []accessor{field("type"), field("kind")}
	titleAccessors = []accessor{field("title"), field("subject"), field("heading")}

	textAccessors = []accessor{
		field("content"), field("text"), field("message"), field("body"),
		field("data", "content"), field("data", "text"), field("data", "message"),
	}
	senderAccessors = []accessor{
		person("sender"), person("from"), person("user"),
		person("data", "sender"), person("data", "from"), person("data", "user"),
	}

	timeKeys = []string{"createdAt", "created_at", "timestamp", "date"}
	readKeys = []string{"isRead", "is_read", "read"}
)

// Normalizer convertit des enregistrements bruts en Notification
type Normalizer struct {
	newID func() string
}

func NewNormalizer() *Normalizer {
	return &Normalizer{newID: func() string { return "notif-" + uuid.NewString() }}
}

func (n *Normalizer) Normalize(r raw) Notification {
	id := firstNonEmpty(r, idAccessors)
	if id == "" {
		id = n.newID()
	}

	kind := firstNonEmpty(r, typeAccessors)
	if kind == "" {
		kind = fallbackType
	}

	title := firstNonEmpty(r, titleAccessors)
	if title == "" {
		title = lo.ValueOr(defaultTitles, kind, fallbackTitle)
	}

	text := firstNonEmpty(r, textAccessors)
	if text == "" {
		text = fallbackText
	}

	sender := firstNonEmpty(r, senderAccessors)
	if sender == "" {
		sender = fallbackSender
	}

	return Notification{
		ID:         id,
		Type:       kind,
		Title:      title,
		Text:       text,
		SenderName: sender,
		CreatedAt:  createdAt(r),
		Read:       readFlag(r),
	}
}

// NormalizeAll normalise puis trie du plus récent au plus ancien
func (n *Normalizer) NormalizeAll(records []map[string]any) []Notification {
	out := n.normalizeEach(records)
	SortByCreatedDesc(out)
	return out
}

func (n *Normalizer) normalizeEach(records []map[string]any) []Notification {
	return lo.Map(records, func(r map[string]any, _ int) Notification {
		return n.Normalize(r)
	})
}

// SortByCreatedDesc trie en place, les égalités gardent l'ordre d'arrivée
func SortByCreatedDesc(ns []Notification) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].CreatedAt.After(ns[j].CreatedAt)
	})
}

func createdAt(r raw) time.Time {
	for _, key := range timeKeys {
		v, ok := r[key]
		if !ok {
			continue
		}
		if t, ok := parseTime(v); ok {
			return t
		}
	}
	return time.Time{}
}

func parseTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, val); err == nil {
			return t, true
		}
		if secs, err := strconv.ParseFloat(val, 64); err == nil {
			return unixTime(secs), true
		}
	case float64:
		return unixTime(val), true
	}
	return time.Time{}, false
}

// unixTime accepte des secondes ou des millisecondes
func unixTime(v float64) time.Time {
	if math.Abs(v) >= 1e12 {
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Unix(int64(v), 0).UTC()
}

func readFlag(r raw) bool {
	for _, key := range readKeys {
		if b, ok := r[key].(bool); ok {
			return b
		}
	}
	return false
}

// newestFirst indique si la page doit être présentée dans l'ordre par défaut;
// tout autre tri choisi par l'opérateur est celui renvoyé par l'API
func newestFirst(state FilterState) bool {
	switch state.SortField {
	case "":
		return true
	case models.NotificationListRules.DefaultSort:
		return state.SortOrder != models.SortAsc
	}
	return false
}

// NotificationFetch liste les notifications brutes et les normalise
func NotificationFetch(c *Client, n *Normalizer) FetchFunc[Notification] {
	return func(ctx context.Context, state FilterState) (PageResult[Notification], error) {
		page, err := ListPage[map[string]any](ctx, c, Notifications, state)
		if err != nil {
			return PageResult[Notification]{}, fmt.Errorf("failed to list notifications: %w", err)
		}
		items := n.normalizeEach(page.Items)
		if newestFirst(state) {
			SortByCreatedDesc(items)
		}
		return PageResult[Notification]{
			Items:     items,
			Total:     page.Total,
			Page:      page.Page,
			PageSize:  page.PageSize,
			PageCount: page.PageCount,
		}, nil
	}
}
