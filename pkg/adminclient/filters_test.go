package adminclient

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"dating-admin/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateRecorder struct {
	mu     sync.Mutex
	states []FilterState
}

func (r *stateRecorder) record(s FilterState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) all() []FilterState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FilterState(nil), r.states...)
}

func (r *stateRecorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = nil
}

func newTestHolder(debounce time.Duration) (*Holder, *stateRecorder, *RecorderSink) {
	rec := &stateRecorder{}
	sink := &RecorderSink{}
	h := NewHolder(models.UserListRules, HolderOptions{
		PageSize: 10,
		Debounce: debounce,
		Sink:     sink,
		OnChange: rec.record,
	})
	return h, rec, sink
}

func TestNewHolderDefaults(t *testing.T) {
	h, _, _ := newTestHolder(0)

	state := h.State()
	assert.Equal(t, 1, state.Page)
	assert.Equal(t, 10, state.PageSize)
	assert.Equal(t, "createdAt", state.SortField)
	assert.Equal(t, models.SortDesc, state.SortOrder)
}

func TestSetPageStaysInRange(t *testing.T) {
	h, rec, _ := newTestHolder(0)
	h.SetPageCount(5)

	assert.False(t, h.SetPage(0))
	assert.False(t, h.SetPage(6))
	assert.False(t, h.SetPage(-3))
	assert.Empty(t, rec.all())

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := rng.Intn(12) - 3
		before := h.State().Page
		changed := h.SetPage(n)

		page := h.State().Page
		assert.GreaterOrEqual(t, page, 1)
		assert.LessOrEqual(t, page, 5)
		if n < 1 || n > 5 {
			assert.False(t, changed)
			assert.Equal(t, before, page)
		}
	}
}

func TestSetPageWithoutResults(t *testing.T) {
	h, rec, _ := newTestHolder(0)

	assert.False(t, h.SetPage(2))
	assert.Equal(t, 1, h.State().Page)
	assert.Empty(t, rec.all())
}

func TestSetSortFieldToggle(t *testing.T) {
	h, rec, _ := newTestHolder(0)
	original := h.State().SortOrder

	require.NoError(t, h.SetSortField("createdAt"))
	assert.Equal(t, original.Toggle(), h.State().SortOrder)
	require.NoError(t, h.SetSortField("createdAt"))
	assert.Equal(t, original, h.State().SortOrder)

	require.NoError(t, h.SetSortField("createdAt"))
	require.NoError(t, h.SetSortField("email"))
	assert.Equal(t, "email", h.State().SortField)
	assert.Equal(t, models.SortDesc, h.State().SortOrder)
	assert.Len(t, rec.all(), 4)
}

func TestSetSortFieldResetsPage(t *testing.T) {
	h, _, _ := newTestHolder(0)
	h.SetPageCount(4)
	require.True(t, h.SetPage(3))

	require.NoError(t, h.SetSortField("city"))
	assert.Equal(t, 1, h.State().Page)
}

func TestSetSortFieldRejectsUnknown(t *testing.T) {
	h, rec, sink := newTestHolder(0)

	err := h.SetSortField("password")
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, "createdAt", h.State().SortField)
	assert.Empty(t, rec.all())
	assert.Len(t, sink.Errors(), 1)
}

func TestSetStatusFilter(t *testing.T) {
	h, rec, sink := newTestHolder(0)
	h.SetPageCount(3)
	require.True(t, h.SetPage(2))
	rec.reset()

	require.NoError(t, h.SetStatusFilter(models.UserStatusBanned))
	states := rec.all()
	require.Len(t, states, 1)
	assert.Equal(t, "banned", states[0].StatusFilter)
	assert.Equal(t, 1, states[0].Page)

	err := h.SetStatusFilter("archived")
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.Equal(t, "banned", h.State().StatusFilter)
	assert.Len(t, rec.all(), 1)
	assert.Equal(t, []string{`unknown status "archived": invalid filter`}, sink.Errors())

	require.NoError(t, h.SetStatusFilter(""))
	assert.Empty(t, h.State().StatusFilter)
}

func TestSearchIsDebounced(t *testing.T) {
	h, rec, _ := newTestHolder(500 * time.Millisecond)
	defer h.Close()

	for _, text := range []string{"a", "ab", "abc"} {
		h.SetSearchText(text)
		assert.Equal(t, text, h.SearchInput())
		time.Sleep(100 * time.Millisecond)
	}
	assert.Empty(t, rec.all())
	assert.Empty(t, h.State().SearchText)

	require.Eventually(t, func() bool { return len(rec.all()) == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	states := rec.all()
	require.Len(t, states, 1)
	assert.Equal(t, "abc", states[0].SearchText)
	assert.Equal(t, 1, states[0].Page)
}

func TestFlushSearch(t *testing.T) {
	h, rec, _ := newTestHolder(time.Hour)
	defer h.Close()

	h.SetSearchText("lyon")
	h.FlushSearch()

	states := rec.all()
	require.Len(t, states, 1)
	assert.Equal(t, "lyon", states[0].SearchText)

	h.FlushSearch()
	assert.Len(t, rec.all(), 1)
}

func TestSetPageCountClamps(t *testing.T) {
	h, rec, _ := newTestHolder(0)
	h.SetPageCount(5)
	require.True(t, h.SetPage(5))
	rec.reset()

	h.SetPageCount(3)
	assert.Equal(t, 3, h.State().Page)
	require.Len(t, rec.all(), 1)

	h.SetPageCount(0)
	assert.Equal(t, 1, h.State().Page)
	assert.Len(t, rec.all(), 2)

	h.SetPageCount(8)
	assert.Equal(t, 1, h.State().Page)
	assert.Len(t, rec.all(), 2)
}

func TestSetPageSize(t *testing.T) {
	h, _, _ := newTestHolder(0)

	require.NoError(t, h.SetPageSize(25))
	assert.Equal(t, 25, h.State().PageSize)
	assert.ErrorIs(t, h.SetPageSize(0), ErrInvalidFilter)
}
