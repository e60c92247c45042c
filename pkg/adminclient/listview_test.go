package adminclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend sert des lignes paginées et enregistre les états demandés
type fakeBackend struct {
	mu     sync.Mutex
	rows   []row
	calls  []FilterState
	failOn int
}

func newFakeBackend(n int) *fakeBackend {
	b := &fakeBackend{}
	for i := 1; i <= n; i++ {
		b.rows = append(b.rows, row{ID: fmt.Sprintf("r%02d", i), Status: "pending"})
	}
	return b
}

func (b *fakeBackend) fetch(ctx context.Context, state FilterState) (PageResult[row], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, state)
	if b.failOn > 0 && len(b.calls) == b.failOn {
		return PageResult[row]{}, errors.New("backend down")
	}

	start := (state.Page - 1) * state.PageSize
	end := min(start+state.PageSize, len(b.rows))
	var items []row
	if start < end {
		items = append(items, b.rows[start:end]...)
	}
	return PageResult[row]{Items: items, Total: int64(len(b.rows)), Page: state.Page, PageSize: state.PageSize}, nil
}

func (b *fakeBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func newTestView(t *testing.T, backend *fakeBackend) (*ListView[row], *RecorderSink) {
	t.Helper()
	sink := &RecorderSink{}
	v := NewListView(context.Background(), Reports, backend.fetch, func(r row) string { return r.ID }, ListViewOptions{
		PageSize: 3,
		Debounce: time.Hour,
		Sink:     sink,
	})
	t.Cleanup(v.Close)

	v.Load()
	v.Wait()
	require.True(t, v.Loaded())
	return v, sink
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestListViewLoadsFirstPage(t *testing.T) {
	v, _ := newTestView(t, newFakeBackend(7))

	assert.Equal(t, []string{"r01", "r02", "r03"}, ids(v.Items()))
	assert.Equal(t, 3, v.Page().PageCount)
	assert.Equal(t, 3, v.Filters().PageCount())
}

func TestListViewPagingClearsSelection(t *testing.T) {
	v, _ := newTestView(t, newFakeBackend(7))
	v.Selection().Add("r01", "r02")

	require.True(t, v.Filters().SetPage(3))
	v.Wait()

	assert.Equal(t, []string{"r07"}, ids(v.Items()))
	assert.Zero(t, v.Selection().Len())
	assert.False(t, v.Filters().SetPage(4))
}

func TestListViewFailedFetchKeepsItems(t *testing.T) {
	backend := newFakeBackend(7)
	backend.failOn = 2
	v, sink := newTestView(t, backend)
	v.Selection().Add("r02")

	require.True(t, v.Filters().SetPage(2))
	v.Wait()

	assert.Equal(t, []string{"r01", "r02", "r03"}, ids(v.Items()))
	assert.True(t, v.Selection().Contains("r02"))
	assert.Equal(t, []string{"backend down"}, sink.Errors())
}

func TestListViewStatusFilterTriggersFetch(t *testing.T) {
	backend := newFakeBackend(4)
	v, _ := newTestView(t, backend)

	require.NoError(t, v.Filters().SetStatusFilter("resolved"))
	v.Wait()

	assert.Equal(t, 2, backend.callCount())
	assert.Equal(t, "resolved", backend.calls[1].StatusFilter)

	require.Error(t, v.Filters().SetStatusFilter("closed"))
	v.Wait()
	assert.Equal(t, 2, backend.callCount())
}

func TestListViewApplyBulkPatchesOnlySucceeded(t *testing.T) {
	v, sink := newTestView(t, newFakeBackend(3))
	v.Selection().Add("r01", "r02", "r03")

	report := v.ApplyBulk(context.Background(), BulkAction[row]{
		Name: ActionSetStatus,
		Run:  failingOn(map[string]bool{"r02": true}, "resolved"),
	})

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Zero(t, v.Selection().Len())

	items := v.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "resolved", items[0].Status)
	assert.Equal(t, "pending", items[1].Status)
	assert.Equal(t, "resolved", items[2].Status)
	assert.Equal(t, []string{"setStatus: partial failure, 2 succeeded, 1 failed"}, sink.Errors())
}

func TestListViewApplyBulkDeleteRemovesSucceeded(t *testing.T) {
	v, sink := newTestView(t, newFakeBackend(3))
	v.Selection().Add("r01", "r03")

	report := v.ApplyBulk(context.Background(), BulkAction[row]{
		Name:    ActionDelete,
		Removes: true,
		Run:     func(ctx context.Context, id string) (*row, error) { return nil, nil },
	})

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, []string{"r02"}, ids(v.Items()))
	assert.Equal(t, int64(1), v.Page().Total)
	assert.Equal(t, []Message{{Level: LevelSuccess, Text: "delete: all 2 item(s) succeeded"}}, sink.Drain())
	assert.Empty(t, sink.Messages())
	assert.Zero(t, v.Selection().Len())
}

func TestListViewApplyBulkUsesPatchWithoutRecord(t *testing.T) {
	v, _ := newTestView(t, newFakeBackend(2))
	v.Selection().Add("r02")

	v.ApplyBulk(context.Background(), BulkAction[row]{
		Name:  ActionMarkRead,
		Run:   func(ctx context.Context, id string) (*row, error) { return nil, nil },
		Patch: func(r row) row { r.Status = "read"; return r },
	})

	assert.Equal(t, "pending", v.Items()[0].Status)
	assert.Equal(t, "read", v.Items()[1].Status)
}

func TestListViewApplyBulkEmptySelection(t *testing.T) {
	v, sink := newTestView(t, newFakeBackend(2))

	report := v.ApplyBulk(context.Background(), BulkAction[row]{Name: ActionDelete, Run: failingOn(nil, "")})

	assert.Zero(t, report.SuccessCount)
	assert.Zero(t, report.ErrorCount)
	assert.Empty(t, sink.Messages())
}

// statusGate bloque chaque chargement jusqu'à la libération de son filtre
type statusGate struct {
	started chan string
	release map[string]chan struct{}
}

func newStatusGate(statuses ...string) *statusGate {
	g := &statusGate{started: make(chan string, len(statuses)), release: map[string]chan struct{}{}}
	for _, s := range statuses {
		g.release[s] = make(chan struct{})
	}
	return g
}

func (g *statusGate) fetch(ctx context.Context, state FilterState) (PageResult[string], error) {
	g.started <- state.StatusFilter
	<-g.release[state.StatusFilter]
	return PageResult[string]{Items: []string{state.StatusFilter}, Total: 1, Page: 1, PageSize: state.PageSize}, nil
}

func TestListViewLatestFilterWinsWhenNewerResolvesFirst(t *testing.T) {
	gate := newStatusGate("", "pending", "resolved")
	close(gate.release[""])

	v := NewListView(context.Background(), Reports, gate.fetch, func(s string) string { return s }, ListViewOptions{
		Debounce: time.Hour,
		Sink:     &RecorderSink{},
	})
	t.Cleanup(v.Close)
	v.Load()
	v.Wait()
	require.Equal(t, "", <-gate.started)

	require.NoError(t, v.Filters().SetStatusFilter("pending"))
	require.NoError(t, v.Filters().SetStatusFilter("resolved"))

	// les deux requêtes sont en vol avant toute réponse
	started := []string{<-gate.started, <-gate.started}
	assert.ElementsMatch(t, []string{"pending", "resolved"}, started)

	close(gate.release["resolved"])
	require.Eventually(t, func() bool {
		items := v.Items()
		return len(items) == 1 && items[0] == "resolved"
	}, time.Second, 5*time.Millisecond)

	close(gate.release["pending"])
	v.Wait()

	assert.Equal(t, []string{"resolved"}, v.Items())
	assert.Equal(t, "resolved", v.Filters().State().StatusFilter)
}

func TestListViewLatestFilterWinsWhenOlderResolvesLast(t *testing.T) {
	gate := newStatusGate("", "pending", "resolved")
	close(gate.release[""])

	v := NewListView(context.Background(), Reports, gate.fetch, func(s string) string { return s }, ListViewOptions{
		Debounce: time.Hour,
		Sink:     &RecorderSink{},
	})
	t.Cleanup(v.Close)
	v.Load()
	v.Wait()
	<-gate.started

	require.NoError(t, v.Filters().SetStatusFilter("pending"))
	require.NoError(t, v.Filters().SetStatusFilter("resolved"))
	<-gate.started
	<-gate.started

	close(gate.release["pending"])
	close(gate.release["resolved"])
	v.Wait()

	assert.Equal(t, []string{"resolved"}, v.Items())
}

func TestListViewRapidFilterChangesShowLatest(t *testing.T) {
	echo := func(ctx context.Context, state FilterState) (PageResult[string], error) {
		return PageResult[string]{Items: []string{state.StatusFilter}, Total: 1, Page: 1, PageSize: state.PageSize}, nil
	}

	for i := 0; i < 200; i++ {
		v := NewListView(context.Background(), Reports, echo, func(s string) string { return s }, ListViewOptions{
			Debounce: time.Hour,
			Sink:     &RecorderSink{},
		})
		require.NoError(t, v.Filters().SetStatusFilter("pending"))
		require.NoError(t, v.Filters().SetStatusFilter("resolved"))
		v.Wait()

		require.Equal(t, []string{"resolved"}, v.Items(), "run %d", i)
		v.Close()
	}
}
