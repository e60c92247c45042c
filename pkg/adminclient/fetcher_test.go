package adminclient

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatedFetch struct {
	started chan string
	release map[string]chan struct{}
}

func newGatedFetch(keys ...string) *gatedFetch {
	g := &gatedFetch{started: make(chan string, len(keys)), release: map[string]chan struct{}{}}
	for _, k := range keys {
		g.release[k] = make(chan struct{})
	}
	return g
}

func (g *gatedFetch) fetch(ctx context.Context, state FilterState) (PageResult[string], error) {
	g.started <- state.SearchText
	<-g.release[state.SearchText]
	return PageResult[string]{Items: []string{state.SearchText}, Total: 1, Page: 1, PageSize: state.PageSize}, nil
}

func TestFetcherLastRequestWins(t *testing.T) {
	gate := newGatedFetch("A", "B")
	f := NewFetcher(gate.fetch, &RecorderSink{})

	type outcome struct {
		result PageResult[string]
		err    error
	}
	resA := make(chan outcome, 1)
	resB := make(chan outcome, 1)

	go func() {
		r, err := f.Fetch(context.Background(), FilterState{SearchText: "A", PageSize: 10})
		resA <- outcome{r, err}
	}()
	require.Equal(t, "A", <-gate.started)

	go func() {
		r, err := f.Fetch(context.Background(), FilterState{SearchText: "B", PageSize: 10})
		resB <- outcome{r, err}
	}()
	require.Equal(t, "B", <-gate.started)

	close(gate.release["B"])
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, []string{"B"}, b.result.Items)

	close(gate.release["A"])
	a := <-resA
	assert.ErrorIs(t, a.err, ErrStale)

	assert.Equal(t, []string{"B"}, f.Current().Items)
}

func TestFetcherFailureKeepsPreviousPage(t *testing.T) {
	fail := false
	sink := &RecorderSink{}
	f := NewFetcher(func(ctx context.Context, state FilterState) (PageResult[string], error) {
		if fail {
			return PageResult[string]{}, &APIError{StatusCode: http.StatusBadGateway, Message: "upstream unavailable"}
		}
		return PageResult[string]{Items: []string{"x", "y"}, Total: 2, PageSize: 10}, nil
	}, sink)

	_, err := f.Fetch(context.Background(), FilterState{Page: 1, PageSize: 10})
	require.NoError(t, err)

	fail = true
	result, err := f.Fetch(context.Background(), FilterState{Page: 2, PageSize: 10})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.Equal(t, []string{"x", "y"}, result.Items)
	assert.Equal(t, []string{"x", "y"}, f.Current().Items)
	assert.Equal(t, []string{"upstream unavailable"}, sink.Errors())
	assert.False(t, f.Loading())
}

func TestFetcherComputesPageCount(t *testing.T) {
	f := NewFetcher(func(ctx context.Context, state FilterState) (PageResult[string], error) {
		return PageResult[string]{Total: 95}, nil
	}, &RecorderSink{})

	result, err := f.Fetch(context.Background(), FilterState{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, result.PageCount)
	assert.Equal(t, 10, result.PageSize)
	assert.True(t, f.Loaded())
}

func TestFetcherPlainErrorMessage(t *testing.T) {
	sink := &RecorderSink{}
	f := NewFetcher(func(ctx context.Context, state FilterState) (PageResult[string], error) {
		return PageResult[string]{}, errors.New("connection refused")
	}, sink)

	_, err := f.Fetch(context.Background(), FilterState{PageSize: 10})
	require.Error(t, err)
	assert.False(t, f.Loaded())
	assert.Equal(t, []string{"connection refused"}, sink.Errors())
}
