package adminclient

import (
	"context"
	"errors"
	"sync"

	"dating-admin/internal/logutils"
)

// ErrStale signale une réponse dépassée par une requête plus récente
var ErrStale = errors.New("stale response discarded")

// PageResult est une page de résultats telle qu'affichée
type PageResult[T any] struct {
	Items     []T
	Total     int64
	Page      int
	PageSize  int
	PageCount int
}

type FetchFunc[T any] func(ctx context.Context, state FilterState) (PageResult[T], error)

// Fetcher exécute les chargements de liste; seule la réponse de la
// requête la plus récente est retenue
type Fetcher[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	sink    Sink
	seq     uint64
	current PageResult[T]
	loaded  bool
	loading bool
}

func NewFetcher[T any](fetch FetchFunc[T], sink Sink) *Fetcher[T] {
	if sink == nil {
		sink = LogSink{}
	}
	return &Fetcher[T]{fetch: fetch, sink: sink}
}

// Fetch charge la page décrite par state. En cas d'échec le résultat
// précédent est conservé et l'erreur est transmise au sink.
func (f *Fetcher[T]) Fetch(ctx context.Context, state FilterState) (PageResult[T], error) {
	token := f.Begin()
	return f.Run(ctx, token, state)
}

// Begin réserve le numéro de la prochaine requête. L'appelant doit le
// prendre dans l'ordre où les requêtes sont émises.
func (f *Fetcher[T]) Begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.loading = true
	return f.seq
}

// Run exécute la requête réservée par Begin et n'applique son résultat que
// si token est toujours le plus récent
func (f *Fetcher[T]) Run(ctx context.Context, token uint64, state FilterState) (PageResult[T], error) {
	result, err := f.fetch(ctx, state)
	return f.resolve(token, state, result, err)
}

func (f *Fetcher[T]) resolve(token uint64, state FilterState, result PageResult[T], err error) (PageResult[T], error) {
	f.mu.Lock()
	if token != f.seq {
		f.mu.Unlock()
		logutils.Log.Debugf("Fetcher: discarding response %d, latest is %d", token, f.seq)
		return PageResult[T]{}, ErrStale
	}
	f.loading = false
	if err != nil {
		previous := f.current
		f.mu.Unlock()
		f.sink.Error(ErrorMessage(err))
		return previous, err
	}

	if result.PageSize <= 0 {
		result.PageSize = state.PageSize
	}
	result.PageCount = pageCount(result.Total, result.PageSize)
	f.current = result
	f.loaded = true
	f.mu.Unlock()

	return result, nil
}

// Current retourne la dernière page chargée avec succès
func (f *Fetcher[T]) Current() PageResult[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *Fetcher[T]) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *Fetcher[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Patch modifie la page courante sur place
func (f *Fetcher[T]) Patch(fn func(PageResult[T]) PageResult[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = fn(f.current)
}
