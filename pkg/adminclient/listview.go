package adminclient

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/samber/lo"
)

type ListViewOptions struct {
	PageSize int
	Debounce time.Duration
	Sink     Sink
	// OnUpdate est appelé après chaque page chargée ou modifiée
	OnUpdate func()
}

// ListView relie filtres, chargement et sélection pour une ressource
type ListView[T any] struct {
	ctx       context.Context
	resource  Resource
	holder    *Holder
	fetcher   *Fetcher[T]
	selection *Selection
	idOf      func(T) string
	sink      Sink
	onUpdate  func()

	mu       sync.Mutex
	idle     *sync.Cond
	inflight int
}

func NewListView[T any](ctx context.Context, res Resource, fetch FetchFunc[T], idOf func(T) string, opts ListViewOptions) *ListView[T] {
	if opts.Sink == nil {
		opts.Sink = LogSink{}
	}

	v := &ListView[T]{
		ctx:       ctx,
		resource:  res,
		fetcher:   NewFetcher(fetch, opts.Sink),
		selection: NewSelection(),
		idOf:      idOf,
		sink:      opts.Sink,
		onUpdate:  opts.OnUpdate,
	}
	v.idle = sync.NewCond(&v.mu)
	v.holder = NewHolder(res.Rules, HolderOptions{
		PageSize: opts.PageSize,
		Debounce: opts.Debounce,
		Sink:     opts.Sink,
		OnChange: v.load,
	})
	return v
}

func (v *ListView[T]) Resource() Resource   { return v.resource }
func (v *ListView[T]) Filters() *Holder      { return v.holder }
func (v *ListView[T]) Selection() *Selection { return v.selection }
func (v *ListView[T]) Page() PageResult[T]   { return v.fetcher.Current() }
func (v *ListView[T]) Items() []T            { return v.fetcher.Current().Items }
func (v *ListView[T]) Loaded() bool          { return v.fetcher.Loaded() }
func (v *ListView[T]) ID(item T) string      { return v.idOf(item) }

// Load déclenche le premier chargement
func (v *ListView[T]) Load() {
	v.holder.Refresh()
}

// Wait bloque jusqu'à la fin des chargements en cours
func (v *ListView[T]) Wait() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for v.inflight > 0 {
		v.idle.Wait()
	}
}

func (v *ListView[T]) Close() {
	v.holder.Close()
	v.Wait()
}

func (v *ListView[T]) load(state FilterState) {
	v.mu.Lock()
	v.inflight++
	v.mu.Unlock()

	token := v.fetcher.Begin()
	go func() {
		defer v.done()

		result, err := v.fetcher.Run(v.ctx, token, state)
		if err != nil {
			if !errors.Is(err, ErrStale) {
				v.notify()
			}
			return
		}

		v.selection.Clear()
		v.holder.SetPageCount(result.PageCount)
		v.notify()
	}()
}

func (v *ListView[T]) done() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inflight--
	if v.inflight == 0 {
		v.idle.Broadcast()
	}
}

func (v *ListView[T]) notify() {
	if v.onUpdate != nil {
		v.onUpdate()
	}
}

// ApplyBulk exécute action sur la sélection, met à jour uniquement les
// éléments traités avec succès puis vide la sélection
func (v *ListView[T]) ApplyBulk(ctx context.Context, action BulkAction[T]) BulkReport[T] {
	ids := v.selection.IDs()
	report := Apply(ctx, action, ids)

	succeeded := report.Succeeded()
	if len(succeeded) > 0 {
		v.fetcher.Patch(func(page PageResult[T]) PageResult[T] {
			return patchPage(page, succeeded, action, v.idOf)
		})
	}

	if len(ids) > 0 {
		msg, ok := report.Summary()
		if ok {
			v.sink.Success(msg)
		} else {
			v.sink.Error(msg)
		}
	}

	v.selection.Clear()
	v.notify()
	return report
}

func patchPage[T any](page PageResult[T], succeeded map[string]ItemResult[T], action BulkAction[T], idOf func(T) string) PageResult[T] {
	if action.Removes {
		before := len(page.Items)
		page.Items = lo.Reject(page.Items, func(item T, _ int) bool {
			_, ok := succeeded[idOf(item)]
			return ok
		})
		page.Total = max(0, page.Total-int64(before-len(page.Items)))
		page.PageCount = pageCount(page.Total, page.PageSize)
		return page
	}

	page.Items = lo.Map(page.Items, func(item T, _ int) T {
		res, ok := succeeded[idOf(item)]
		switch {
		case !ok:
			return item
		case res.Record != nil:
			return *res.Record
		case action.Patch != nil:
			return action.Patch(item)
		}
		return item
	})
	return page
}
