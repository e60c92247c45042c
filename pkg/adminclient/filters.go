package adminclient

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"dating-admin/pkg/models"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultPageSize = 10
)

var ErrInvalidFilter = errors.New("invalid filter")

// FilterState est l'état de requête d'une vue de liste
type FilterState struct {
	Page         int
	PageSize     int
	SortField    string
	SortOrder    models.SortOrder
	SearchText   string
	StatusFilter string
}

type HolderOptions struct {
	PageSize int
	Debounce time.Duration
	Sink     Sink
	// OnChange est appelé à chaque changement demandant un rechargement; il ne
	// doit pas modifier le Holder de façon synchrone
	OnChange func(FilterState)
}

// Holder détient l'état des filtres d'une vue. La saisie de recherche est
// affichée immédiatement mais ne devient effective qu'après Debounce sans frappe.
type Holder struct {
	mu          sync.Mutex
	emitMu      sync.Mutex
	rules       models.ListRules
	state       FilterState
	searchInput string
	searchGen   uint64
	timer       *time.Timer
	pageCount   int
	debounce    time.Duration
	sink        Sink
	onChange    func(FilterState)
}

func NewHolder(rules models.ListRules, opts HolderOptions) *Holder {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Sink == nil {
		opts.Sink = LogSink{}
	}
	return &Holder{
		rules: rules,
		state: FilterState{
			Page:      1,
			PageSize:  opts.PageSize,
			SortField: rules.DefaultSort,
			SortOrder: models.SortDesc,
		},
		debounce: opts.Debounce,
		sink:     opts.Sink,
		onChange: opts.OnChange,
	}
}

func (h *Holder) State() FilterState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// SearchInput retourne le texte saisi, éventuellement pas encore appliqué
func (h *Holder) SearchInput() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.searchInput
}

func (h *Holder) PageCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pageCount
}

// emit transmet l'état courant, relu sous emitMu: les appels à OnChange
// se font dans l'ordre des modifications et le dernier porte l'état final
func (h *Holder) emit() {
	if h.onChange == nil {
		return
	}
	h.emitMu.Lock()
	defer h.emitMu.Unlock()
	h.onChange(h.State())
}

// SetSearchText met à jour la saisie et réarme la temporisation
func (h *Holder) SetSearchText(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.searchInput = text
	h.searchGen++
	gen := h.searchGen
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.debounce, func() { h.commitSearch(gen) })
}

// FlushSearch applique immédiatement la saisie en attente
func (h *Holder) FlushSearch() {
	h.mu.Lock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.searchGen++
	gen := h.searchGen
	h.mu.Unlock()
	h.commitSearch(gen)
}

func (h *Holder) commitSearch(gen uint64) {
	h.mu.Lock()
	if gen != h.searchGen || h.searchInput == h.state.SearchText {
		h.mu.Unlock()
		return
	}
	h.state.SearchText = h.searchInput
	h.state.Page = 1
	h.mu.Unlock()

	h.emit()
}

// SetStatusFilter applique un statut connu de la ressource ("" = tous)
func (h *Holder) SetStatusFilter(status string) error {
	if !h.rules.AllowsStatus(status) {
		err := fmt.Errorf("unknown status %q: %w", status, ErrInvalidFilter)
		h.sink.Error(err.Error())
		return err
	}

	h.mu.Lock()
	h.state.StatusFilter = status
	h.state.Page = 1
	h.mu.Unlock()

	h.emit()
	return nil
}

// SetSortField inverse l'ordre si le champ est déjà actif, sinon trie par
// ce champ en ordre décroissant
func (h *Holder) SetSortField(field string) error {
	if !h.rules.AllowsSort(field) {
		err := fmt.Errorf("unknown sort field %q: %w", field, ErrInvalidFilter)
		h.sink.Error(err.Error())
		return err
	}

	h.mu.Lock()
	if h.state.SortField == field {
		h.state.SortOrder = h.state.SortOrder.Toggle()
	} else {
		h.state.SortField = field
		h.state.SortOrder = models.SortDesc
	}
	h.state.Page = 1
	h.mu.Unlock()

	h.emit()
	return nil
}

// SetPage change de page; sans effet hors de [1, pageCount]
func (h *Holder) SetPage(page int) bool {
	h.mu.Lock()
	if page < 1 || page > max(1, h.pageCount) || page == h.state.Page {
		h.mu.Unlock()
		return false
	}
	h.state.Page = page
	h.mu.Unlock()

	h.emit()
	return true
}

func (h *Holder) SetPageSize(size int) error {
	if size <= 0 {
		err := fmt.Errorf("page size must be positive, got %d: %w", size, ErrInvalidFilter)
		h.sink.Error(err.Error())
		return err
	}

	h.mu.Lock()
	h.state.PageSize = size
	h.state.Page = 1
	h.mu.Unlock()

	h.emit()
	return nil
}

// SetPageCount enregistre le nombre de pages d'un résultat et ramène la page
// courante dans les bornes si besoin
func (h *Holder) SetPageCount(count int) {
	h.mu.Lock()
	h.pageCount = max(0, count)
	clamped := min(max(1, h.state.Page), max(1, h.pageCount))
	if clamped == h.state.Page {
		h.mu.Unlock()
		return
	}
	h.state.Page = clamped
	h.mu.Unlock()

	h.emit()
}

// Refresh redemande la page courante sans rien changer
func (h *Holder) Refresh() {
	h.emit()
}

// Close annule une recherche en attente
func (h *Holder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.searchGen++
}
