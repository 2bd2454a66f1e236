package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/anmawex/dashboard-challenge/internal/analytics"
	"github.com/anmawex/dashboard-challenge/pkg/catalog"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
	"github.com/anmawex/dashboard-challenge/pkg/pagination"
)

// Phase tracks the manager's load state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// loadErrorMessage is the generic user-facing string for failed loads; the
// underlying cause goes to the log, not to the UI.
const loadErrorMessage = "unable to load products from the catalog, please retry"

// CatalogSource is the slice of the catalog client the manager needs.
type CatalogSource interface {
	FetchAll(ctx context.Context) ([]catalog.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Manager owns the authoritative in-memory product collection and every view
// derived from it. All other components receive read-only snapshots; mutation
// happens only through Load (full replacement) and Remove (single delete).
type Manager struct {
	mu     sync.Mutex
	source CatalogSource
	logg   *logger.Logger
	engine *analytics.Engine

	products []catalog.Product
	phase    Phase
	errMsg   string

	search   string
	dates    DateRange
	page     int
	pageSize int

	// loadSeq guards against an in-flight load resolving after a newer one
	// and overwriting fresher data.
	loadSeq uint64
}

// NewManager builds a collection manager around the given catalog source.
func NewManager(source CatalogSource, logg *logger.Logger, defaultPageSize int) (*Manager, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		source:   source,
		logg:     logg,
		engine:   analytics.NewEngine(),
		phase:    PhaseIdle,
		pageSize: pagination.NormalizePageSize(defaultPageSize),
	}, nil
}

// Load fetches the full product collection and replaces the authoritative
// set on success. On failure the previous set is preserved and a user-facing
// error message is exposed instead. When a second Load supersedes this one,
// the stale result is discarded (last caller wins).
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	m.loadSeq++
	seq := m.loadSeq
	m.phase = PhaseLoading
	m.mu.Unlock()

	products, err := m.source.FetchAll(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.loadSeq {
		m.logg.Warn(m.logg.WithField(ctx, "load_seq", seq), "discarding superseded catalog load")
		return
	}

	if err != nil {
		m.phase = PhaseError
		m.errMsg = loadErrorMessage
		m.logg.Error(ctx, "catalog load failed", err)
		return
	}

	m.products = products
	m.phase = PhaseReady
	m.errMsg = ""
	m.logg.Info(m.logg.WithField(ctx, "count", len(products)), "catalog load complete")
}

// Refresh forces a resync, e.g. after a create or update performed directly
// against the catalog client.
func (m *Manager) Refresh(ctx context.Context) {
	m.Load(ctx)
}

// Remove deletes the product from the catalog and, on success, drops it from
// the authoritative set. Removing an id that is not in the set is a no-op.
// A catalog failure leaves the set untouched and reports false.
func (m *Manager) Remove(ctx context.Context, id int64) bool {
	if err := m.source.Delete(ctx, id); err != nil {
		m.logg.Error(m.logg.WithProductID(ctx, id), "catalog delete failed", err)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i:i], m.products[i+1:]...)
			break
		}
	}
	return true
}

// SetSearchTerm updates the title filter and resets to the first page so the
// view cannot land past the end of a shrunken result.
func (m *Manager) SetSearchTerm(term string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = term
	m.page = 0
}

// SetDateRange updates the creation-date filter and resets to the first page.
func (m *Manager) SetDateRange(r DateRange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dates = r
	m.page = 0
}

// SetPage moves the pagination window; negative values floor at zero.
func (m *Manager) SetPage(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = pagination.NormalizePage(page)
}

// SetPageSize changes the window size and resets to the first page.
func (m *Manager) SetPageSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSize = pagination.NormalizePageSize(size)
	m.page = 0
}

// Products returns the authoritative collection snapshot. Callers must treat
// it as immutable.
func (m *Manager) Products() []catalog.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products
}

// FilteredView returns the subset of the authoritative set matching the
// current search term and date range, in fetch order.
func (m *Manager) FilteredView() []catalog.Product {
	m.mu.Lock()
	products, search, dates := m.products, m.search, m.dates
	m.mu.Unlock()

	return filterProducts(products, search, dates)
}

// PaginatedView slices the filtered view to the current page window. A page
// past the end of the filtered result yields an empty slice.
func (m *Manager) PaginatedView() []catalog.Product {
	m.mu.Lock()
	products, search, dates := m.products, m.search, m.dates
	page, size := m.page, m.pageSize
	m.mu.Unlock()

	filtered := filterProducts(products, search, dates)
	start, end := pagination.Window(page, size, len(filtered))
	return filtered[start:end]
}

// FilteredCount reports how many products the current filters match.
func (m *Manager) FilteredCount() int {
	return len(m.FilteredView())
}

// Metrics returns the dashboard snapshot for the authoritative set, reusing
// the cached result while the collection is unchanged.
func (m *Manager) Metrics() *analytics.Snapshot {
	return m.engine.Snapshot(m.Products())
}

func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Manager) Loading() bool {
	return m.Phase() == PhaseLoading
}

// ErrorMessage returns the user-facing error from the last failed load, or
// empty when the last load succeeded.
func (m *Manager) ErrorMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg
}

func (m *Manager) SearchTerm() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.search
}

func (m *Manager) Dates() DateRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dates
}

func (m *Manager) Page() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page
}

func (m *Manager) PageSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pageSize
}
