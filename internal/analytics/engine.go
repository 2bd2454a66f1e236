package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/anmawex/dashboard-challenge/pkg/catalog"
	"github.com/shopspring/decimal"
)

const (
	topListSize        = 5
	titleDisplayLimit  = 30
	uncategorizedLabel = "Uncategorized"
	emptyCategoryLabel = "N/A"
)

// CategoryCount pairs a category label with how many products carry it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PricedProduct is a leaderboard row for the most expensive products.
type PricedProduct struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// RecentProduct is a leaderboard row for the most recently created products.
type RecentProduct struct {
	Title      string    `json:"title"`
	CreationAt time.Time `json:"creationAt"`
}

// Snapshot holds the aggregate statistics shown on the dashboard.
type Snapshot struct {
	TotalProducts        int             `json:"totalProducts"`
	TotalInventoryValue  string          `json:"totalInventoryValue"`
	TopCategory          CategoryCount   `json:"topCategory"`
	CategoryDistribution []CategoryCount `json:"categoryDistribution"`
	TopExpensiveProducts []PricedProduct `json:"topExpensiveProducts"`
	RecentProducts       []RecentProduct `json:"recentProducts"`
}

// Compute derives a snapshot from the product collection. It never mutates
// its input and never fails: an empty collection yields the zero-state
// snapshot. Inventory value is summed with exact decimal arithmetic.
func Compute(products []catalog.Product) *Snapshot {
	snap := &Snapshot{
		TotalProducts:        len(products),
		TotalInventoryValue:  "0.00",
		TopCategory:          CategoryCount{Name: emptyCategoryLabel, Count: 0},
		CategoryDistribution: []CategoryCount{},
		TopExpensiveProducts: []PricedProduct{},
		RecentProducts:       []RecentProduct{},
	}
	if len(products) == 0 {
		return snap
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	snap.TotalInventoryValue = total.StringFixed(2)

	snap.CategoryDistribution = categoryDistribution(products)
	snap.TopCategory = topCategory(snap.CategoryDistribution)
	snap.TopExpensiveProducts = topExpensive(products)
	snap.RecentProducts = mostRecent(products)

	return snap
}

// categoryDistribution groups by category name in first-occurrence order,
// folding uncategorized products under a fixed label.
func categoryDistribution(products []catalog.Product) []CategoryCount {
	counts := make(map[string]int, len(products))
	order := make([]string, 0, len(products))

	for _, p := range products {
		name := p.CategoryName()
		if name == "" {
			name = uncategorizedLabel
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	distribution := make([]CategoryCount, 0, len(order))
	for _, name := range order {
		distribution = append(distribution, CategoryCount{Name: name, Count: counts[name]})
	}
	return distribution
}

// topCategory picks the first category reaching the maximum count, so ties
// resolve to whichever category was seen first.
func topCategory(distribution []CategoryCount) CategoryCount {
	top := CategoryCount{Name: emptyCategoryLabel, Count: 0}
	for _, entry := range distribution {
		if entry.Count > top.Count {
			top = entry
		}
	}
	return top
}

func topExpensive(products []catalog.Product) []PricedProduct {
	ranked := make([]catalog.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price.GreaterThan(ranked[j].Price)
	})

	rows := make([]PricedProduct, 0, topListSize)
	for _, p := range ranked {
		if len(rows) == topListSize {
			break
		}
		rows = append(rows, PricedProduct{Title: truncateTitle(p.Title), Price: p.Price})
	}
	return rows
}

func mostRecent(products []catalog.Product) []RecentProduct {
	ranked := make([]catalog.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CreationAt.After(ranked[j].CreationAt)
	})

	rows := make([]RecentProduct, 0, topListSize)
	for _, p := range ranked {
		if len(rows) == topListSize {
			break
		}
		rows = append(rows, RecentProduct{Title: p.Title, CreationAt: p.CreationAt})
	}
	return rows
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titleDisplayLimit {
		return title
	}
	return string(runes[:titleDisplayLimit]) + "..."
}

// Engine memoizes Compute by input identity. Dashboard views request the
// snapshot on every render, so recomputation is skipped while the collection
// reference is unchanged.
type Engine struct {
	mu     sync.Mutex
	last   []catalog.Product
	cached *Snapshot
}

func NewEngine() *Engine {
	return &Engine{}
}

// Snapshot returns the cached result when the slice identity matches the
// previous call, otherwise recomputes and caches.
func (e *Engine) Snapshot(products []catalog.Product) *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cached != nil && sameCollection(products, e.last) {
		return e.cached
	}

	e.cached = Compute(products)
	e.last = products
	return e.cached
}

func sameCollection(a, b []catalog.Product) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
