package inventory

import (
	"testing"
	"time"

	"github.com/anmawex/dashboard-challenge/pkg/catalog"
	"github.com/shopspring/decimal"
)

func newProduct(id int64, title string, created time.Time) catalog.Product {
	return catalog.Product{ID: id, Title: title, Price: decimal.NewFromInt(1), CreationAt: created}
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestFilterProductsNoFiltersReturnsAllInOrder(t *testing.T) {
	products := []catalog.Product{
		newProduct(1, "Red Shirt", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
		newProduct(2, "Blue Hat", time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)),
		newProduct(3, "Green Shirt", time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)),
	}

	got := filterProducts(products, "", DateRange{})
	if len(got) != 3 {
		t.Fatalf("expected all products, got %d", len(got))
	}
	for i := range products {
		if got[i].ID != products[i].ID {
			t.Fatalf("order not preserved at %d: %+v", i, got)
		}
	}
}

func TestFilterProductsSearchIsCaseInsensitiveSubstring(t *testing.T) {
	products := []catalog.Product{
		newProduct(1, "Red Shirt", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
		newProduct(2, "Blue Hat", time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)),
	}

	got := filterProducts(products, "Shirt", DateRange{})
	if len(got) != 1 || got[0].Title != "Red Shirt" {
		t.Fatalf("expected exactly Red Shirt, got %+v", got)
	}

	got = filterProducts(products, "sHiRt", DateRange{})
	if len(got) != 1 {
		t.Fatalf("search should be case-insensitive, got %+v", got)
	}
}

func TestFilterProductsMatchesTermVerbatim(t *testing.T) {
	products := []catalog.Product{
		newProduct(1, "Red Shirt", time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
		newProduct(2, "Mug", time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)),
	}

	// A whitespace term is a substring match like any other, not a wildcard.
	got := filterProducts(products, " ", DateRange{})
	if len(got) != 1 || got[0].Title != "Red Shirt" {
		t.Fatalf("expected only titles containing a space, got %+v", got)
	}
}

func TestFilterProductsDateBoundsAreInclusiveWholeDays(t *testing.T) {
	products := []catalog.Product{
		newProduct(1, "Early", time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)),
		newProduct(2, "LateOnEndDay", time.Date(2024, 1, 5, 23, 45, 0, 0, time.UTC)),
		newProduct(3, "After", time.Date(2024, 1, 6, 0, 15, 0, 0, time.UTC)),
	}

	dates := DateRange{
		Start: datePtr(time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)),
		End:   datePtr(time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)),
	}

	got := filterProducts(products, "", dates)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %+v", got)
	}
	// The start bound snaps to the beginning of Jan 1 and the end bound
	// covers all of Jan 5.
	if got[0].Title != "Early" || got[1].Title != "LateOnEndDay" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestFilterProductsInvertedRangeYieldsEmpty(t *testing.T) {
	products := []catalog.Product{
		newProduct(1, "Red Shirt", time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)),
	}

	dates := DateRange{
		Start: datePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		End:   datePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := filterProducts(products, "Shirt", dates)
	if len(got) != 0 {
		t.Fatalf("inverted range must match nothing, got %+v", got)
	}
}

func TestFilterProductsBoundsAreIndependent(t *testing.T) {
	products := []catalog.Product{
		newProduct(1, "Old", time.Date(2023, 12, 1, 8, 0, 0, 0, time.UTC)),
		newProduct(2, "New", time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)),
	}

	onlyStart := DateRange{Start: datePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}
	if got := filterProducts(products, "", onlyStart); len(got) != 1 || got[0].Title != "New" {
		t.Fatalf("start-only filter failed: %+v", got)
	}

	onlyEnd := DateRange{End: datePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}
	if got := filterProducts(products, "", onlyEnd); len(got) != 1 || got[0].Title != "Old" {
		t.Fatalf("end-only filter failed: %+v", got)
	}
}
