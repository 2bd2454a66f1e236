package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is a product grouping assigned by the catalog service.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product mirrors the catalog service's product record. IDs are assigned by
// the catalog and unique within a collection; prices are exact decimals.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CreationAt  time.Time       `json:"creationAt"`
	Images      []string        `json:"images"`
	Category    *Category       `json:"category,omitempty"`
}

// CategoryName returns the category label or empty when unassigned.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// CreateProductParams is the validated payload for a catalog create. The
// single ImageURL field is sent as a one-element images array on the wire.
type CreateProductParams struct {
	Title       string
	Price       decimal.Decimal
	Description string
	CategoryID  int64
	ImageURL    string
}

type createPayload struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"categoryId"`
	Images      []string        `json:"images"`
}

func (p CreateProductParams) payload() createPayload {
	return createPayload{
		Title:       strings.TrimSpace(p.Title),
		Price:       p.Price,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Images:      normalizeImages(p.ImageURL),
	}
}

// UpdateProductParams carries optional mutation values; nil fields are left
// untouched by the catalog service.
type UpdateProductParams struct {
	Title       *string
	Price       *decimal.Decimal
	Description *string
	CategoryID  *int64
	ImageURL    *string
}

func (p UpdateProductParams) payload() map[string]any {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Price != nil {
		body["price"] = *p.Price
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.CategoryID != nil {
		body["categoryId"] = *p.CategoryID
	}
	if p.ImageURL != nil {
		body["images"] = normalizeImages(*p.ImageURL)
	}
	return body
}

func normalizeImages(imageURL string) []string {
	trimmed := strings.TrimSpace(imageURL)
	if trimmed == "" {
		return []string{}
	}
	return []string{trimmed}
}
