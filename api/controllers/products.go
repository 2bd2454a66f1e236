package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/anmawex/dashboard-challenge/api/responses"
	"github.com/anmawex/dashboard-challenge/api/validators"
	"github.com/anmawex/dashboard-challenge/internal/inventory"
	"github.com/anmawex/dashboard-challenge/pkg/catalog"
	pkgerrors "github.com/anmawex/dashboard-challenge/pkg/errors"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
	"github.com/anmawex/dashboard-challenge/pkg/pagination"
)

// CatalogService is the slice of the catalog client the product controllers
// need beyond what the manager already wraps.
type CatalogService interface {
	FetchByID(ctx context.Context, id int64) (*catalog.Product, error)
	Create(ctx context.Context, params catalog.CreateProductParams) (*catalog.Product, error)
	Update(ctx context.Context, id int64, params catalog.UpdateProductParams) (*catalog.Product, error)
	FetchCategories(ctx context.Context) ([]catalog.Category, error)
}

type productResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Price       decimal.Decimal   `json:"price"`
	Description string            `json:"description"`
	CreatedAt   string            `json:"created_at"`
	Images      []string          `json:"images"`
	Category    *catalog.Category `json:"category,omitempty"`
}

func productResponseFrom(p catalog.Product) productResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		CreatedAt:   p.CreationAt.Format(time.RFC3339),
		Images:      images,
		Category:    p.Category,
	}
}

type listProductsResponse struct {
	Items      []productResponse `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
	Phase      string            `json:"phase"`
	Error      string            `json:"error,omitempty"`
}

// ProductsList applies the request's filter and pagination parameters to the
// collection manager and returns the current page of the filtered view.
func ProductsList(mgr *inventory.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parsed, err := validators.ParseListProductsQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mgr.SetSearchTerm(parsed.Search)
		mgr.SetDateRange(inventory.DateRange{Start: parsed.DateFrom, End: parsed.DateTo})
		if parsed.HasPageSize {
			mgr.SetPageSize(parsed.PageSize)
		}
		if parsed.HasPage {
			mgr.SetPage(parsed.Page)
		}

		view := mgr.PaginatedView()
		items := make([]productResponse, 0, len(view))
		for _, product := range view {
			items = append(items, productResponseFrom(product))
		}

		total := mgr.FilteredCount()
		responses.WriteSuccess(w, listProductsResponse{
			Items:      items,
			Page:       mgr.Page() + 1,
			PageSize:   mgr.PageSize(),
			TotalItems: total,
			TotalPages: pagination.TotalPages(total, mgr.PageSize()),
			Phase:      string(mgr.Phase()),
			Error:      mgr.ErrorMessage(),
		})
	}
}

// ProductGet proxies a single-product lookup straight to the catalog.
func ProductGet(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.FetchByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, productResponseFrom(*product))
	}
}

type createProductRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=120"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
}

// ProductCreate registers a product with the catalog and resyncs the
// collection so the new record shows up in the dashboard views.
func ProductCreate(svc CatalogService, mgr *inventory.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.Price.IsPositive() {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero").WithDetails(map[string]string{"price": "must be greater than zero"}))
			return
		}

		created, err := svc.Create(r.Context(), catalog.CreateProductParams{
			Title:       strings.TrimSpace(payload.Title),
			Price:       payload.Price,
			Description: payload.Description,
			CategoryID:  payload.CategoryID,
			ImageURL:    payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mgr.Refresh(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, productResponseFrom(*created))
	}
}

type updateProductRequest struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=120"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url"`
}

func (r updateProductRequest) empty() bool {
	return r.Title == nil && r.Price == nil && r.Description == nil && r.CategoryID == nil && r.ImageURL == nil
}

// ProductUpdate applies a partial mutation through the catalog and resyncs.
func ProductUpdate(svc CatalogService, mgr *inventory.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.empty() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update"))
			return
		}
		if payload.Price != nil && !payload.Price.IsPositive() {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero").WithDetails(map[string]string{"price": "must be greater than zero"}))
			return
		}

		updated, err := svc.Update(r.Context(), id, catalog.UpdateProductParams{
			Title:       payload.Title,
			Price:       payload.Price,
			Description: payload.Description,
			CategoryID:  payload.CategoryID,
			ImageURL:    payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mgr.Refresh(r.Context())
		responses.WriteSuccess(w, productResponseFrom(*updated))
	}
}

// ProductDelete removes the product through the collection manager.
func ProductDelete(mgr *inventory.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !mgr.Remove(r.Context(), id) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeTransport, "unable to delete product, please retry"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"id": id, "deleted": true})
	}
}
