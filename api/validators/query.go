package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	pkgerrors "github.com/anmawex/dashboard-challenge/pkg/errors"
	"github.com/anmawex/dashboard-challenge/pkg/pagination"
)

const queryDateLayout = "2006-01-02"

// ListProductsQuery carries the parsed filter and pagination parameters of a
// product list request. Absent parameters keep their zero values so callers
// can distinguish "not provided" from an explicit value.
type ListProductsQuery struct {
	Search      string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	HasPage     bool
	PageSize    int
	HasPageSize bool
}

// ParseListProductsQuery validates the supported query parameters, collecting
// every failure into a single validation error.
func ParseListProductsQuery(r *http.Request) (ListProductsQuery, error) {
	parsed := ListProductsQuery{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}

	var errs error
	fields := map[string]string{}

	if from, ok, err := parseQueryDate(r, "date_from"); err != nil {
		errs = multierr.Append(errs, err)
		fields["date_from"] = "must be a date in YYYY-MM-DD format"
	} else if ok {
		parsed.DateFrom = &from
	}

	if to, ok, err := parseQueryDate(r, "date_to"); err != nil {
		errs = multierr.Append(errs, err)
		fields["date_to"] = "must be a date in YYYY-MM-DD format"
	} else if ok {
		parsed.DateTo = &to
	}

	if page, ok, err := parseQueryInt(r, "page", 1, 1<<30); err != nil {
		errs = multierr.Append(errs, err)
		fields["page"] = "must be a positive integer"
	} else if ok {
		parsed.Page = page - 1
		parsed.HasPage = true
	}

	if size, ok, err := parseQueryInt(r, "page_size", 1, pagination.MaxPageSize); err != nil {
		errs = multierr.Append(errs, err)
		fields["page_size"] = "must be between 1 and " + strconv.Itoa(pagination.MaxPageSize)
	} else if ok {
		parsed.PageSize = size
		parsed.HasPageSize = true
	}

	if errs != nil {
		return ListProductsQuery{}, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid query parameters").WithDetails(fields)
	}
	return parsed, nil
}

// ParseIDParam parses a positive numeric path parameter.
func ParseIDParam(raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer").WithDetails(map[string]any{"field": "id"})
	}
	return value, nil
}

func parseQueryDate(r *http.Request, key string) (time.Time, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, false, nil
	}
	value, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return time.Time{}, false, pkgerrors.New(pkgerrors.CodeValidation, key+" must use YYYY-MM-DD")
	}
	return value, true, nil
}

func parseQueryInt(r *http.Request, key string, min, max int) (int, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, pkgerrors.New(pkgerrors.CodeValidation, key+" must be numeric")
	}
	if value < min || value > max {
		return 0, false, pkgerrors.New(pkgerrors.CodeValidation, key+" out of range")
	}
	return value, true, nil
}
