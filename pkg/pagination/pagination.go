package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many items any page can request.
	MaxPageSize = 100
)

// Params holds offset pagination inputs from controllers or views.
type Params struct {
	Page     int
	PageSize int
}

// NormalizePage floors the page index at zero.
func NormalizePage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

// NormalizePageSize enforces the configured default and maximum sizes.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Window computes the half-open [start, end) slice bounds for a page over a
// collection of the given length. A page past the end yields start == end.
func Window(page, size, length int) (int, int) {
	page = NormalizePage(page)
	size = NormalizePageSize(size)

	start := page * size
	if start >= length {
		return length, length
	}
	end := start + size
	if end > length {
		end = length
	}
	return start, end
}

// TotalPages reports how many pages the collection spans at the given size.
func TotalPages(length, size int) int {
	size = NormalizePageSize(size)
	if length == 0 {
		return 0
	}
	return (length + size - 1) / size
}
