// Package pagination computes client-side pages over a locally-held full
// result set. List screens fetch a collection once and window it here; the
// backend is not consulted again while paging.
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// Params holds validated pagination parameters.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Clamp normalizes raw page/limit values into valid Params.
func Clamp(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Pages returns the number of pages needed for total items under p.Limit.
// An empty collection still has one (empty) page.
func (p Params) Pages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.Limit - 1) / p.Limit
}

// Window returns the slice of items covered by p. A page past the end is
// empty, never a panic.
func Window[T any](items []T, p Params) []T {
	if p.Offset >= len(items) {
		return nil
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
