// Package pagination models zero-based page requests and parses them from
// query strings of the form ?page=0&size=20&sort=name,asc&sort=price,desc.
package pagination

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKey orders results by one field.
type SortKey struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Request is a zero-based page request.
type Request struct {
	Index int       `json:"page"`
	Size  int       `json:"size"`
	Sort  []SortKey `json:"sort,omitempty"`
}

// Validate rejects negative indices, non-positive sizes, sizes above maxSize
// and indices whose offset would overflow, returning an InvalidPagination error.
func (r Request) Validate(maxSize int) error {
	if r.Index < 0 {
		return apperrors.InvalidPagination(fmt.Sprintf("page index must be >= 0, got %d", r.Index))
	}
	if r.Size <= 0 {
		return apperrors.InvalidPagination(fmt.Sprintf("page size must be > 0, got %d", r.Size))
	}
	if maxSize > 0 && r.Size > maxSize {
		return apperrors.InvalidPagination(fmt.Sprintf("page size must be <= %d, got %d", maxSize, r.Size))
	}
	if r.Index > math.MaxInt/r.Size {
		return apperrors.InvalidPagination(fmt.Sprintf("page index %d is out of range for size %d", r.Index, r.Size))
	}
	for _, k := range r.Sort {
		if k.Direction != Asc && k.Direction != Desc {
			return apperrors.InvalidPagination(fmt.Sprintf("invalid sort direction %q", k.Direction))
		}
	}
	return nil
}

// Offset is the number of rows to skip.
func (r Request) Offset() int {
	return r.Index * r.Size
}

// FromRequest parses page, size and sort query parameters. Absent parameters
// take defaults; malformed ones yield InvalidPagination. Range checks are left
// to Validate.
func FromRequest(req *http.Request) (Request, error) {
	q := req.URL.Query()
	p := Request{Index: 0, Size: DefaultSize}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Request{}, apperrors.InvalidPagination("page must be an integer")
		}
		p.Index = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Request{}, apperrors.InvalidPagination("size must be an integer")
		}
		p.Size = n
	}
	for _, raw := range q["sort"] {
		key, err := ParseSort(raw)
		if err != nil {
			return Request{}, err
		}
		p.Sort = append(p.Sort, key)
	}
	return p, nil
}

// ParseSort parses "field" or "field,dir". Direction defaults to ascending.
func ParseSort(raw string) (SortKey, error) {
	field, dir, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	if field == "" {
		return SortKey{}, apperrors.InvalidPagination("sort field must not be empty")
	}
	key := SortKey{Field: field, Direction: Asc}
	if dir = strings.ToLower(strings.TrimSpace(dir)); dir != "" {
		key.Direction = Direction(dir)
		if key.Direction != Asc && key.Direction != Desc {
			return SortKey{}, apperrors.InvalidPagination(fmt.Sprintf("invalid sort direction %q", dir))
		}
	}
	return key, nil
}

// Page is one slice of an ordered result plus the total match count.
type Page[T any] struct {
	Items      []T
	TotalCount int
	Index      int
	Size       int
}

// NewPage builds a page, normalising nil items to an empty slice.
func NewPage[T any](items []T, total int, req Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: total, Index: req.Index, Size: req.Size}
}

// TotalPages is ceil(TotalCount / Size).
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalCount + p.Size - 1) / p.Size
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Index+1 < p.TotalPages()
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, it := range p.Items {
		out[i] = fn(it)
	}
	return Page[U]{Items: out, TotalCount: p.TotalCount, Index: p.Index, Size: p.Size}
}
