package query

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 500
)

// Page selects a window of a list result. Numbers are 1-based.
type Page struct {
	Number int
	Size   int
}

// Normalize fills defaults and caps the size.
func (p Page) Normalize() Page {
	if p.Number <= 0 {
		p.Number = 1
	}

	switch {
	case p.Size <= 0:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}

	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Normalize().Size
}

// PageFromQuery reads page and per_page from URL query values. Unparseable values fall back
// to defaults.
func PageFromQuery(v url.Values) Page {
	number, _ := strconv.Atoi(v.Get("page"))
	size, _ := strconv.Atoi(v.Get("per_page"))

	return Page{Number: number, Size: size}.Normalize()
}

// Result is one page of a list query.
type Result[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// NewResult wraps items with paging metadata.
func NewResult[T any](items []T, page Page, total int) Result[T] {
	page = page.Normalize()

	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Size - 1) / page.Size
	}

	return Result[T]{
		Items:      items,
		Page:       page.Number,
		PerPage:    page.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// Map converts the items of r, keeping the paging metadata.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	items := make([]U, len(r.Items))
	for i, item := range r.Items {
		items[i] = fn(item)
	}

	return Result[U]{
		Items:      items,
		Page:       r.Page,
		PerPage:    r.PerPage,
		TotalItems: r.TotalItems,
		TotalPages: r.TotalPages,
	}
}
