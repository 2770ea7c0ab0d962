// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination slices ordered sequences into fixed-size pages and
// carries the page metadata returned by list endpoints.
//
// # Clamping
//
// Pages are 1-based. An out-of-range page is never an error: it is clamped
// into [1, TotalPages] before slicing. An empty sequence still has one
// (empty) page, so TotalPages is always at least 1.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 12
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// # Pager

// Page is one window of an ordered sequence.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

// TotalPages returns max(1, ceil(count/size)). A non-positive size is
// treated as [DefaultLimit].
func TotalPages(count, size int) int {
	if size < 1 {
		size = DefaultLimit
	}
	if count <= 0 {
		return 1
	}

	pages := count / size
	if count%size != 0 {
		pages++
	}
	return pages
}

// Clamp forces page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the clamped page of items. Items is a fresh, never nil
// slice holding a copy of the window.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultLimit
	}

	total := TotalPages(len(items), size)
	current := Clamp(page, total)

	start := (current - 1) * size
	end := min(start+size, len(items))

	window := make([]T, 0, end-start)
	window = append(window, items[start:end]...)

	return Page[T]{
		Items:       window,
		CurrentPage: current,
		TotalPages:  total,
		TotalItems:  len(items),
	}
}

// Previous returns the page before current, staying on page 1 at the boundary.
func Previous(current int) int {
	return max(1, current-1)
}

// Next returns the page after current, staying on the last page at the boundary.
func Next(current, totalPages int) int {
	return min(max(1, totalPages), current+1)
}

// # HTTP Parameters

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the zero-based index of the first item on [Params.Page].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(page, limit, total int) Meta {
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
}

// MetaOf builds the response metadata of a computed page.
func MetaOf[T any](page Page[T], limit int) Meta {
	return Meta{
		Page:       page.CurrentPage,
		Limit:      limit,
		Total:      page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

// ParamError reports a page or limit query parameter that is not a usable number.
type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return "pagination: invalid " + e.Param + " " + strconv.Quote(e.Value)
}

/*
FromRequest parses "page" and "limit" query parameters from an HTTP request.

Description: An absent or zero page is [DefaultPage]; pages beyond the end are
left for [Paginate] to clamp. An absent or non-positive limit falls back to
fallbackLimit and a limit above [MaxLimit] is capped.

Returns:
  - Params: The parsed values
  - error: *ParamError for a non-numeric page or limit, or a negative page
*/
func FromRequest(r *http.Request, fallbackLimit int) (Params, error) {
	if fallbackLimit < 1 || fallbackLimit > MaxLimit {
		fallbackLimit = DefaultLimit
	}

	page, err := parseIntParam(r, "page", DefaultPage)
	if err != nil {
		return Params{}, err
	}
	if page < 0 {
		return Params{}, &ParamError{Param: "page", Value: r.URL.Query().Get("page")}
	}

	limit, err := parseIntParam(r, "limit", fallbackLimit)
	if err != nil {
		return Params{}, err
	}

	return Params{Page: max(page, DefaultPage), Limit: CapLimit(limit, fallbackLimit)}, nil
}

// CapLimit bounds a page size to [1, MaxLimit]; a non-positive limit becomes fallback.
func CapLimit(limit, fallback int) int {
	if limit < 1 {
		return fallback
	}
	return min(limit, MaxLimit)
}

func parseIntParam(r *http.Request, key string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParamError{Param: key, Value: raw}
	}

	return n, nil
}
