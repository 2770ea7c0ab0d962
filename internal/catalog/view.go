// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"github.com/taibuivan/tankobon/internal/platform/constants"
	"github.com/taibuivan/tankobon/pkg/pagination"
	"github.com/taibuivan/tankobon/pkg/slice"
)

// # View State

// ViewMode selects how the rendering layer lays out a page.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// IsValid reports whether m is a supported view mode.
func (m ViewMode) IsValid() bool {
	return m == ViewGrid || m == ViewList
}

// ViewState is the user's current selection on a catalogue view.
//
// It is a plain record; only [Controller] setters move it between values.
type ViewState struct {
	SearchQuery    string   `json:"search_query"`
	ActiveCategory string   `json:"active_category"`
	SortKey        SortKey  `json:"sort_key"`
	CurrentPage    int      `json:"current_page"`
	PageSize       int      `json:"page_size"`
	ViewMode       ViewMode `json:"view_mode"`
}

// DefaultViewState returns the state of a freshly mounted view.
func DefaultViewState(pageSize int) ViewState {
	pageSize = pagination.CapLimit(pageSize, pagination.DefaultLimit)
	return ViewState{
		SearchQuery:    "",
		ActiveCategory: constants.CategoryAll,
		SortKey:        DefaultSortKey,
		CurrentPage:    1,
		PageSize:       pageSize,
		ViewMode:       ViewGrid,
	}
}

// normalized replaces unusable field values with their defaults. The page is
// only lower-bounded here; the controller clamps the upper bound.
func (state ViewState) normalized(fallbackPageSize int) ViewState {
	defaults := DefaultViewState(fallbackPageSize)

	state.PageSize = pagination.CapLimit(state.PageSize, defaults.PageSize)
	if IsAllCategory(state.ActiveCategory) {
		state.ActiveCategory = constants.CategoryAll
	}
	if !state.SortKey.IsValid() {
		state.SortKey = defaults.SortKey
	}
	if !state.ViewMode.IsValid() {
		state.ViewMode = defaults.ViewMode
	}
	if state.CurrentPage < 1 {
		state.CurrentPage = 1
	}
	return state
}

// PagedResult is the derived, renderable output of a catalogue view.
//
// An empty Items slice is a normal result; callers tell "no query yet" from
// "no matches" by looking at State.SearchQuery.
type PagedResult struct {
	Items       []TitleRecord
	CurrentPage int
	TotalPages  int
	TotalItems  int
	State       ViewState
}

// # View-State Controller

// Controller owns a [ViewState] and derives pages from a [Store].
//
// Changing the query, category, sort key or view mode resets the page to 1.
// Changing the page never touches the other fields. A Controller is not safe
// for concurrent use; each view gets its own.
type Controller struct {
	store  *Store
	sorter Sorter
	state  ViewState
}

// Option customises a [Controller].
type Option func(*Controller)

// WithPageSize fixes the page size of the view.
func WithPageSize(size int) Option {
	return func(controller *Controller) {
		if size > 0 {
			controller.state.PageSize = min(size, pagination.MaxLimit)
		}
	}
}

// WithSorter sets the collation used by alphabetical sorting.
func WithSorter(sorter Sorter) Option {
	return func(controller *Controller) {
		controller.sorter = sorter
	}
}

// NewController returns a controller in the default state.
func NewController(store *Store, opts ...Option) *Controller {
	controller := &Controller{
		store:  store,
		sorter: NewSorter("und"),
		state:  DefaultViewState(pagination.DefaultLimit),
	}
	for _, opt := range opts {
		opt(controller)
	}
	return controller
}

// Restore returns a controller resuming a previously captured state.
//
// Invalid fields are reset to their defaults and the page is clamped against
// the current result set. Options apply before the state is restored, so a
// positive state.PageSize wins over [WithPageSize].
func Restore(store *Store, state ViewState, opts ...Option) *Controller {
	controller := NewController(store, opts...)
	controller.state = state.normalized(controller.state.PageSize)
	controller.state.CurrentPage = pagination.Clamp(controller.state.CurrentPage, controller.totalPages())
	return controller
}

// State returns a copy of the current view state.
func (controller *Controller) State() ViewState {
	return controller.state
}

// ## Setters

// SetQuery changes the search query and returns to page 1.
func (controller *Controller) SetQuery(query string) {
	controller.state.SearchQuery = query
	controller.state.CurrentPage = 1
}

// SetCategory changes the active category and returns to page 1.
// Blank values select the "all" sentinel.
func (controller *Controller) SetCategory(category string) {
	category = strings.TrimSpace(category)
	if IsAllCategory(category) {
		category = constants.CategoryAll
	}
	controller.state.ActiveCategory = category
	controller.state.CurrentPage = 1
}

// SetSort changes the sort key and returns to page 1. Unknown keys select
// [DefaultSortKey].
func (controller *Controller) SetSort(key SortKey) {
	if !key.IsValid() {
		key = DefaultSortKey
	}
	controller.state.SortKey = key
	controller.state.CurrentPage = 1
}

// SetViewMode changes the layout and returns to page 1. Unknown modes select grid.
func (controller *Controller) SetViewMode(mode ViewMode) {
	if !mode.IsValid() {
		mode = ViewGrid
	}
	controller.state.ViewMode = mode
	controller.state.CurrentPage = 1
}

// SetPage moves to page, clamped into [1, TotalPages] of the current result set.
func (controller *Controller) SetPage(page int) {
	controller.state.CurrentPage = pagination.Clamp(page, controller.totalPages())
}

// NextPage moves one page forward; it is a no-op on the last page.
func (controller *Controller) NextPage() {
	controller.state.CurrentPage = pagination.Next(controller.state.CurrentPage, controller.totalPages())
}

// PreviousPage moves one page back; it is a no-op on page 1.
func (controller *Controller) PreviousPage() {
	controller.state.CurrentPage = pagination.Previous(controller.state.CurrentPage)
}

// ## Derivation

/*
Derive recomputes Search → Filter → Sort → Paginate for the current state.

It is a pure function of the store snapshot and the view state: calling it
repeatedly without a setter in between yields identical results, and it never
modifies the store or the state.
*/
func (controller *Controller) Derive() PagedResult {
	ordered := controller.sorter.Sort(controller.matching(), controller.state.SortKey)
	page := pagination.Paginate(ordered, controller.state.CurrentPage, controller.state.PageSize)

	return PagedResult{
		Items:       slice.Map(page.Items, TitleRecord.Clone),
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		State:       controller.state,
	}
}

// matching returns the searched and filtered records, before ordering.
func (controller *Controller) matching() []TitleRecord {
	found := Search(controller.store.snapshot(), controller.state.SearchQuery)
	return Filter(found, controller.state.ActiveCategory)
}

// totalPages returns the page count of the current result set.
func (controller *Controller) totalPages() int {
	return pagination.TotalPages(len(controller.matching()), controller.state.PageSize)
}
