// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/pkg/pointer"
)

func TestNewController_Defaults(t *testing.T) {
	controller := catalog.NewController(newStore(mixedTitles()))

	state := controller.State()
	assert.Equal(t, "", state.SearchQuery)
	assert.Equal(t, "all", state.ActiveCategory)
	assert.Equal(t, catalog.SortRecencyDesc, state.SortKey)
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, 12, state.PageSize)
	assert.Equal(t, catalog.ViewGrid, state.ViewMode)
}

/*
TestController_RatingScenario walks the A..F rating-desc pages.
*/
func TestController_RatingScenario(t *testing.T) {
	controller := catalog.NewController(newStore(ratedTitles()), catalog.WithPageSize(2))

	controller.SetSort(catalog.SortRatingDesc)
	result := controller.Derive()
	assert.Equal(t, []string{"A", "B"}, titlesOf(result.Items))
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 6, result.TotalItems)

	controller.SetPage(2)
	assert.Equal(t, []string{"F", "C"}, titlesOf(controller.Derive().Items))

	controller.SetPage(3)
	result = controller.Derive()
	assert.Equal(t, []string{"E", "D"}, titlesOf(result.Items))
	assert.Equal(t, 3, result.CurrentPage)
}

func TestController_QueryScenario(t *testing.T) {
	store := newStore([]catalog.TitleRecord{
		{ID: 1, Title: "Blue Lock", Tags: []string{"Esporte"}},
		{ID: 2, Title: "O Justiceiro", Tags: []string{"Anti-Herói"}},
		{ID: 3, Title: "Deadpool", Tags: []string{"Anti-Herói"}},
	})
	controller := catalog.NewController(store, catalog.WithPageSize(1))
	controller.SetPage(3)

	controller.SetQuery("justice")

	result := controller.Derive()
	require.Len(t, result.Items, 1)
	assert.Equal(t, "O Justiceiro", result.Items[0].Title)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, "justice", result.State.SearchQuery)
}

func TestController_CategoryRoundTrip(t *testing.T) {
	records := []catalog.TitleRecord{
		{ID: 1, Title: "Blue Lock", Type: catalog.TypeManga},
		{ID: 2, Title: "O Justiceiro", Type: catalog.TypeHQ},
		{ID: 3, Title: "Deadpool", Type: catalog.TypeHQ},
		{ID: 4, Title: "Solo Leveling", Type: catalog.TypeManhwa},
	}
	controller := catalog.NewController(newStore(records))
	before := controller.Derive().Items

	controller.SetCategory("hq")
	assert.Equal(t, []int64{2, 3}, idsOf(controller.Derive().Items))

	controller.SetCategory("all")
	after := controller.Derive().Items
	assert.Equal(t, before, after)
	assert.Equal(t, []int64{1, 2, 3, 4}, idsOf(after))
}

/*
TestController_SettersResetPage checks that every non-page setter returns to page 1.
*/
func TestController_SettersResetPage(t *testing.T) {
	setters := map[string]func(*catalog.Controller){
		"query":     func(c *catalog.Controller) { c.SetQuery("a") },
		"category":  func(c *catalog.Controller) { c.SetCategory("hq") },
		"sort":      func(c *catalog.Controller) { c.SetSort(catalog.SortAlphabetical) },
		"view mode": func(c *catalog.Controller) { c.SetViewMode(catalog.ViewList) },
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			controller := catalog.NewController(newStore(ratedTitles()), catalog.WithPageSize(2))
			controller.SetPage(3)
			require.Equal(t, 3, controller.State().CurrentPage)

			set(controller)

			assert.Equal(t, 1, controller.State().CurrentPage)
		})
	}
}

/*
TestController_SetPageClamps tries pages well outside the range.
*/
func TestController_SetPageClamps(t *testing.T) {
	controller := catalog.NewController(newStore(ratedTitles()), catalog.WithPageSize(2))

	for _, page := range []int{-100, -1, 0, 1, 2, 3, 4, 1 << 30} {
		controller.SetPage(page)
		state := controller.State()
		result := controller.Derive()

		assert.GreaterOrEqual(t, state.CurrentPage, 1, "page %d", page)
		assert.LessOrEqual(t, state.CurrentPage, result.TotalPages, "page %d", page)
	}

	controller.SetPage(99)
	assert.Equal(t, 3, controller.State().CurrentPage)

	// Nothing but the page moves
	state := controller.State()
	assert.Equal(t, catalog.SortRecencyDesc, state.SortKey)
	assert.Equal(t, "all", state.ActiveCategory)
}

func TestController_SetPageOnEmptyResult(t *testing.T) {
	controller := catalog.NewController(newStore(ratedTitles()))
	controller.SetQuery("no such title")
	controller.SetPage(5)

	result := controller.Derive()
	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Items)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, result.TotalItems)
}

func TestController_NextAndPrevious(t *testing.T) {
	controller := catalog.NewController(newStore(ratedTitles()), catalog.WithPageSize(4))

	controller.PreviousPage()
	assert.Equal(t, 1, controller.State().CurrentPage)

	controller.NextPage()
	assert.Equal(t, 2, controller.State().CurrentPage)

	controller.NextPage()
	assert.Equal(t, 2, controller.State().CurrentPage)

	controller.PreviousPage()
	assert.Equal(t, 1, controller.State().CurrentPage)
}

func TestController_DeriveIsIdempotent(t *testing.T) {
	controller := catalog.NewController(newStore(mixedTitles()), catalog.WithPageSize(2))
	controller.SetSort(catalog.SortViewsDesc)
	controller.SetPage(2)

	first := controller.Derive()
	second := controller.Derive()

	assert.Equal(t, first, second)
	assert.Equal(t, 2, controller.State().CurrentPage)
}

/*
TestController_PagesCoverResultSet concatenates every page for every key.
*/
func TestController_PagesCoverResultSet(t *testing.T) {
	records := mixedTitles()
	for id := int64(10); id < 33; id++ {
		records = append(records, catalog.TitleRecord{ID: id, Title: "Extra", Type: catalog.TypeHQ, Rating: pointer.To(float64(id % 7))})
	}
	store := newStore(records)
	sorter := catalog.NewSorter("pt-BR")

	for _, key := range catalog.SortKeys() {
		for _, category := range []string{"all", "hq"} {
			controller := catalog.NewController(store, catalog.WithPageSize(5), catalog.WithSorter(sorter))
			controller.SetSort(key)
			controller.SetCategory(category)

			var seen []int64
			total := controller.Derive().TotalPages
			for page := 1; page <= total; page++ {
				controller.SetPage(page)
				seen = append(seen, idsOf(controller.Derive().Items)...)
			}

			want := idsOf(sorter.Sort(catalog.Filter(store.All(), category), key))
			assert.Equal(t, want, seen, "%s/%s", key, category)
		}
	}
}

func TestController_DeriveReturnsCopies(t *testing.T) {
	store := newStore(mixedTitles())
	controller := catalog.NewController(store)

	result := controller.Derive()
	result.Items[0].Tags[0] = "changed"

	assert.NotEqual(t, "changed", controller.Derive().Items[0].Tags[0])
}

func TestRestore(t *testing.T) {
	store := newStore(ratedTitles())

	t.Run("clamps the page", func(t *testing.T) {
		controller := catalog.Restore(store, catalog.ViewState{
			SortKey:     catalog.SortRatingDesc,
			CurrentPage: 9,
			PageSize:    2,
			ViewMode:    catalog.ViewList,
		})

		state := controller.State()
		assert.Equal(t, 3, state.CurrentPage)
		assert.Equal(t, "all", state.ActiveCategory)
		assert.Equal(t, catalog.ViewList, state.ViewMode)
	})

	t.Run("repairs unknown values", func(t *testing.T) {
		controller := catalog.Restore(store, catalog.ViewState{
			SortKey:  "sideways",
			ViewMode: "carousel",
		}, catalog.WithPageSize(4))

		state := controller.State()
		assert.Equal(t, catalog.SortRecencyDesc, state.SortKey)
		assert.Equal(t, catalog.ViewGrid, state.ViewMode)
		assert.Equal(t, 4, state.PageSize)
		assert.Equal(t, 1, state.CurrentPage)
	})
}
