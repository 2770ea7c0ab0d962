// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// # Sort Keys

// SortKey selects the ordering of a catalogue view.
type SortKey string

const (
	SortAlphabetical SortKey = "alphabetical"
	SortRatingDesc   SortKey = "rating-desc"
	SortRecencyDesc  SortKey = "recency-desc"
	SortViewsDesc    SortKey = "views-desc"

	// DefaultSortKey orders by the most recently updated titles.
	DefaultSortKey = SortRecencyDesc
)

// sortAliases maps the short names used by the web front end onto sort keys.
var sortAliases = map[string]SortKey{
	"a-z":    SortAlphabetical,
	"rating": SortRatingDesc,
	"recent": SortRecencyDesc,
	"views":  SortViewsDesc,
}

// SortKeys lists every supported key, in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortRecencyDesc, SortAlphabetical, SortRatingDesc, SortViewsDesc}
}

// IsValid reports whether k is a supported sort key.
func (k SortKey) IsValid() bool {
	switch k {
	case SortAlphabetical, SortRatingDesc, SortRecencyDesc, SortViewsDesc:
		return true
	}
	return false
}

// ParseSortKey resolves a canonical key or a front-end alias ("a-z", "rating",
// "recent", "views"). The empty string yields [DefaultSortKey]. The boolean is
// false for unknown values.
func ParseSortKey(raw string) (SortKey, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return DefaultSortKey, true
	}
	if key := SortKey(raw); key.IsValid() {
		return key, true
	}
	if key, ok := sortAliases[raw]; ok {
		return key, true
	}
	return DefaultSortKey, false
}

// # Sort Stage

// Sorter orders records with locale-aware title collation.
type Sorter struct {
	locale language.Tag
}

// NewSorter builds a [Sorter] for a BCP-47 locale. An unparsable locale
// falls back to the root collation order.
func NewSorter(locale string) Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return Sorter{locale: tag}
}

// Locale returns the collation locale.
func (sorter Sorter) Locale() language.Tag {
	return sorter.locale
}

/*
Sort returns a new slice with records ordered by key; the input is untouched.

Every comparator is a total order: equal keys fall back to id ascending, so
any permutation of the same records sorts to the same sequence.

  - alphabetical: title ascending, locale collation, case-insensitive.
  - rating-desc, recency-desc, views-desc: descending, absent values last.

An unknown key sorts by [DefaultSortKey].
*/
func (sorter Sorter) Sort(records []TitleRecord, key SortKey) []TitleRecord {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []TitleRecord{}
	}

	var compare func(a, b TitleRecord) int
	switch key {
	case SortAlphabetical:
		// A Collator keeps scratch buffers, so it is created per call.
		collator := collate.New(sorter.locale, collate.IgnoreCase)
		compare = func(a, b TitleRecord) int {
			return collator.CompareString(a.Title, b.Title)
		}
	case SortRatingDesc:
		compare = func(a, b TitleRecord) int {
			return descending(a.Rating, b.Rating, cmp.Compare[float64])
		}
	case SortViewsDesc:
		compare = func(a, b TitleRecord) int {
			return descending(a.ViewCount, b.ViewCount, cmp.Compare[int64])
		}
	default:
		compare = func(a, b TitleRecord) int {
			return descending(a.LastUpdated, b.LastUpdated, time.Time.Compare)
		}
	}

	slices.SortFunc(sorted, func(a, b TitleRecord) int {
		if c := compare(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return sorted
}

// descending orders present values from largest to smallest and puts absent
// values after every present one.
func descending[T any](a, b *T, compare func(x, y T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return compare(*b, *a)
}
