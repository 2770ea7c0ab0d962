// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tankobon/internal/catalog"
)

/*
TestSearch covers the any-field, case-insensitive substring match.
*/
func TestSearch(t *testing.T) {
	records := mixedTitles()

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"title substring", "justice", []int64{2}},
		{"upper case", "BLUE", []int64{1}},
		{"author", "ennis", []int64{2}},
		{"category", "hqs", []int64{2, 4}},
		{"type", "manhwa", []int64{5}},
		{"tag with accent", "anti-herói", []int64{2, 4}},
		{"accents are not stripped", "anti-heroi", []int64{}},
		{"non ascii title", "ângela", []int64{3}},
		{"leading space is part of the query", " lock", []int64{1}},
		{"no match", "one piece", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(catalog.Search(records, tt.query)))
		})
	}
}

/*
TestSearch_EmptyIsIdentity checks that blank queries return the input untouched.
*/
func TestSearch_EmptyIsIdentity(t *testing.T) {
	records := mixedTitles()

	for _, query := range []string{"", " ", "\t\n"} {
		assert.Equal(t, records, catalog.Search(records, query), "query %q", query)
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	records := mixedTitles()
	before := idsOf(records)

	_ = catalog.Search(records, "hq")

	assert.Equal(t, before, idsOf(records))
}
