// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"github.com/taibuivan/tankobon/internal/platform/constants"
	"github.com/taibuivan/tankobon/pkg/slice"
)

// # Filter Stage

// IsAllCategory reports whether category is the match-everything sentinel.
// The empty string counts as "all".
func IsAllCategory(category string) bool {
	category = strings.TrimSpace(category)
	return category == "" || fold(category) == constants.CategoryAll
}

// Filter keeps the records classified under category.
//
// Category and tag filtering are one dimension: a record matches when its
// category or type equals the value, or when one of its tags does. The
// comparison is case-insensitive equality. The "all" sentinel returns
// records itself, unchanged. Input order is preserved.
func Filter(records []TitleRecord, category string) []TitleRecord {
	if IsAllCategory(category) {
		return records
	}

	wanted := fold(strings.TrimSpace(category))
	equal := func(value string) bool {
		return value != "" && fold(value) == wanted
	}

	return slice.Filter(records, func(record TitleRecord) bool {
		return equal(record.Category) || equal(string(record.Type)) || slice.Any(record.Tags, equal)
	})
}
