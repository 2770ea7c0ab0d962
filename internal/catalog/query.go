// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/tankobon/pkg/slice"
)

// # Query Index

// Search keeps the records that contain query in their title, author,
// category, type or any tag.
//
// Matching is case-insensitive substring containment (Unicode case folding);
// there is no tokenisation, no fuzziness and no relevance ranking. Results
// keep the input order. A blank query returns records itself, unchanged.
func Search(records []TitleRecord, query string) []TitleRecord {
	if strings.TrimSpace(query) == "" {
		return records
	}

	// A Caser carries state, so each call gets its own.
	folder := cases.Fold()
	needle := folder.String(query)

	return slice.Filter(records, func(record TitleRecord) bool {
		return matchesQuery(folder, record, needle)
	})
}

// matchesQuery reports whether any searchable field of record contains needle.
func matchesQuery(folder cases.Caser, record TitleRecord, needle string) bool {
	contains := func(field string) bool {
		return field != "" && strings.Contains(folder.String(field), needle)
	}

	if contains(record.Title) || contains(record.Author) || contains(record.Category) || contains(string(record.Type)) {
		return true
	}

	return slice.Any(record.Tags, contains)
}

// fold returns the case-folded form of s.
func fold(s string) string {
	return cases.Fold().String(s)
}
