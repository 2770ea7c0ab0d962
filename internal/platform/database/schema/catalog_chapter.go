// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogChapterTable represents the 'catalog.chapters' table
type CatalogChapterTable struct {
	Table      string
	TitleID    string
	ID         string
	Title      string
	ReleasedAt string
	Language   string
	IsPremium  string
}

// CatalogChapter is the schema definition for catalog.chapters
var CatalogChapter = CatalogChapterTable{
	Table:      "catalog.chapters",
	TitleID:    "title_id",
	ID:         "id",
	Title:      "title",
	ReleasedAt: "released_at",
	Language:   "language",
	IsPremium:  "is_premium",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{t.TitleID, t.ID, t.Title, t.ReleasedAt, t.Language, t.IsPremium}
}
