// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns created by data/migrations, so
// queries never spell identifiers by hand.
package schema

import (
	"strconv"
	"strings"
)

// CatalogTitleTable represents the 'catalog.titles' table
type CatalogTitleTable struct {
	Table              string
	Position           string
	ID                 string
	Slug               string
	Title              string
	Author             string
	Category           string
	Type               string
	Tags               string
	Rating             string
	Status             string
	IsPremium          string
	IsNew              string
	LastUpdated        string
	LatestChapterLabel string
	ViewCount          string
	Synopsis           string
	CoverURL           string
	Year               string
	OriginalLanguage   string
	AgeRating          string
	Demographic        string
}

// CatalogTitle is the schema definition for catalog.titles
var CatalogTitle = CatalogTitleTable{
	Table:              "catalog.titles",
	Position:           "position",
	ID:                 "id",
	Slug:               "slug",
	Title:              "title",
	Author:             "author",
	Category:           "category",
	Type:               "type",
	Tags:               "tags",
	Rating:             "rating",
	Status:             "status",
	IsPremium:          "is_premium",
	IsNew:              "is_new",
	LastUpdated:        "last_updated",
	LatestChapterLabel: "latest_chapter_label",
	ViewCount:          "view_count",
	Synopsis:           "synopsis",
	CoverURL:           "cover_url",
	Year:               "year",
	OriginalLanguage:   "original_language",
	AgeRating:          "age_rating",
	Demographic:        "demographic",
}

// Columns lists the record columns in scan order. Position is assigned by
// the database and left out.
func (t CatalogTitleTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Author, t.Category, t.Type, t.Tags, t.Rating, t.Status,
		t.IsPremium, t.IsNew, t.LastUpdated, t.LatestChapterLabel, t.ViewCount,
		t.Synopsis, t.CoverURL, t.Year, t.OriginalLanguage, t.AgeRating, t.Demographic,
	}
}

// List joins columns for a SELECT or INSERT column list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}

// Placeholders returns "$1, $2, ..., $n".
func Placeholders(n int) string {
	var builder strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			builder.WriteString(", ")
		}
		builder.WriteByte('$')
		builder.WriteString(strconv.Itoa(i))
	}
	return builder.String()
}
