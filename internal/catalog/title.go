// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog implements the catalogue view-state engine of Tankobon.

A catalogue view is a pure pipeline over an immutable, in-memory snapshot:

	Store → Search → Filter → Sort → Paginate → PagedResult

The [Store] is built once from a [Source] (embedded seed, YAML/JSON file or a
PostgreSQL snapshot). A [Controller] owns the user-facing [ViewState] and
re-derives the visible page on demand; HTTP handlers and the CLI only talk to
the engine through [Service].

Core Responsibility:

  - Records: [TitleRecord] with explicit optional fields (absent sorts last).
  - Discovery: case-insensitive substring search and category/tag filtering.
  - Ordering: total-order comparators with an id tie-break, so pages are stable.
  - Views: per-visitor view sessions with favourites, kept in memory or Redis.
*/
package catalog

import (
	"cmp"
	"slices"
	"time"

	"github.com/taibuivan/tankobon/pkg/pointer"
)

// # Domain Enums

// Status represents the publication status of a title.
type Status string

const (
	// StatusOngoing indicates the publication is actively updating.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"

	// StatusHiatus indicates the publication is paused.
	StatusHiatus Status = "hiatus"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus:
		return true
	}
	return false
}

// Type is the publication format of a title.
type Type string

const (
	TypeManga  Type = "manga"
	TypeManhwa Type = "manhwa"
	TypeNovel  Type = "novel"
	TypeHQ     Type = "hq"
)

// IsValid reports whether t is a recognised [Type]. The empty type is valid
// and means "unclassified".
func (t Type) IsValid() bool {
	switch t {
	case "", TypeManga, TypeManhwa, TypeNovel, TypeHQ:
		return true
	}
	return false
}

// # Core Entities

// TitleRecord is one entry of the catalogue.
//
// Optional numeric and time fields are pointers: nil means "absent", which
// the sort stage always places last. Optional strings use "" for absent.
type TitleRecord struct {
	ID    int64  `json:"id"    yaml:"id"`
	Slug  string `json:"slug"  yaml:"slug"`
	Title string `json:"title" yaml:"title"`

	Author   string   `json:"author,omitempty"   yaml:"author"`
	Category string   `json:"category,omitempty" yaml:"category"`
	Type     Type     `json:"type,omitempty"     yaml:"type"`
	Tags     []string `json:"tags,omitempty"     yaml:"tags"`

	Rating *float64 `json:"rating,omitempty" yaml:"rating"` // 0-10
	Status Status   `json:"status"           yaml:"status"`

	IsPremium bool `json:"is_premium" yaml:"is_premium"`
	IsNew     bool `json:"is_new"     yaml:"is_new"`

	LastUpdated        *time.Time `json:"last_updated,omitempty" yaml:"last_updated"`
	LatestChapterLabel string     `json:"latest_chapter_label"   yaml:"latest_chapter_label"` // e.g. "Cap. 276"
	ViewCount          *int64     `json:"view_count,omitempty"   yaml:"view_count"`

	// # Detail fields
	Synopsis         string    `json:"synopsis,omitempty"          yaml:"synopsis"`
	CoverURL         string    `json:"cover_url,omitempty"         yaml:"cover_url"`
	Year             *int      `json:"year,omitempty"              yaml:"year"`
	OriginalLanguage string    `json:"original_language,omitempty" yaml:"original_language"`
	AgeRating        string    `json:"age_rating,omitempty"        yaml:"age_rating"`
	Demographic      string    `json:"demographic,omitempty"       yaml:"demographic"`
	Chapters         []Chapter `json:"chapters,omitempty"          yaml:"chapters"`

	// malformed holds the decode error of an entry whose fields did not fit.
	malformed error
}

// Chapter is one released chapter of a title, shown on the detail view.
type Chapter struct {
	ID         int64     `json:"id"          yaml:"id"`
	Title      string    `json:"title"       yaml:"title"`
	ReleasedAt time.Time `json:"released_at" yaml:"released_at"`
	Language   string    `json:"language"    yaml:"language"`
	IsPremium  bool      `json:"is_premium"  yaml:"is_premium"`
}

// Clone returns a deep copy of r that shares no memory with it.
func (r TitleRecord) Clone() TitleRecord {
	clone := r
	clone.Tags = slices.Clone(r.Tags)
	clone.Rating = pointer.Clone(r.Rating)
	clone.LastUpdated = pointer.Clone(r.LastUpdated)
	clone.ViewCount = pointer.Clone(r.ViewCount)
	clone.Year = pointer.Clone(r.Year)
	clone.Chapters = slices.Clone(r.Chapters)
	return clone
}

// ChaptersNewestFirst returns the chapters ordered by release date, newest
// first, then by id descending.
func (r TitleRecord) ChaptersNewestFirst() []Chapter {
	chapters := slices.Clone(r.Chapters)
	slices.SortStableFunc(chapters, func(a, b Chapter) int {
		if c := b.ReleasedAt.Compare(a.ReleasedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return chapters
}

// # Field Identifiers

// Field names used in validation details and logs.
const (
	FieldID        = "id"
	FieldSlug      = "slug"
	FieldTitle     = "title"
	FieldType      = "type"
	FieldRating    = "rating"
	FieldStatus    = "status"
	FieldViewCount = "view_count"
	FieldQuery     = "query"
	FieldCategory  = "category"
	FieldSort      = "sort"
	FieldViewMode  = "view_mode"
	FieldPage      = "page"
	FieldSession   = "session_id"
	FieldComment   = "comment_id"
	FieldContent   = "content"
	FieldReaction  = "reaction"
)
