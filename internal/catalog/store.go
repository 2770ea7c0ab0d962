// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
	"github.com/taibuivan/tankobon/internal/platform/constants"
	"github.com/taibuivan/tankobon/internal/platform/validate"
	"github.com/taibuivan/tankobon/pkg/slice"
	"github.com/taibuivan/tankobon/pkg/slug"
)

// ErrTitleNotFound is returned by slug lookups that match no record.
var ErrTitleNotFound = apperr.NotFound("Title")

// # Entity Store

// Store is the immutable, in-memory catalogue snapshot.
//
// It is populated once by [NewStore] and exposes no mutation operations.
// Every record handed out is a deep copy, so a Store is safe for concurrent
// readers without locking.
type Store struct {
	records []TitleRecord
	bySlug  map[string]int
	dropped []DroppedRecord
}

// DroppedRecord describes an input record that was rejected while building a [Store].
type DroppedRecord struct {
	// Position is the zero-based index of the record in the source input.
	Position int
	ID       int64
	Title    string
	Reason   error
}

/*
NewStore validates records and builds the catalogue snapshot.

Description: Entries the source could not decode are dropped first. Invalid
records (missing title, non-positive or duplicate id,
duplicate explicit slug, rating outside [0, 10], unknown status or type,
negative view count) are dropped and logged; the remaining records keep their
input order. Records without a slug get one derived from their title.

Parameters:
  - records: []TitleRecord (Source order is the store's iteration order)
  - logger: *slog.Logger (nil uses slog.Default)

Returns:
  - *Store: The snapshot; never nil, possibly empty
*/
func NewStore(records []TitleRecord, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	store := &Store{
		records: make([]TitleRecord, 0, len(records)),
		bySlug:  make(map[string]int, len(records)),
	}

	seenIDs := make(map[int64]struct{}, len(records))

	// 1. Validate and claim explicit slugs first, so derived slugs never steal one
	for position, input := range records {
		record := input.Clone()

		if record.malformed != nil {
			reason := apperr.ValidationError("Malformed record").WithCause(record.malformed)
			store.drop(logger, position, record, reason, nil)
			continue
		}

		validator := validateRecord(record, seenIDs, store.bySlug)
		if err := validator.Err(); err != nil {
			store.drop(logger, position, record, err, validator.Fields())
			continue
		}

		if record.Status == "" {
			record.Status = StatusOngoing
		}

		seenIDs[record.ID] = struct{}{}
		if record.Slug != "" {
			store.bySlug[record.Slug] = len(store.records)
		}
		store.records = append(store.records, record)
	}

	// 2. Derive the missing slugs
	for index := range store.records {
		record := &store.records[index]
		if record.Slug != "" {
			continue
		}
		record.Slug = store.freeSlug(slug.From(record.Title), record.ID)
		store.bySlug[record.Slug] = index
	}

	logger.Info("catalog_store_built",
		slog.Int("records", len(store.records)),
		slog.Int("dropped", len(store.dropped)),
	)

	return store
}

// validateRecord applies the record invariants.
func validateRecord(record TitleRecord, seenIDs map[int64]struct{}, slugs map[string]int) *validate.Validator {
	validator := &validate.Validator{}

	_, duplicateID := seenIDs[record.ID]
	validator.
		Positive(FieldID, record.ID).
		Custom(FieldID, duplicateID, "Duplicate id "+strconv.FormatInt(record.ID, 10)).
		Required(FieldTitle, record.Title).
		FloatRange(FieldRating, record.Rating, 0, 10).
		Custom(FieldType, !record.Type.IsValid(), "Unknown type "+strconv.Quote(string(record.Type))).
		Custom(FieldViewCount, record.ViewCount != nil && *record.ViewCount < 0, "Must not be negative")

	if record.Status != "" {
		validator.OneOf(FieldStatus, string(record.Status),
			string(StatusOngoing),
			string(StatusCompleted),
			string(StatusHiatus),
		)
	}

	if record.Slug != "" {
		_, duplicateSlug := slugs[record.Slug]
		validator.
			Slug(FieldSlug, record.Slug).
			Custom(FieldSlug, duplicateSlug, "Duplicate slug "+strconv.Quote(record.Slug))
	}

	return validator
}

// drop records and logs a rejected input record.
func (store *Store) drop(logger *slog.Logger, position int, record TitleRecord, reason error, fields []string) {
	store.dropped = append(store.dropped, DroppedRecord{
		Position: position,
		ID:       record.ID,
		Title:    record.Title,
		Reason:   reason,
	})

	logger.Warn("catalog_record_dropped",
		slog.Int("position", position),
		slog.Int64("id", record.ID),
		slog.String("title", record.Title),
		slog.Any("fields", fields),
		slog.String("reason", errorText(reason)),
	)
}

// errorText joins an error with its cause, if any.
func errorText(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return err.Error() + ": " + cause.Error()
	}
	return err.Error()
}

// freeSlug returns base if unclaimed, otherwise base suffixed with the id.
func (store *Store) freeSlug(base string, id int64) string {
	candidate := base
	if candidate == "" {
		candidate = slug.Disambiguate("title", id)
	}
	for {
		if _, taken := store.bySlug[candidate]; !taken {
			return candidate
		}
		candidate = slug.Disambiguate(candidate, id)
	}
}

// # Read Access

// All returns every record in insertion order.
func (store *Store) All() []TitleRecord {
	return slice.Map(store.records, TitleRecord.Clone)
}

// Len returns the number of records in the store.
func (store *Store) Len() int {
	return len(store.records)
}

// Dropped returns the records rejected while the store was built.
func (store *Store) Dropped() []DroppedRecord {
	return append([]DroppedRecord(nil), store.dropped...)
}

// snapshot exposes the backing slice to the pipeline stages, which never mutate it.
func (store *Store) snapshot() []TitleRecord {
	return store.records
}

// LookupBySlug returns the record addressed by slug, or [ErrTitleNotFound].
func (store *Store) LookupBySlug(slug string) (TitleRecord, error) {
	index, ok := store.bySlug[slug]
	if !ok {
		return TitleRecord{}, ErrTitleNotFound
	}
	return store.records[index].Clone(), nil
}

// Categories lists the filter values offered to visitors: the "all" sentinel
// followed by every distinct category and type, in first-seen order.
func (store *Store) Categories() []string {
	values := []string{constants.CategoryAll}
	for _, record := range store.records {
		if record.Category != "" {
			values = append(values, record.Category)
		}
		if record.Type != "" {
			values = append(values, string(record.Type))
		}
	}
	return slice.Distinct(values, fold)
}

// Related returns up to n records other than the one addressed by slug,
// in store order.
func (store *Store) Related(slug string, n int) []TitleRecord {
	related := make([]TitleRecord, 0, n)
	for _, record := range store.records {
		if len(related) >= n {
			break
		}
		if record.Slug == slug {
			continue
		}
		related = append(related, record.Clone())
	}
	return related
}
