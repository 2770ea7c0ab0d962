// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
	"github.com/taibuivan/tankobon/internal/platform/database/schema"
	"github.com/taibuivan/tankobon/internal/platform/dberr"
)

// PostgresSource reads a one-shot snapshot of the catalogue tables.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresSource returns a [Source] backed by pool.
func NewPostgresSource(pool *pgxpool.Pool, logger *slog.Logger) *PostgresSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSource{pool: pool, logger: logger}
}

/*
Load implements [Source].

Description: Titles come back in insertion order (the position column), each
with its chapters attached. Validation is left to [NewStore].

Parameters:
  - ctx: context.Context

Returns:
  - []TitleRecord: The raw catalogue
  - error: Wrapped database failures
*/
func (source *PostgresSource) Load(ctx context.Context) ([]TitleRecord, error) {

	// 1. Titles
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		schema.List(schema.CatalogTitle.Columns()), schema.CatalogTitle.Table, schema.CatalogTitle.Position)

	rows, err := source.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "load_titles")
	}
	records, err := pgx.CollectRows(rows, scanTitle)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_titles")
	}

	// 2. Chapters, attached by title id
	chapters, err := source.loadChapters(ctx)
	if err != nil {
		return nil, err
	}
	for index := range records {
		records[index].Chapters = chapters[records[index].ID]
	}

	source.logger.Info("catalog_snapshot_loaded",
		slog.Int("titles", len(records)),
		slog.Int("titles_with_chapters", len(chapters)),
	)

	return records, nil
}

func (source *PostgresSource) loadChapters(ctx context.Context) (map[int64][]Chapter, error) {
	table := schema.CatalogChapter
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s DESC, %s DESC`,
		schema.List(table.Columns()), table.Table, table.TitleID, table.ReleasedAt, table.ID)

	rows, err := source.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "load_chapters")
	}
	defer rows.Close()

	byTitle := make(map[int64][]Chapter)
	for rows.Next() {
		var titleID int64
		var chapter Chapter
		if err := rows.Scan(&titleID, &chapter.ID, &chapter.Title, &chapter.ReleasedAt, &chapter.Language, &chapter.IsPremium); err != nil {
			return nil, dberr.Wrap(err, "scan_chapter")
		}
		byTitle[titleID] = append(byTitle[titleID], chapter)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_chapters")
	}

	return byTitle, nil
}

// scanTitle maps one catalog.titles row; NULL columns stay nil.
func scanTitle(row pgx.CollectableRow) (TitleRecord, error) {
	var record TitleRecord
	var kind, status string

	err := row.Scan(
		&record.ID, &record.Slug, &record.Title, &record.Author, &record.Category,
		&kind, &record.Tags, &record.Rating, &status,
		&record.IsPremium, &record.IsNew, &record.LastUpdated, &record.LatestChapterLabel, &record.ViewCount,
		&record.Synopsis, &record.CoverURL, &record.Year, &record.OriginalLanguage, &record.AgeRating, &record.Demographic,
	)

	record.Type = Type(kind)
	record.Status = Status(status)
	return record, err
}

/*
Import replaces the catalogue tables with records in a single transaction.

Description: Used by catalogctl to seed a database from a file or the
embedded catalogue. Record order becomes the snapshot order.

Parameters:
  - ctx: context.Context
  - records: []TitleRecord

Returns:
  - error: Wrapped database failures; nothing is written on error
*/
func (source *PostgresSource) Import(ctx context.Context, records []TitleRecord) error {
	err := pgx.BeginFunc(ctx, source.pool, func(tx pgx.Tx) error {

		// 1. Clear the previous snapshot (chapters cascade)
		if _, err := tx.Exec(ctx, fmt.Sprintf(`TRUNCATE %s RESTART IDENTITY CASCADE`, schema.CatalogTitle.Table)); err != nil {
			return dberr.Wrap(err, "truncate_titles")
		}

		// 2. Queue every insert in one round trip
		batch := &pgx.Batch{}
		titleColumns := schema.CatalogTitle.Columns()
		insertTitle := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			schema.CatalogTitle.Table, schema.List(titleColumns), schema.Placeholders(len(titleColumns)))
		chapterColumns := schema.CatalogChapter.Columns()
		insertChapter := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			schema.CatalogChapter.Table, schema.List(chapterColumns), schema.Placeholders(len(chapterColumns)))

		for _, record := range records {
			tags := record.Tags
			if tags == nil {
				tags = []string{}
			}
			status := record.Status
			if status == "" {
				status = StatusOngoing
			}

			batch.Queue(insertTitle,
				record.ID, record.Slug, record.Title, record.Author, record.Category,
				string(record.Type), tags, record.Rating, string(status),
				record.IsPremium, record.IsNew, record.LastUpdated, record.LatestChapterLabel, record.ViewCount,
				record.Synopsis, record.CoverURL, record.Year, record.OriginalLanguage, record.AgeRating, record.Demographic,
			)
			for _, chapter := range record.Chapters {
				batch.Queue(insertChapter,
					record.ID, chapter.ID, chapter.Title, chapter.ReleasedAt, chapter.Language, chapter.IsPremium,
				)
			}
		}

		// 3. Close drains the results and reports the first failure
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return dberr.Wrap(err, "insert_catalog")
		}
		return nil
	})
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return dberr.Wrap(err, "import_catalog")
	}

	source.logger.Info("catalog_snapshot_imported", slog.Int("titles", len(records)))
	return nil
}
