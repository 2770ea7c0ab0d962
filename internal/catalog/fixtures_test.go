// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/pkg/pointer"
	"github.com/taibuivan/tankobon/pkg/slice"
)

var (
	quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	fixedNow    = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
)

// ratedTitles returns the six records A..F of the rating-desc scenario.
func ratedTitles() []catalog.TitleRecord {
	ratings := []float64{9.8, 9.7, 9.5, 9.3, 9.4, 9.6}
	records := make([]catalog.TitleRecord, 0, len(ratings))
	for index, rating := range ratings {
		records = append(records, catalog.TitleRecord{
			ID:     int64(index + 1),
			Title:  string(rune('A' + index)),
			Rating: pointer.To(rating),
		})
	}
	return records
}

// mixedTitles is a small catalogue exercising every optional field.
func mixedTitles() []catalog.TitleRecord {
	return []catalog.TitleRecord{
		{
			ID: 1, Slug: "blue-lock", Title: "Blue Lock", Author: "Muneyuki Kaneshiro",
			Category: "Mangá", Type: catalog.TypeManga, Tags: []string{"Esporte", "Shounen"},
			Rating: pointer.To(9.8), Status: catalog.StatusOngoing, IsNew: true,
			LastUpdated: pointer.To(fixedNow.Add(-30 * time.Minute)), ViewCount: pointer.To[int64](14_500_000),
		},
		{
			ID: 2, Slug: "o-justiceiro", Title: "O Justiceiro", Author: "Garth Ennis",
			Category: "HQs", Type: catalog.TypeHQ, Tags: []string{"Anti-Herói", "Crime"},
			Rating: pointer.To(9.4), Status: catalog.StatusOngoing, IsPremium: true,
			LastUpdated: pointer.To(fixedNow.Add(-72 * time.Hour)), ViewCount: pointer.To[int64](10_600_000),
		},
		{
			ID: 3, Title: "Ângela e os Dragões", Category: "Novel", Type: catalog.TypeNovel,
			Tags: []string{"Fantasia"}, Status: catalog.StatusHiatus,
		},
		{
			ID: 4, Slug: "deadpool", Title: "deadpool", Author: "Rob Liefeld",
			Category: "HQs", Type: catalog.TypeHQ, Tags: []string{"Anti-Herói", "Comédia"},
			Rating: pointer.To(9.5), LastUpdated: pointer.To(fixedNow.Add(-2 * time.Hour)),
		},
		{
			ID: 5, Slug: "solo-leveling", Title: "Solo Leveling", Author: "Chugong",
			Category: "Manhwa", Type: catalog.TypeManhwa, Tags: []string{"Ação"},
			ViewCount: pointer.To[int64](11_900_000), LastUpdated: pointer.To(fixedNow.Add(-24 * time.Hour)),
		},
	}
}

func newStore(records []catalog.TitleRecord) *catalog.Store {
	return catalog.NewStore(records, quietLogger)
}

func titlesOf(records []catalog.TitleRecord) []string {
	return slice.Map(records, func(record catalog.TitleRecord) string { return record.Title })
}

func idsOf(records []catalog.TitleRecord) []int64 {
	return slice.Map(records, func(record catalog.TitleRecord) int64 { return record.ID })
}
