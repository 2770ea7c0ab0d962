// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/pkg/pointer"
)

func TestFormatViews(t *testing.T) {
	tests := []struct {
		views *int64
		want  string
	}{
		{nil, "0"},
		{pointer.To[int64](0), "0"},
		{pointer.To[int64](999), "999"},
		{pointer.To[int64](145_800), "145.8K"},
		{pointer.To[int64](14_500_000), "14.5M"},
		{pointer.To[int64](9_900_000), "9.9M"},
		{pointer.To[int64](2_000_000), "2M"},
		{pointer.To[int64](3_100_000_000), "3.1B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.FormatViews(tt.views))
	}
}

func TestParseViews(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"999", 999},
		{"1,204", 1204},
		{"145.8K", 145_800},
		{"145.8k", 145_800},
		{"14.5M", 14_500_000},
		{"3.1B", 3_100_000_000},
		{" 2M ", 2_000_000},
	}

	for _, tt := range tests {
		got, err := catalog.ParseViews(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}

	for _, text := range []string{"", "alta", "-5", "12m", "1.5T", "14.5 views"} {
		_, err := catalog.ParseViews(text)
		assert.ErrorIs(t, err, catalog.ErrInvalidViews, text)
	}
}

func TestParseViews_InvertsFormatViews(t *testing.T) {
	for _, views := range []int64{0, 999, 145_800, 14_500_000, 3_100_000_000} {
		got, err := catalog.ParseViews(catalog.FormatViews(pointer.To(views)))
		require.NoError(t, err)
		assert.Equal(t, views, got)
	}
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "N/A", catalog.FormatRating(nil))
	assert.Equal(t, "9.8", catalog.FormatRating(pointer.To(9.8)))
	assert.Equal(t, "9.0", catalog.FormatRating(pointer.To(9.0)))
	assert.Equal(t, "0.0", catalog.FormatRating(pointer.To(0.0)))
}

/*
TestRelativeTime covers every threshold of the short pt-BR forms.
*/
func TestRelativeTime(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{-time.Minute, "agora"},
		{0, "0s atrás"},
		{45 * time.Second, "45s atrás"},
		{30 * time.Minute, "30min atrás"},
		{2 * time.Hour, "2h atrás"},
		{3 * day, "3d atrás"},
		{14 * day, "2sem atrás"},
		{29 * day, "1mês atrás"},
		{45 * day, "1mês atrás"},
		{95 * day, "3meses atrás"},
		{362 * day, "1ano atrás"},
		{400 * day, "1ano atrás"},
		{800 * day, "2anos atrás"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.RelativeTime(fixedNow.Add(-tt.ago), fixedNow), tt.ago.String())
	}
}

func TestBadgePicker(t *testing.T) {
	newTitle := catalog.TitleRecord{ID: 1, Title: "Novo", IsNew: true}

	t.Run("old titles get nothing", func(t *testing.T) {
		picker := catalog.NewBadgePicker(rand.New(rand.NewPCG(1, 1)))
		assert.Empty(t, picker.Pick(catalog.TitleRecord{ID: 2, Title: "Antigo"}))
	})

	t.Run("same seed, same badges", func(t *testing.T) {
		first := catalog.NewBadgePicker(rand.New(rand.NewPCG(7, 7)))
		second := catalog.NewBadgePicker(rand.New(rand.NewPCG(7, 7)))

		for range 20 {
			badge := first.Pick(newTitle)
			assert.True(t, slices.Contains(catalog.Badges, badge), badge)
			assert.Equal(t, badge, second.Pick(newTitle))
		}
	})
}
