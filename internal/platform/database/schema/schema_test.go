// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tankobon/internal/platform/database/schema"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", schema.Placeholders(0))
	assert.Equal(t, "$1", schema.Placeholders(1))
	assert.Equal(t, "$1, $2, $3", schema.Placeholders(3))
}

func TestColumns_MatchInsertArity(t *testing.T) {
	assert.Len(t, schema.CatalogTitle.Columns(), 20)
	assert.NotContains(t, schema.CatalogTitle.Columns(), schema.CatalogTitle.Position)
	assert.Len(t, schema.CatalogChapter.Columns(), 6)
	assert.Equal(t, "title_id, id, title, released_at, language, is_premium", schema.List(schema.CatalogChapter.Columns()))
}
