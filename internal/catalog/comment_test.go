// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/internal/platform/apperr"
)

func TestService_Comments(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t, mixedTitles(), 12)

	comments, err := service.Comments(ctx, "blue-lock", "")
	require.NoError(t, err)
	require.Len(t, comments, 3)

	first := comments[0]
	assert.Equal(t, "JusticeiroFan", first.User)
	assert.Equal(t, 45, first.Likes)
	assert.Equal(t, 2, first.Dislikes)
	assert.Equal(t, catalog.ReactionNone, first.Reaction)
	assert.True(t, first.PostedAt.Equal(fixedNow.Add(-2*time.Hour)))

	_, err = service.Comments(ctx, "one-piece", "")
	assert.ErrorIs(t, err, catalog.ErrTitleNotFound)

	_, err = service.Comments(ctx, "blue-lock", "not-a-session")
	assert.ErrorIs(t, err, catalog.ErrSessionNotFound)
}

/*
TestService_React covers the vote toggle: a repeated vote withdraws itself and
the opposite vote replaces it, so likes and dislikes never both count.
*/
func TestService_React(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t, mixedTitles(), 12)

	opened, err := service.OpenSession(ctx)
	require.NoError(t, err)
	id := opened.Session.ID

	steps := []struct {
		cast         catalog.Reaction
		want         catalog.Reaction
		likes, hates int
	}{
		{catalog.ReactionLike, catalog.ReactionLike, 46, 2},
		{catalog.ReactionLike, catalog.ReactionNone, 45, 2},
		{catalog.ReactionDislike, catalog.ReactionDislike, 45, 3},
		{catalog.ReactionLike, catalog.ReactionLike, 46, 2},
		{catalog.ReactionDislike, catalog.ReactionDislike, 45, 3},
		{catalog.ReactionDislike, catalog.ReactionNone, 45, 2},
	}

	for index, step := range steps {
		comment, err := service.React(ctx, id, "blue-lock", 1, step.cast)
		require.NoError(t, err, "step %d", index)
		assert.Equal(t, step.want, comment.Reaction, "step %d", index)
		assert.Equal(t, step.likes, comment.Likes, "step %d", index)
		assert.Equal(t, step.hates, comment.Dislikes, "step %d", index)
	}

	t.Run("votes are scoped to the title and session", func(t *testing.T) {
		_, err := service.React(ctx, id, "blue-lock", 3, catalog.ReactionLike)
		require.NoError(t, err)

		comments, err := service.Comments(ctx, "blue-lock", id)
		require.NoError(t, err)
		assert.Equal(t, catalog.ReactionLike, comments[2].Reaction)
		assert.Equal(t, 89, comments[2].Likes)

		other, err := service.Comments(ctx, "deadpool", id)
		require.NoError(t, err)
		assert.Equal(t, catalog.ReactionNone, other[2].Reaction)

		anonymous, err := service.Comments(ctx, "blue-lock", "")
		require.NoError(t, err)
		assert.Equal(t, 88, anonymous[2].Likes)
	})

	t.Run("rejections", func(t *testing.T) {
		_, err := service.React(ctx, id, "blue-lock", 99, catalog.ReactionLike)
		assert.ErrorIs(t, err, catalog.ErrCommentNotFound)

		_, err = service.React(ctx, id, "one-piece", 1, catalog.ReactionLike)
		assert.ErrorIs(t, err, catalog.ErrTitleNotFound)

		_, err = service.React(ctx, id, "blue-lock", 1, "love")
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

		_, err = service.React(ctx, "not-a-session", "blue-lock", 1, catalog.ReactionLike)
		assert.ErrorIs(t, err, catalog.ErrSessionNotFound)
	})
}

func TestService_ReactExtendsSession(t *testing.T) {
	ctx := context.Background()
	service, timeSource := newService(t, mixedTitles(), 12)

	opened, err := service.OpenSession(ctx)
	require.NoError(t, err)

	timeSource.Advance(9 * time.Minute)
	_, err = service.React(ctx, opened.Session.ID, "blue-lock", 2, catalog.ReactionDislike)
	require.NoError(t, err)

	timeSource.Advance(9 * time.Minute)
	view, err := service.Session(ctx, opened.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ReactionDislike, view.Session.Reaction("blue-lock", 2))
}

func TestService_SubmitComment(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t, mixedTitles(), 12)

	require.NoError(t, service.SubmitComment(ctx, "blue-lock", "Ótimo!"))

	for _, content := range []string{"", "    ", "  bom  ", "Olá"} {
		err := service.SubmitComment(ctx, "blue-lock", content)
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"), "%q", content)
	}

	assert.ErrorIs(t, service.SubmitComment(ctx, "one-piece", "Muito bom"), catalog.ErrTitleNotFound)

	// Submissions wait for moderation and are never listed
	comments, err := service.Comments(ctx, "blue-lock", "")
	require.NoError(t, err)
	assert.Len(t, comments, 3)
}

func TestService_DetailIncludesComments(t *testing.T) {
	service, _ := newService(t, mixedTitles(), 12)

	detail, err := service.Detail("blue-lock")
	require.NoError(t, err)
	require.Len(t, detail.Comments, 3)
	assert.Equal(t, "PremiumReader", detail.Comments[2].User)
}
