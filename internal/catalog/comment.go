// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
	"github.com/taibuivan/tankobon/pkg/slice"
)

// # Comments

// ErrCommentNotFound is returned for reactions to an unknown comment.
var ErrCommentNotFound = apperr.NotFound("Comment")

// MinCommentLength is the shortest comment, in characters after trimming, accepted for moderation.
const MinCommentLength = 5

// CommentPendingMessage is shown once a comment is accepted for moderation.
const CommentPendingMessage = "Comentário enviado! Aguardando moderação."

// Reaction is a visitor's vote on a comment. A visitor holds at most one.
type Reaction string

const (
	ReactionNone    Reaction = ""
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// IsValid reports whether r is a vote that can be cast.
func (r Reaction) IsValid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// Comment is one reader comment under a title.
type Comment struct {
	ID        int64
	User      string
	AvatarURL string
	Content   string
	PostedAt  time.Time
	Likes     int
	Dislikes  int

	// Reaction is the requesting visitor's own vote, already counted in Likes or Dislikes.
	Reaction Reaction
}

// seedComment is a published comment, aged relative to the moment it is shown.
type seedComment struct {
	id        int64
	user      string
	avatarURL string
	content   string
	age       time.Duration
	likes     int
	dislikes  int
}

// seedComments are the published comments shown under every title until
// comment storage exists.
var seedComments = []seedComment{
	{
		id:        1,
		user:      "JusticeiroFan",
		avatarURL: "https://i.pravatar.cc/150?img=1",
		content:   "Capítulo incrível! A luta final foi épica, mal posso esperar pela próxima semana. O autor realmente superou as expectativas.",
		age:       2 * time.Hour,
		likes:     45,
		dislikes:  2,
	},
	{
		id:        2,
		user:      "MangaGeek_99",
		avatarURL: "https://i.pravatar.cc/150?img=2",
		content:   "Achei que a progressão do personagem principal está um pouco lenta. Espero que ele ganhe um power-up logo.",
		age:       24 * time.Hour,
		likes:     12,
		dislikes:  5,
	},
	{
		id:        3,
		user:      "PremiumReader",
		avatarURL: "https://i.pravatar.cc/150?img=3",
		content:   "Leitura offline é uma benção. Vale cada centavo do Premium!",
		age:       3 * 24 * time.Hour,
		likes:     88,
		dislikes:  1,
	},
}

// publishedComments renders the seed comments as seen at now, without votes.
func publishedComments(now time.Time) []Comment {
	return slice.Map(seedComments, func(seed seedComment) Comment {
		return Comment{
			ID:        seed.id,
			User:      seed.user,
			AvatarURL: seed.avatarURL,
			Content:   seed.content,
			PostedAt:  now.Add(-seed.age),
			Likes:     seed.likes,
			Dislikes:  seed.dislikes,
		}
	})
}

// withReaction counts the visitor's own vote into comment.
func (comment Comment) withReaction(reaction Reaction) Comment {
	comment.Reaction = reaction
	switch reaction {
	case ReactionLike:
		comment.Likes++
	case ReactionDislike:
		comment.Dislikes++
	}
	return comment
}

// reactionKey addresses a comment under one title inside [Session.Reactions].
func reactionKey(slug string, commentID int64) string {
	return slug + "#" + strconv.FormatInt(commentID, 10)
}

// toggleReaction applies a vote: casting the held vote again withdraws it,
// and casting the other one replaces it.
func toggleReaction(current, cast Reaction) Reaction {
	if current == cast {
		return ReactionNone
	}
	return cast
}

// validateComment checks a comment submitted for moderation.
func validateComment(content string) error {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinCommentLength {
		return apperr.ValidationError("Invalid comment", apperr.FieldError{
			Field:   FieldContent,
			Message: "O comentário deve ter pelo menos " + strconv.Itoa(MinCommentLength) + " caracteres.",
		})
	}
	return nil
}
