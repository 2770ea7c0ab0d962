// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
	requestutil "github.com/taibuivan/tankobon/internal/platform/request"
	"github.com/taibuivan/tankobon/internal/platform/respond"
	"github.com/taibuivan/tankobon/pkg/pagination"
	"github.com/taibuivan/tankobon/pkg/slice"
)

// # Definitions & Constructors

// Handler exposes the catalogue engine over HTTP.
//
// It is a thin transport layer: every request is parsed, handed to [Service],
// and the derived page is rendered into cards.
type Handler struct {
	service *Service
	badges  *BadgePicker
	now     func() time.Time
}

// NewHandler constructs a [Handler]. A nil picker uses a randomly seeded one.
func NewHandler(service *Service, badges *BadgePicker) *Handler {
	if badges == nil {
		badges = NewBadgePicker(nil)
	}
	return &Handler{service: service, badges: badges, now: time.Now}
}

// WithClock replaces the clock used for the relative "updated ago" labels.
func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.now = now
	return handler
}

/*
Routes returns the catalogue router, mounted at /api/v1/catalog.

Endpoints:
  - GET    /                                : Stateless browse
  - GET    /categories                      : Filter values
  - POST   /sessions                        : Open a view session
  - GET    /sessions/{id}                   : Current page of a session
  - PATCH  /sessions/{id}                   : Change query, category, sort, view mode or page
  - POST   /sessions/{id}/next, /previous   : Turn the page
  - PUT    /sessions/{id}/favorites/{slug}  : Heart a title
  - DELETE /sessions/{id}/favorites/{slug}  : Un-heart a title
  - POST   /sessions/{id}/comments/{slug}/{comment}/like, /dislike : Toggle a comment vote
  - DELETE /sessions/{id}                   : Close the session
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.browse)
	router.Get("/categories", handler.categories)

	router.Route("/sessions", func(r chi.Router) {
		r.Post("/", handler.openSession)
		r.Get("/{id}", handler.getSession)
		r.Patch("/{id}", handler.patchSession)
		r.Delete("/{id}", handler.closeSession)
		r.Post("/{id}/next", handler.turn(DirectionNext))
		r.Post("/{id}/previous", handler.turn(DirectionPrevious))
		r.Put("/{id}/favorites/{slug}", handler.favorite(true))
		r.Delete("/{id}/favorites/{slug}", handler.favorite(false))
		r.Post("/{id}/comments/{slug}/{comment}/like", handler.react(ReactionLike))
		r.Post("/{id}/comments/{slug}/{comment}/dislike", handler.react(ReactionDislike))
	})

	return router
}

// TitleRoutes returns the title detail router, mounted at /api/v1/titles.
//
// # Endpoints
//   - GET  /{slug}          : Title page with chapters, related titles and comments.
//   - GET  /{slug}/comments : Comments, with a visitor's votes when ?session= is given.
//   - POST /{slug}/comments : Submit a comment for moderation.
func (handler *Handler) TitleRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{slug}", handler.detail)
	router.Get("/{slug}/comments", handler.listComments)
	router.Post("/{slug}/comments", handler.submitComment)
	return router
}

// # Response Payloads

type titleCard struct {
	ID                 int64      `json:"id"`
	Slug               string     `json:"slug"`
	Title              string     `json:"title"`
	Author             string     `json:"author,omitempty"`
	Category           string     `json:"category,omitempty"`
	Type               Type       `json:"type,omitempty"`
	Tags               []string   `json:"tags"`
	Rating             *float64   `json:"rating"`
	RatingLabel        string     `json:"rating_label"`
	Status             Status     `json:"status"`
	IsPremium          bool       `json:"is_premium"`
	IsNew              bool       `json:"is_new"`
	Badge              string     `json:"badge,omitempty"`
	LastUpdated        *time.Time `json:"last_updated"`
	UpdatedAgo         string     `json:"updated_ago,omitempty"`
	LatestChapterLabel string     `json:"latest_chapter_label,omitempty"`
	ViewCount          *int64     `json:"view_count"`
	ViewsLabel         string     `json:"views_label"`
	CoverURL           string     `json:"cover_url,omitempty"`
	IsFavorite         bool       `json:"is_favorite"`
}

type chapterItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ReleasedAt  time.Time `json:"released_at"`
	ReleasedAgo string    `json:"released_ago"`
	Language    string    `json:"language,omitempty"`
	IsPremium   bool      `json:"is_premium"`
}

type titleDetail struct {
	titleCard
	Synopsis         string        `json:"synopsis,omitempty"`
	Year             *int          `json:"year,omitempty"`
	OriginalLanguage string        `json:"original_language,omitempty"`
	AgeRating        string        `json:"age_rating,omitempty"`
	Demographic      string        `json:"demographic,omitempty"`
	Chapters         []chapterItem `json:"chapters"`
	Related          []titleCard   `json:"related"`
	Comments         []commentItem `json:"comments"`
}

type commentItem struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	AvatarURL string    `json:"avatar_url"`
	Content   string    `json:"content"`
	PostedAt  time.Time `json:"posted_at"`
	PostedAgo string    `json:"posted_ago"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	Reaction  Reaction  `json:"reaction,omitempty"`
}

// commentInput is the body of a comment submission.
type commentInput struct {
	Content string `json:"content"`
}

type pageData struct {
	Items []titleCard `json:"items"`
	State ViewState   `json:"state"`
}

type sessionData struct {
	ID        string      `json:"id"`
	ExpiresAt time.Time   `json:"expires_at"`
	Favorites []string    `json:"favorites"`
	Items     []titleCard `json:"items"`
	State     ViewState   `json:"state"`
}

func (handler *Handler) card(record TitleRecord, favorites []string) titleCard {
	card := titleCard{
		ID:                 record.ID,
		Slug:               record.Slug,
		Title:              record.Title,
		Author:             record.Author,
		Category:           record.Category,
		Type:               record.Type,
		Tags:               record.Tags,
		Rating:             record.Rating,
		RatingLabel:        FormatRating(record.Rating),
		Status:             record.Status,
		IsPremium:          record.IsPremium,
		IsNew:              record.IsNew,
		Badge:              handler.badges.Pick(record),
		LastUpdated:        record.LastUpdated,
		LatestChapterLabel: record.LatestChapterLabel,
		ViewCount:          record.ViewCount,
		ViewsLabel:         FormatViews(record.ViewCount),
		CoverURL:           record.CoverURL,
		IsFavorite:         slice.Any(favorites, func(slug string) bool { return slug == record.Slug }),
	}
	if card.Tags == nil {
		card.Tags = []string{}
	}
	if record.LastUpdated != nil {
		card.UpdatedAgo = RelativeTime(*record.LastUpdated, handler.now())
	}
	return card
}

func (handler *Handler) comments(comments []Comment) []commentItem {
	now := handler.now()
	return slice.Map(comments, func(comment Comment) commentItem {
		return commentItem{
			ID:        comment.ID,
			User:      comment.User,
			AvatarURL: comment.AvatarURL,
			Content:   comment.Content,
			PostedAt:  comment.PostedAt,
			PostedAgo: RelativeTime(comment.PostedAt, now),
			Likes:     comment.Likes,
			Dislikes:  comment.Dislikes,
			Reaction:  comment.Reaction,
		}
	})
}

func (handler *Handler) cards(records []TitleRecord, favorites []string) []titleCard {
	return slice.Map(records, func(record TitleRecord) titleCard {
		return handler.card(record, favorites)
	})
}

func pageMeta(result PagedResult) pagination.Meta {
	return pagination.Meta{
		Page:       result.CurrentPage,
		Limit:      result.State.PageSize,
		Total:      result.TotalItems,
		TotalPages: result.TotalPages,
	}
}

func (handler *Handler) writeSession(writer http.ResponseWriter, view SessionView, status int) {
	data := sessionData{
		ID:        view.Session.ID,
		ExpiresAt: view.Session.ExpiresAt,
		Favorites: view.Session.Favorites,
		Items:     handler.cards(view.Page.Items, view.Session.Favorites),
		State:     view.Page.State,
	}
	respond.JSON(writer, status, respond.PaginatedEnvelope{Data: data, Meta: pageMeta(view.Page)})
}

// # Browsing

/*
browse derives one page without a session.

GET /api/v1/catalog?q=&category=&sort=&view=&page=&limit=

Description: The query is matched as given; only category, sort and view are
trimmed. An unknown sort key or view mode is a 400, as is a negative or
non-numeric page or limit. An absent or zero page is the first page.
*/
func (handler *Handler) browse(writer http.ResponseWriter, request *http.Request) {
	paging, err := pagination.FromRequest(request, handler.service.PageSize())
	if err != nil {
		respond.Error(writer, request, pagingError(err))
		return
	}

	params, err := ParseBrowse(BrowseInput{
		Query:    requestutil.Query(request, "q"),
		Category: requestutil.TrimmedQuery(request, "category"),
		Sort:     requestutil.TrimmedQuery(request, "sort"),
		ViewMode: requestutil.TrimmedQuery(request, "view"),
		Page:     paging.Page,
		PageSize: paging.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result := handler.service.Browse(params)
	respond.Paginated(writer, pageData{
		Items: handler.cards(result.Items, nil),
		State: result.State,
	}, pageMeta(result))
}

// pagingError turns a malformed page or limit parameter into a validation error.
func pagingError(err error) error {
	var paramErr *pagination.ParamError
	if !errors.As(err, &paramErr) {
		return err
	}
	message := "Must be a number, got " + strconv.Quote(paramErr.Value)
	if paramErr.Param == FieldPage {
		message = "Must be a non-negative number, got " + strconv.Quote(paramErr.Value)
	}
	return apperr.ValidationError("Invalid pagination", apperr.FieldError{
		Field:   paramErr.Param,
		Message: message,
	}).WithCause(err)
}

// categories lists the filter values.
//
// GET /api/v1/catalog/categories
func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Categories())
}

/*
detail renders a title page.

GET /api/v1/titles/{slug}

Returns:
  - 200: titleDetail
  - 404: Unknown slug
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Detail(requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	now := handler.now()
	chapters := slice.Map(detail.Title.Chapters, func(chapter Chapter) chapterItem {
		return chapterItem{
			ID:          chapter.ID,
			Title:       chapter.Title,
			ReleasedAt:  chapter.ReleasedAt,
			ReleasedAgo: RelativeTime(chapter.ReleasedAt, now),
			Language:    chapter.Language,
			IsPremium:   chapter.IsPremium,
		}
	})

	record := detail.Title
	respond.OK(writer, titleDetail{
		titleCard:        handler.card(record, nil),
		Synopsis:         record.Synopsis,
		Year:             record.Year,
		OriginalLanguage: record.OriginalLanguage,
		AgeRating:        record.AgeRating,
		Demographic:      record.Demographic,
		Chapters:         chapters,
		Related:          handler.cards(detail.Related, nil),
		Comments:         handler.comments(detail.Comments),
	})
}

// # Comments

// listComments renders the comments under a title.
//
// GET /api/v1/titles/{slug}/comments?session=
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.Comments(request.Context(),
		requestutil.Param(request, "slug"),
		requestutil.TrimmedQuery(request, "session"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.comments(comments))
}

/*
submitComment accepts a comment for moderation.

POST /api/v1/titles/{slug}/comments

Request:
  - Body: {"content": "..."}

Returns:
  - 202: Pending moderation; nothing is published
  - 400: Invalid JSON or fewer than five characters
  - 404: Unknown slug
*/
func (handler *Handler) submitComment(writer http.ResponseWriter, request *http.Request) {
	var input commentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SubmitComment(request.Context(), requestutil.Param(request, "slug"), input.Content); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Accepted(writer, map[string]string{"message": CommentPendingMessage})
}

// react toggles a session's vote on a comment.
//
// POST /api/v1/catalog/sessions/{id}/comments/{slug}/{comment}/like, /dislike
func (handler *Handler) react(reaction Reaction) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		commentID, err := strconv.ParseInt(requestutil.Param(request, "comment"), 10, 64)
		if err != nil {
			respond.Error(writer, request, ErrCommentNotFound)
			return
		}

		comment, err := handler.service.React(request.Context(),
			requestutil.Param(request, "id"),
			requestutil.Param(request, "slug"),
			commentID,
			reaction,
		)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, handler.comments([]Comment{comment})[0])
	}
}

// # View Sessions

// openSession mounts a view in its default state.
//
// POST /api/v1/catalog/sessions
func (handler *Handler) openSession(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.OpenSession(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.writeSession(writer, view, http.StatusCreated)
}

// getSession renders the current page of a session.
//
// GET /api/v1/catalog/sessions/{id}
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.Session(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.writeSession(writer, view, http.StatusOK)
}

/*
patchSession changes the view state of a session.

PATCH /api/v1/catalog/sessions/{id}

Request:
  - Body: PatchInput (query, category, sort, view_mode, page; all optional)

Returns:
  - 200: The updated session and page
  - 400: Invalid JSON, unknown sort key or view mode, non-positive page
  - 404: Unknown or expired session
*/
func (handler *Handler) patchSession(writer http.ResponseWriter, request *http.Request) {
	var input PatchInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch, err := ParsePatch(input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Apply(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.writeSession(writer, view, http.StatusOK)
}

// turn moves a session one page.
//
// POST /api/v1/catalog/sessions/{id}/next, /previous
func (handler *Handler) turn(direction Direction) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		view, err := handler.service.Turn(request.Context(), requestutil.Param(request, "id"), direction)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		handler.writeSession(writer, view, http.StatusOK)
	}
}

// favorite hearts (on) or un-hearts a title. Both directions are idempotent.
//
// PUT|DELETE /api/v1/catalog/sessions/{id}/favorites/{slug}
func (handler *Handler) favorite(on bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		session, err := handler.service.ToggleFavorite(request.Context(),
			requestutil.Param(request, "id"),
			requestutil.Param(request, "slug"),
			on,
		)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, map[string]any{
			"id":        session.ID,
			"favorites": session.Favorites,
		})
	}
}

// closeSession discards a session.
//
// DELETE /api/v1/catalog/sessions/{id}
func (handler *Handler) closeSession(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.CloseSession(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
