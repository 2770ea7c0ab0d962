// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/taibuivan/tankobon/internal/platform/apperr"
	"github.com/taibuivan/tankobon/internal/platform/constants"
	"github.com/taibuivan/tankobon/internal/platform/metrics"
	"github.com/taibuivan/tankobon/internal/platform/validate"
	"github.com/taibuivan/tankobon/pkg/pagination"
	"github.com/taibuivan/tankobon/pkg/slice"
	"github.com/taibuivan/tankobon/pkg/uuid"
)

// # Contracts & Types

// BrowseParams is a complete, explicit view state for a stateless browse.
// Zero values select the defaults of a fresh view.
type BrowseParams struct {
	Query    string
	Category string
	Sort     SortKey
	ViewMode ViewMode
	Page     int
	PageSize int
}

// SessionPatch lists the view-state changes of one request. Nil fields are
// left alone. Changes apply in field order, so a page set together with a
// new query lands on the new result set.
type SessionPatch struct {
	Query    *string
	Category *string
	Sort     *SortKey
	ViewMode *ViewMode
	Page     *int
}

// BrowseInput is the unchecked form of [BrowseParams], as read from a query
// string or command-line flags.
type BrowseInput struct {
	Query    string
	Category string
	Sort     string
	ViewMode string
	Page     int
	PageSize int
}

// PatchInput is the unchecked form of [SessionPatch], as decoded from JSON.
type PatchInput struct {
	Query    *string `json:"query"`
	Category *string `json:"category"`
	Sort     *string `json:"sort"`
	ViewMode *string `json:"view_mode"`
	Page     *int    `json:"page"`
}

// Direction moves a session one page.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// SessionView is a session together with the page it currently shows.
type SessionView struct {
	Session Session
	Page    PagedResult
}

// Detail is the payload of a title page.
type Detail struct {
	Title    TitleRecord
	Related  []TitleRecord
	Comments []Comment
}

// ServiceConfig tunes a [Service].
type ServiceConfig struct {
	// Locale is the BCP-47 tag used for alphabetical collation.
	Locale string
	// PageSize is the default page size of every view, capped at [pagination.MaxLimit].
	PageSize int
	// SessionTTL is how long an idle view session survives.
	SessionTTL time.Duration
}

// Service is the entry point of the catalogue engine for the HTTP API and the CLI.
type Service struct {
	store    *Store
	sessions SessionStore
	sorter   Sorter
	pageSize int
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// ServiceOption customises a [Service].
type ServiceOption func(*Service)

// WithClock replaces time.Now, used for session expiry.
func WithClock(now func() time.Time) ServiceOption {
	return func(service *Service) {
		service.now = now
	}
}

// NewService constructs a [Service] over an immutable store.
func NewService(store *Store, sessions SessionStore, cfg ServiceConfig, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.PageSize = pagination.CapLimit(cfg.PageSize, pagination.DefaultLimit)
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	service := &Service{
		store:    store,
		sessions: sessions,
		sorter:   NewSorter(cfg.Locale),
		pageSize: cfg.PageSize,
		ttl:      cfg.SessionTTL,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(service)
	}

	metrics.CatalogTitles.Set(float64(store.Len()))
	return service
}

// Store returns the underlying catalogue snapshot.
func (service *Service) Store() *Store {
	return service.store
}

// PageSize returns the default page size of a view.
func (service *Service) PageSize() int {
	return service.pageSize
}

// # Stateless Browsing

/*
Browse derives one page from explicit parameters.

Description: Equivalent to mounting a fresh view and calling the setters in
order (query, category, sort, view mode) before jumping to params.Page, which
is clamped into the result set.

Parameters:
  - params: BrowseParams

Returns:
  - PagedResult: The derived page
*/
func (service *Service) Browse(params BrowseParams) PagedResult {
	pageSize := pagination.CapLimit(params.PageSize, service.pageSize)

	controller := service.controller(DefaultViewState(pageSize))
	controller.SetQuery(params.Query)
	controller.SetCategory(params.Category)
	controller.SetSort(params.Sort)
	controller.SetViewMode(params.ViewMode)
	if params.Page > 0 {
		controller.SetPage(params.Page)
	}

	return service.derive(controller)
}

// Categories lists the filter values offered to visitors.
func (service *Service) Categories() []string {
	return service.store.Categories()
}

/*
Detail resolves a title page.

Parameters:
  - slug: string

Returns:
  - Detail: The title, chapters newest first, related titles and comments
  - error: ErrTitleNotFound
*/
func (service *Service) Detail(slug string) (Detail, error) {
	record, err := service.store.LookupBySlug(slug)
	if err != nil {
		return Detail{}, err
	}

	record.Chapters = record.ChaptersNewestFirst()
	return Detail{
		Title:    record,
		Related:  service.store.Related(slug, constants.DefaultRelatedTitles),
		Comments: publishedComments(service.now()),
	}, nil
}

// # Comments

/*
Comments lists the comments under a title.

Description: With a session id, each comment carries that visitor's vote,
counted into its totals. An empty id lists the published totals.

Parameters:
  - ctx: context.Context
  - slug: string
  - sessionID: string (optional)

Returns:
  - []Comment: Comments in display order
  - error: ErrTitleNotFound, ErrSessionNotFound or storage errors
*/
func (service *Service) Comments(ctx context.Context, slug, sessionID string) ([]Comment, error) {
	if _, err := service.store.LookupBySlug(slug); err != nil {
		return nil, err
	}

	comments := publishedComments(service.now())
	if sessionID == "" {
		return comments, nil
	}

	session, _, err := service.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return slice.Map(comments, func(comment Comment) Comment {
		return comment.withReaction(session.Reaction(slug, comment.ID))
	}), nil
}

/*
React casts a like or dislike on a comment for one session.

Description: Casting the vote the session already holds withdraws it.
Casting the other vote replaces it, so a comment is never both liked and
disliked by the same session. The session lifetime is extended.

Parameters:
  - ctx: context.Context
  - sessionID: string
  - slug: string
  - commentID: int64
  - reaction: Reaction (like or dislike)

Returns:
  - Comment: The comment with the session's resulting vote counted
  - error: ValidationError, ErrSessionNotFound, ErrTitleNotFound, ErrCommentNotFound
*/
func (service *Service) React(ctx context.Context, sessionID, slug string, commentID int64, reaction Reaction) (Comment, error) {
	if !reaction.IsValid() {
		return Comment{}, apperr.ValidationError("Invalid reaction", apperr.FieldError{
			Field:   FieldReaction,
			Message: "Must be one of: like, dislike",
		})
	}

	// 1. Resolve the session, the title and the comment
	session, controller, err := service.load(ctx, sessionID)
	if err != nil {
		return Comment{}, err
	}
	if _, err := service.store.LookupBySlug(slug); err != nil {
		return Comment{}, err
	}

	index := slices.IndexFunc(seedComments, func(seed seedComment) bool { return seed.id == commentID })
	if index < 0 {
		return Comment{}, ErrCommentNotFound
	}

	// 2. Toggle the vote
	key := reactionKey(slug, commentID)
	next := toggleReaction(session.Reactions[key], reaction)

	session.Reactions = maps.Clone(session.Reactions)
	if next == ReactionNone {
		delete(session.Reactions, key)
	} else {
		if session.Reactions == nil {
			session.Reactions = make(map[string]Reaction, 1)
		}
		session.Reactions[key] = next
	}

	// 3. Persist with a renewed expiry
	if _, err := service.persist(ctx, session, controller); err != nil {
		return Comment{}, err
	}

	service.logger.DebugContext(ctx, "comment_reaction_toggled",
		slog.String(FieldSession, session.ID),
		slog.Int64(FieldComment, commentID),
		slog.String(FieldReaction, string(next)),
	)
	return publishedComments(service.now())[index].withReaction(next), nil
}

// SubmitComment accepts a comment for moderation. Nothing is published; a
// comment shorter than [MinCommentLength] characters after trimming is rejected.
func (service *Service) SubmitComment(ctx context.Context, slug, content string) error {
	if _, err := service.store.LookupBySlug(slug); err != nil {
		return err
	}
	if err := validateComment(content); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "comment_pending_moderation",
		slog.String("slug", slug),
		slog.Int("length", utf8.RuneCountInString(strings.TrimSpace(content))),
	)
	return nil
}

// # View Sessions

// OpenSession mounts a new view in its default state.
func (service *Service) OpenSession(ctx context.Context) (SessionView, error) {
	session := Session{
		ID:        uuid.New(),
		State:     DefaultViewState(service.pageSize),
		Favorites: []string{},
	}

	view, err := service.persist(ctx, session, service.controller(session.State))
	if err != nil {
		return SessionView{}, err
	}

	metrics.ViewSessionsOpenedTotal.Inc()
	service.logger.DebugContext(ctx, "view_session_opened", slog.String(FieldSession, session.ID))
	return view, nil
}

// Session returns a session and its current page, extending its lifetime.
func (service *Service) Session(ctx context.Context, id string) (SessionView, error) {
	session, controller, err := service.load(ctx, id)
	if err != nil {
		return SessionView{}, err
	}
	return service.persist(ctx, session, controller)
}

/*
Apply changes the view state of a session.

Description: Each present field goes through the matching controller setter,
so any change other than the page resets the page to 1, and the page itself
is clamped into the resulting set.

Parameters:
  - ctx: context.Context
  - id: string
  - patch: SessionPatch

Returns:
  - SessionView: The updated session and page
  - error: ErrSessionNotFound or storage errors
*/
func (service *Service) Apply(ctx context.Context, id string, patch SessionPatch) (SessionView, error) {
	session, controller, err := service.load(ctx, id)
	if err != nil {
		return SessionView{}, err
	}

	if patch.Query != nil {
		controller.SetQuery(*patch.Query)
	}
	if patch.Category != nil {
		controller.SetCategory(*patch.Category)
	}
	if patch.Sort != nil {
		controller.SetSort(*patch.Sort)
	}
	if patch.ViewMode != nil {
		controller.SetViewMode(*patch.ViewMode)
	}
	if patch.Page != nil {
		controller.SetPage(*patch.Page)
	}

	return service.persist(ctx, session, controller)
}

// Turn moves a session one page forward or back. Turning past either end is a no-op.
func (service *Service) Turn(ctx context.Context, id string, direction Direction) (SessionView, error) {
	session, controller, err := service.load(ctx, id)
	if err != nil {
		return SessionView{}, err
	}

	switch direction {
	case DirectionNext:
		controller.NextPage()
	case DirectionPrevious:
		controller.PreviousPage()
	default:
		return SessionView{}, apperr.ValidationError("Unknown direction " + strconv.Quote(string(direction)))
	}

	return service.persist(ctx, session, controller)
}

// CloseSession discards a session.
func (service *Service) CloseSession(ctx context.Context, id string) error {
	if !uuid.Valid(id) {
		return ErrSessionNotFound
	}
	return service.sessions.Delete(ctx, id)
}

/*
ToggleFavorite adds or removes a title from the session favourites.

Parameters:
  - ctx: context.Context
  - id: string (session)
  - slug: string (title)
  - on: bool (true adds, false removes; both are idempotent)

Returns:
  - Session: The updated session
  - error: ErrSessionNotFound, ErrTitleNotFound or storage errors
*/
func (service *Service) ToggleFavorite(ctx context.Context, id, slug string, on bool) (Session, error) {
	if _, err := service.store.LookupBySlug(slug); err != nil {
		return Session{}, err
	}

	session, controller, err := service.load(ctx, id)
	if err != nil {
		return Session{}, err
	}

	index := slices.Index(session.Favorites, slug)
	switch {
	case on && index < 0:
		session.Favorites = append(session.Favorites, slug)
	case !on && index >= 0:
		session.Favorites = slices.Delete(session.Favorites, index, index+1)
	}

	view, err := service.persist(ctx, session, controller)
	if err != nil {
		return Session{}, err
	}
	return view.Session, nil
}

// # Input Checking

/*
ParseBrowse checks a browse request.

Description: Empty sort and view mode select the defaults; unknown values are
rejected so a typo is not silently served as the default ordering. A negative
page is rejected and zero means the first page. The page size is capped at
[pagination.MaxLimit]; a non-positive size selects the service default.

Parameters:
  - input: BrowseInput

Returns:
  - BrowseParams: Typed parameters
  - error: apperr.ValidationError with field details
*/
func ParseBrowse(input BrowseInput) (BrowseParams, error) {
	validator := &validate.Validator{}

	key, ok := ParseSortKey(input.Sort)
	validator.Custom(FieldSort, !ok, "Unknown sort key "+strconv.Quote(input.Sort))

	mode := ViewMode(strings.ToLower(strings.TrimSpace(input.ViewMode)))
	if mode == "" {
		mode = ViewGrid
	}
	validator.
		OneOf(FieldViewMode, string(mode), string(ViewGrid), string(ViewList)).
		Custom(FieldPage, input.Page < 0, "Must not be negative")

	if err := validator.Err(); err != nil {
		return BrowseParams{}, err
	}

	return BrowseParams{
		Query:    input.Query,
		Category: input.Category,
		Sort:     key,
		ViewMode: mode,
		Page:     input.Page,
		PageSize: min(input.PageSize, pagination.MaxLimit),
	}, nil
}

// ParsePatch checks a session patch. Present sort and view mode values must
// be known; a present page must be positive.
func ParsePatch(input PatchInput) (SessionPatch, error) {
	validator := &validate.Validator{}
	patch := SessionPatch{
		Query:    input.Query,
		Category: input.Category,
		Page:     input.Page,
	}

	if input.Sort != nil {
		key, ok := ParseSortKey(*input.Sort)
		validator.Custom(FieldSort, !ok, "Unknown sort key "+strconv.Quote(*input.Sort))
		patch.Sort = &key
	}
	if input.ViewMode != nil {
		mode := ViewMode(strings.ToLower(strings.TrimSpace(*input.ViewMode)))
		validator.OneOf(FieldViewMode, string(mode), string(ViewGrid), string(ViewList))
		patch.ViewMode = &mode
	}
	if input.Page != nil {
		validator.Positive(FieldPage, int64(*input.Page))
	}

	if err := validator.Err(); err != nil {
		return SessionPatch{}, err
	}
	return patch, nil
}

// # Internals

func (service *Service) controller(state ViewState) *Controller {
	return Restore(service.store, state, WithPageSize(service.pageSize), WithSorter(service.sorter))
}

// load fetches a session and rebuilds its controller.
func (service *Service) load(ctx context.Context, id string) (Session, *Controller, error) {
	if !uuid.Valid(id) {
		return Session{}, nil, ErrSessionNotFound
	}

	session, err := service.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, nil, err
	}
	return session, service.controller(session.State), nil
}

// persist stores the controller state with a renewed expiry and derives the page.
func (service *Service) persist(ctx context.Context, session Session, controller *Controller) (SessionView, error) {
	session.State = controller.State()
	session.ExpiresAt = service.now().Add(service.ttl)
	if session.Favorites == nil {
		session.Favorites = []string{}
	}

	if err := service.sessions.Save(ctx, session); err != nil {
		return SessionView{}, err
	}

	return SessionView{Session: session, Page: service.derive(controller)}, nil
}

func (service *Service) derive(controller *Controller) PagedResult {
	result := controller.Derive()

	metrics.CatalogDerivesTotal.WithLabelValues(string(result.State.SortKey)).Inc()
	if result.TotalItems == 0 {
		metrics.CatalogEmptyResultsTotal.Inc()
		service.logger.Debug("catalog_empty_result",
			slog.String(FieldQuery, result.State.SearchQuery),
			slog.String(FieldCategory, result.State.ActiveCategory),
		)
	}
	return result
}
