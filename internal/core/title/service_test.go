// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/core/reference"
	"github.com/al3eon/api-yamdb/internal/core/title"
	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/pkg/pagination"
	"github.com/al3eon/api-yamdb/pkg/pointer"
)

// memoryTitles resolves taxa by slug and derives ratings from scores,
// like the SQL implementation does.
type memoryTitles struct {
	mu         sync.Mutex
	categories map[string]string // slug -> name
	genres     map[string]string
	drafts     map[string]title.Draft
	scores     map[string][]int64
}

func newMemoryTitles() *memoryTitles {
	return &memoryTitles{
		categories: map[string]string{"film": "Film", "book": "Book"},
		genres:     map[string]string{"drama": "Drama", "comedy": "Comedy"},
		drafts:     make(map[string]title.Draft),
		scores:     make(map[string][]int64),
	}
}

func (store *memoryTitles) hydrate(draft title.Draft) *title.Title {
	result := &title.Title{
		ID:          draft.ID,
		Name:        draft.Name,
		Year:        draft.Year,
		Description: draft.Description,
		Genres:      []reference.Taxon{},
	}
	if draft.CategorySlug != nil {
		result.Category = &reference.Taxon{Name: store.categories[*draft.CategorySlug], Slug: *draft.CategorySlug}
	}
	for _, slug := range draft.GenreSlugs {
		result.Genres = append(result.Genres, reference.Taxon{Name: store.genres[slug], Slug: slug})
	}
	for _, score := range store.scores[draft.ID] {
		result.ScoreSum += score
		result.ReviewCount++
	}
	result.Rating = title.Mean(result.ScoreSum, result.ReviewCount)
	return result
}

func (store *memoryTitles) List(_ context.Context, filter title.Filter, limit, offset int) ([]*title.Title, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var matched []*title.Title
	for _, draft := range store.drafts {
		if filter.Year != nil && draft.Year != *filter.Year {
			continue
		}
		matched = append(matched, store.hydrate(draft))
	}
	total := len(matched)
	offset = min(offset, total)
	return matched[offset:min(offset+limit, total)], total, nil
}

func (store *memoryTitles) FindByID(_ context.Context, id string) (*title.Title, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	draft, ok := store.drafts[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return store.hydrate(draft), nil
}

func (store *memoryTitles) check(draft *title.Draft) error {
	if draft.CategorySlug != nil {
		if _, ok := store.categories[*draft.CategorySlug]; !ok {
			return validate.RequiredError(title.FieldCategory, "Unknown category")
		}
	}
	for _, slug := range draft.GenreSlugs {
		if _, ok := store.genres[slug]; !ok {
			return validate.RequiredError(title.FieldGenre, "Unknown genre")
		}
	}
	return nil
}

func (store *memoryTitles) Create(_ context.Context, draft *title.Draft) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.check(draft); err != nil {
		return err
	}
	store.drafts[draft.ID] = *draft
	return nil
}

func (store *memoryTitles) Update(_ context.Context, draft *title.Draft) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.drafts[draft.ID]; !ok {
		return apperr.NotFound("Title")
	}
	if err := store.check(draft); err != nil {
		return err
	}
	store.drafts[draft.ID] = *draft
	return nil
}

func (store *memoryTitles) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.drafts[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(store.drafts, id)
	delete(store.scores, id)
	return nil
}

var fixedNow = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }

func TestMean(t *testing.T) {
	assert.Nil(t, title.Mean(0, 0))

	mean := title.Mean(7, 2)
	require.NotNil(t, mean)
	assert.InDelta(t, 3.5, *mean, 1e-12)

	mean = title.Mean(10, 3)
	require.NotNil(t, mean)
	assert.InDelta(t, 10.0/3.0, *mean, 1e-12)
}

func TestService_Rating(t *testing.T) {
	store := newMemoryTitles()
	service := title.NewService(store, fixedNow)
	ctx := context.Background()

	created, err := service.Create(ctx, title.CreateInput{Name: "Solaris", Year: pointer.To(1972)})
	require.NoError(t, err)
	assert.Nil(t, created.Rating, "a title without reviews has no rating")

	store.scores[created.ID] = []int64{10, 7, 8}

	loaded, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Rating)
	assert.InDelta(t, 25.0/3.0, *loaded.Rating, 1e-12)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		input title.CreateInput
		field string
	}{
		{"MissingName", title.CreateInput{Year: pointer.To(2000)}, title.FieldName},
		{"MissingYear", title.CreateInput{Name: "X"}, title.FieldYear},
		{"FutureYear", title.CreateInput{Name: "X", Year: pointer.To(2027)}, title.FieldYear},
		{"LongName", title.CreateInput{Name: strings.Repeat("x", 257), Year: pointer.To(2000)}, title.FieldName},
		{"UnknownCategory", title.CreateInput{Name: "X", Year: pointer.To(2000), Category: pointer.To("vinyl")}, title.FieldCategory},
		{"UnknownGenre", title.CreateInput{Name: "X", Year: pointer.To(2000), Genre: []string{"drama", "opera"}}, title.FieldGenre},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := title.NewService(newMemoryTitles(), fixedNow)
			_, err := service.Create(ctx, tc.input)
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			assert.Equal(t, tc.field, appErr.Details[0].Field)
		})
	}

	t.Run("CurrentYearAccepted", func(t *testing.T) {
		service := title.NewService(newMemoryTitles(), fixedNow)
		_, err := service.Create(ctx, title.CreateInput{Name: "Now", Year: pointer.To(2026)})
		assert.NoError(t, err)
	})

	t.Run("NoLowerBound", func(t *testing.T) {
		service := title.NewService(newMemoryTitles(), fixedNow)
		_, err := service.Create(ctx, title.CreateInput{Name: "Iliad", Year: pointer.To(-750)})
		assert.NoError(t, err)
	})

	t.Run("BoundFollowsClock", func(t *testing.T) {
		later := func() time.Time { return time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC) }
		service := title.NewService(newMemoryTitles(), later)
		_, err := service.Create(ctx, title.CreateInput{Name: "Next", Year: pointer.To(2027)})
		assert.NoError(t, err)
	})
}

func TestService_Update(t *testing.T) {
	store := newMemoryTitles()
	service := title.NewService(store, fixedNow)
	ctx := context.Background()

	created, err := service.Create(ctx, title.CreateInput{
		Name:     "Stalker",
		Year:     pointer.To(1979),
		Category: pointer.To("film"),
		Genre:    []string{"drama", "drama"},
	})
	require.NoError(t, err)
	require.Len(t, created.Genres, 1)

	updated, err := service.Update(ctx, created.ID, title.UpdateInput{Genre: &[]string{"comedy"}})
	require.NoError(t, err)
	assert.Equal(t, "Stalker", updated.Name)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "film", updated.Category.Slug)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "comedy", updated.Genres[0].Slug)

	_, err = service.Update(ctx, created.ID, title.UpdateInput{Year: pointer.To(3000)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Update(ctx, "not-a-uuid", title.UpdateInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_Delete(t *testing.T) {
	store := newMemoryTitles()
	service := title.NewService(store, fixedNow)
	ctx := context.Background()

	created, err := service.Create(ctx, title.CreateInput{Name: "Gone", Year: pointer.To(1999)})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))
	assert.True(t, apperr.HasCode(service.Delete(ctx, created.ID), apperr.CodeNotFound))

	titles, total, err := service.List(ctx, title.Filter{}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, titles)
}

func TestHandler_Access(t *testing.T) {
	routes := title.NewHandler(title.NewService(newMemoryTitles(), fixedNow)).Routes()

	admin := &sec.Principal{UserID: "a", Username: "admin", Role: sec.RoleAdmin}
	moderator := &sec.Principal{UserID: "m", Username: "mod", Role: sec.RoleModerator}
	user := &sec.Principal{UserID: "u", Username: "user", Role: sec.RoleUser}
	body := `{"name":"Alien","year":1979,"category":"film","genre":["drama"]}`

	cases := []struct {
		name      string
		principal *sec.Principal
		method    string
		body      string
		status    int
	}{
		{"AnonymousList", nil, http.MethodGet, "", http.StatusOK},
		{"AnonymousCreate", nil, http.MethodPost, body, http.StatusUnauthorized},
		{"UserCreate", user, http.MethodPost, body, http.StatusForbidden},
		{"ModeratorCreate", moderator, http.MethodPost, body, http.StatusForbidden},
		{"AdminCreate", admin, http.MethodPost, body, http.StatusCreated},
		{"AdminMalformed", admin, http.MethodPost, `{"name":`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(tc.method, "/", strings.NewReader(tc.body))
			if tc.principal != nil {
				request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tc.principal))
			}
			recorder := httptest.NewRecorder()
			routes.ServeHTTP(recorder, request)
			assert.Equal(t, tc.status, recorder.Code, recorder.Body.String())
		})
	}
}

func TestHandler_RatingIsNullWithoutReviews(t *testing.T) {
	store := newMemoryTitles()
	service := title.NewService(store, fixedNow)
	created, err := service.Create(context.Background(), title.CreateInput{Name: "Quiet", Year: pointer.To(2001)})
	require.NoError(t, err)

	routes := title.NewHandler(service).Routes()
	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+created.ID, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"rating":null`)
}
