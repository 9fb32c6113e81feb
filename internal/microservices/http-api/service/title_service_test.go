package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pageOf(limit, offset int) repository.Page {
	return repository.Page{Limit: limit, Offset: offset}
}

func intPtr(v int) *int { return &v }

type titleFixture struct {
	titles     *MockTitleRepository
	categories *MockCategoryRepository
	genres     *MockGenreRepository
	svc        *titleService
}

func newTitleFixture() *titleFixture {
	f := &titleFixture{
		titles:     new(MockTitleRepository),
		categories: new(MockCategoryRepository),
		genres:     new(MockGenreRepository),
	}
	f.svc = NewTitleService(f.titles, f.categories, f.genres).(*titleService)
	f.svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func TestTitleService_Create(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()

	films := &models.Category{ID: 3, Name: "Films", Slug: "films"}
	genres := []models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}
	f.categories.On("GetBySlug", ctx, "films").Return(films, nil)
	f.genres.On("GetBySlugs", ctx, []string{"drama"}).Return(genres, nil)
	f.titles.On("Create", ctx, mock.AnythingOfType("*models.Title"), genres).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Title).ID = 42 }).
		Return(nil)
	f.titles.On("GetByID", ctx, int64(42)).Return(&models.Title{ID: 42, Name: "Heat", Year: 1995, Category: films, Genres: genres}, nil)

	title, err := f.svc.Create(ctx, dto.CreateTitleRequest{
		Name: "Heat", Year: intPtr(1995), Category: "films", Genre: []string{"drama"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), title.ID)
	assert.Nil(t, title.Rating)

	created := f.titles.Calls[0].Arguments.Get(1).(*models.Title)
	require.NotNil(t, created.CategoryID)
	assert.Equal(t, int64(3), *created.CategoryID)
}

func TestTitleService_CreateCollectsFieldErrors(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()

	f.categories.On("GetBySlug", ctx, "nope").Return(nil, gorm.ErrRecordNotFound)
	f.genres.On("GetBySlugs", ctx, []string{"ghost"}).Return(nil, fmt.Errorf("genre %q: %w", "ghost", gorm.ErrRecordNotFound))

	_, err := f.svc.Create(ctx, dto.CreateTitleRequest{
		Name: "Future", Year: intPtr(2027), Category: "nope", Genre: []string{"ghost"},
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "year")
	assert.Contains(t, ve.Fields, "category")
	assert.Contains(t, ve.Fields, "genre")
	f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleService_RejectsBlankName(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()

	films := &models.Category{ID: 3, Name: "Films", Slug: "films"}
	f.categories.On("GetBySlug", ctx, "films").Return(films, nil)
	f.titles.On("GetByID", ctx, int64(7)).Return(&models.Title{ID: 7, Name: "Old", Year: 2000}, nil)

	_, err := f.svc.Create(ctx, dto.CreateTitleRequest{Name: "  ", Year: intPtr(1995), Category: "films"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"This field may not be blank."}, ve.Fields["name"])

	_, err = f.svc.Update(ctx, 7, dto.UpdateTitleRequest{Name: strPtr("\n")})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")

	f.titles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.titles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleService_UpdateKeepsGenresWhenAbsent(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()

	f.titles.On("GetByID", ctx, int64(7)).Return(&models.Title{ID: 7, Name: "Old", Year: 2000}, nil)
	f.titles.On("Update", ctx, mock.Anything, []models.Genre(nil)).Return(nil)

	title, err := f.svc.Update(ctx, 7, dto.UpdateTitleRequest{Name: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), title.ID)
	f.titles.AssertExpectations(t)
}

func TestTitleService_UpdateClearsGenres(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()

	empty := []string{}
	f.titles.On("GetByID", ctx, int64(7)).Return(&models.Title{ID: 7, Name: "Old", Year: 2000}, nil)
	f.titles.On("Update", ctx, mock.Anything, []models.Genre{}).Return(nil)

	_, err := f.svc.Update(ctx, 7, dto.UpdateTitleRequest{Genre: &empty})
	require.NoError(t, err)
	f.titles.AssertExpectations(t)
}

func TestTitleService_UpdateFutureYear(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()
	f.titles.On("GetByID", ctx, int64(7)).Return(&models.Title{ID: 7, Year: 2000}, nil)

	_, err := f.svc.Update(ctx, 7, dto.UpdateTitleRequest{Year: intPtr(2030)})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestTitleService_GetAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()
	f.titles.On("GetByID", ctx, int64(9)).Return(nil, gorm.ErrRecordNotFound)
	f.titles.On("Delete", ctx, int64(9)).Return(gorm.ErrRecordNotFound)

	_, err := f.svc.Get(ctx, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, 9), ErrNotFound)
}

func TestTitleService_ListPassesFilter(t *testing.T) {
	ctx := context.Background()
	f := newTitleFixture()
	year := 1995
	want := repository.TitleFilter{Name: "heat", Genre: "drama", Year: &year}
	f.titles.On("List", ctx, want, pageOf(20, 0)).Return([]models.Title{}, int64(0), nil)

	_, _, err := f.svc.List(ctx, repository.TitleFilter{Name: " heat ", Genre: "drama", Year: &year}, pageOf(20, 0))
	require.NoError(t, err)
	f.titles.AssertExpectations(t)
}
