package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type TitleService interface {
	List(ctx context.Context, f repository.TitleFilter, page repository.Page) ([]models.Title, int64, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	now          func() time.Time
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		now:          time.Now,
	}
}

func (s *titleService) List(ctx context.Context, f repository.TitleFilter, page repository.Page) ([]models.Title, int64, error) {
	f.Name = strings.TrimSpace(f.Name)
	return s.titleRepo.List(ctx, f, page)
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("title")
		}
		return nil, fmt.Errorf("get title: %w", err)
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error) {
	ve := &ValidationError{}
	ve.Merge(ValidateName(req.Name))
	if req.Year == nil {
		ve.Add("year", "This field is required.")
	} else {
		ve.Merge(ValidateYear(*req.Year, s.now()))
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil && !isValidation(err) {
		return nil, err
	}
	ve.Merge(err)

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil && !isValidation(err) {
		return nil, err
	}
	ve.Merge(err)

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Year:        *req.Year,
		CategoryID:  &category.ID,
	}
	if err := s.titleRepo.Create(ctx, title, genres); err != nil {
		return nil, storeError("create title", err)
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error) {
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ve := &ValidationError{}
	if req.Name != nil {
		ve.Merge(ValidateName(*req.Name))
	}
	if req.Year != nil {
		ve.Merge(ValidateYear(*req.Year, s.now()))
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		switch {
		case err == nil:
			title.CategoryID = &category.ID
		case isValidation(err):
			ve.Merge(err)
		default:
			return nil, err
		}
	}

	var genres []models.Genre
	if req.Genre != nil {
		genres, err = s.resolveGenres(ctx, *req.Genre)
		if err != nil && !isValidation(err) {
			return nil, err
		}
		ve.Merge(err)
		if genres == nil {
			genres = []models.Genre{}
		}
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Year != nil {
		title.Year = *req.Year
	}

	if err := s.titleRepo.Update(ctx, title, genres); err != nil {
		return nil, storeError("update title", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the title together with its reviews and their comments.
func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return notFound("title")
		}
		return fmt.Errorf("delete title: %w", err)
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fieldError("category", fmt.Sprintf("Category %q does not exist.", slug))
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	genres, err := s.genreRepo.GetBySlugs(ctx, slugs)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fieldError("genre", "One or more genres do not exist.")
		}
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return genres, nil
}
