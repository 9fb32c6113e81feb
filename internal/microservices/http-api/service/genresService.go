package service

import (
	"context"
	"fmt"
	"strings"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type GenreService interface {
	List(ctx context.Context, search string, page repository.Page) ([]models.Genre, int64, error)
	Create(ctx context.Context, req dto.CreateLookupRequest) (*models.Genre, error)
	Update(ctx context.Context, slug string, req dto.UpdateLookupRequest) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, page repository.Page) ([]models.Genre, int64, error) {
	return s.genreRepo.List(ctx, strings.TrimSpace(search), page)
}

func (s *genreService) Create(ctx context.Context, req dto.CreateLookupRequest) (*models.Genre, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}
	genre := &models.Genre{Name: strings.TrimSpace(req.Name), Slug: req.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, storeError("create genre", err)
	}
	return genre, nil
}

// Update applies a partial change. Re-sending the current values is a no-op success.
func (s *genreService) Update(ctx context.Context, slug string, req dto.UpdateLookupRequest) (*models.Genre, error) {
	genre, err := s.genreRepo.GetBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("genre")
		}
		return nil, fmt.Errorf("get genre: %w", err)
	}

	if req.Name != nil {
		if err := ValidateName(*req.Name); err != nil {
			return nil, err
		}
		genre.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		genre.Slug = *req.Slug
	}
	if err := s.genreRepo.Update(ctx, genre); err != nil {
		return nil, storeError("update genre", err)
	}
	return genre, nil
}

// Delete unlinks the genre from its titles.
func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.genreRepo.Delete(ctx, slug); err != nil {
		if repository.IsNotFound(err) {
			return notFound("genre")
		}
		return fmt.Errorf("delete genre: %w", err)
	}
	return nil
}
