package service

import (
	"context"
	"fmt"
	"strings"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
)

type CategoryService interface {
	List(ctx context.Context, search string, page repository.Page) ([]models.Category, int64, error)
	Create(ctx context.Context, req dto.CreateLookupRequest) (*models.Category, error)
	Update(ctx context.Context, slug string, req dto.UpdateLookupRequest) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, page repository.Page) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, strings.TrimSpace(search), page)
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateLookupRequest) (*models.Category, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}
	category := &models.Category{Name: strings.TrimSpace(req.Name), Slug: req.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, storeError("create category", err)
	}
	return category, nil
}

// Update applies a partial change. Re-sending the current values is a no-op success.
func (s *categoryService) Update(ctx context.Context, slug string, req dto.UpdateLookupRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("category")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	if req.Name != nil {
		if err := ValidateName(*req.Name); err != nil {
			return nil, err
		}
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, storeError("update category", err)
	}
	return category, nil
}

// Delete leaves titles in place with no category.
func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.categoryRepo.Delete(ctx, slug); err != nil {
		if repository.IsNotFound(err) {
			return notFound("category")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
