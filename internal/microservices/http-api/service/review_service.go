package service

import (
	"context"
	"fmt"
	"strings"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/policy"
	"yamdb/internal/microservices/http-api/repository"
)

// ReviewService scopes every review to its title. Ownership checks use the policy.
type ReviewService interface {
	List(ctx context.Context, titleID int64, page repository.Page) ([]models.Review, int64, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	ok, err := s.titleRepo.Exists(ctx, titleID)
	if err != nil {
		return fmt.Errorf("check title: %w", err)
	}
	if !ok {
		return notFound("title")
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, page repository.Page) ([]models.Review, int64, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(ctx, titleID, page)
}

// Get fails with ErrNotFound when the review exists but belongs to another title.
func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByTitle(ctx, titleID, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("review")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewRequest) (*models.Review, error) {
	if err := authorize(policy.SubjectOf(actor), policy.Content, policy.Create, false); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := validateReview(&req.Text, &req.Score); err != nil {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, storeError("create review", err)
	}
	review.Author = actor
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.SubjectOf(actor), policy.Content, policy.Update, isAuthor(actor, review.AuthorID)); err != nil {
		return nil, err
	}
	if err := validateReview(req.Text, req.Score); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}
	if err := s.reviewRepo.UpdateContent(ctx, review); err != nil {
		return nil, storeError("update review", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := authorize(policy.SubjectOf(actor), policy.Content, policy.Delete, isAuthor(actor, review.AuthorID)); err != nil {
		return err
	}
	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		if repository.IsNotFound(err) {
			return notFound("review")
		}
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

// validateReview checks whichever fields are present.
func validateReview(text *string, score *int) error {
	ve := &ValidationError{}
	if text != nil && strings.TrimSpace(*text) == "" {
		ve.Add("text", "This field may not be blank.")
	}
	if score != nil && (*score < 1 || *score > 10) {
		ve.Add("score", "Score must be between 1 and 10.")
	}
	return ve.OrNil()
}

func isAuthor(actor *models.User, authorID string) bool {
	return actor != nil && actor.ID == authorID
}
