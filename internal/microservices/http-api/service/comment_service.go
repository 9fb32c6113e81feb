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

// CommentService addresses comments through title and review; a review that
// does not hang off the title is reported as not found.
type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page repository.Page) ([]models.Comment, int64, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{commentRepo: commentRepo, reviewRepo: reviewRepo}
}

func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.GetByTitle(ctx, titleID, reviewID); err != nil {
		if repository.IsNotFound(err) {
			return notFound("review")
		}
		return fmt.Errorf("get review: %w", err)
	}
	return nil
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page repository.Page) ([]models.Comment, int64, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(ctx, reviewID, page)
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReview(ctx, reviewID, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("comment")
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	if err := authorize(policy.SubjectOf(actor), policy.Content, policy.Create, false); err != nil {
		return nil, err
	}
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fieldError("text", "This field may not be blank.")
	}

	comment := &models.Comment{ReviewID: reviewID, AuthorID: actor.ID, Text: req.Text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = actor
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.SubjectOf(actor), policy.Content, policy.Update, isAuthor(actor, comment.AuthorID)); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fieldError("text", "This field may not be blank.")
	}

	comment.Text = req.Text
	if err := s.commentRepo.UpdateText(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := authorize(policy.SubjectOf(actor), policy.Content, policy.Delete, isAuthor(actor, comment.AuthorID)); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		if repository.IsNotFound(err) {
			return notFound("comment")
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
