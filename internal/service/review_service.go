package service

import (
	"context"
	"fmt"
	"time"

	"nexify_backend/internal/model"
	"nexify_backend/internal/repository"

	"github.com/google/uuid"
)

// ReviewService provides review creation and lookup. Reviews are immutable.
type ReviewService interface {
	CreateReview(ctx context.Context, owner string, req model.CreateReviewRequest) (*model.Review, error)
	GetAllReviews(ctx context.Context) ([]model.Review, error)
	GetReviewsByProduct(ctx context.Context, productID string) ([]model.Review, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) CreateReview(ctx context.Context, owner string, req model.CreateReviewRequest) (*model.Review, error) {
	review := &model.Review{
		ID:         uuid.NewString(),
		ProductID:  req.ProductID,
		Owner:      owner,
		OwnerImage: req.OwnerImage,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review in repo: %w", err)
	}
	return review, nil
}

func (s *reviewService) GetAllReviews(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews from repo: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) GetReviewsByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	reviews, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product reviews from repo: %w", err)
	}
	return reviews, nil
}
