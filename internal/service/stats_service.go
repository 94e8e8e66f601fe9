package service

import (
	"context"
	"fmt"

	"nexify_backend/internal/model"
	"nexify_backend/internal/repository"
)

// StatsService exposes per-collection document counts for the public
// statistics widget
type StatsService interface {
	CollectionLengths(ctx context.Context) ([]model.CollectionCount, error)
}

type statsService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(userRepo repository.UserRepository, productRepo repository.ProductRepository, reviewRepo repository.ReviewRepository) StatsService {
	return &statsService{userRepo: userRepo, productRepo: productRepo, reviewRepo: reviewRepo}
}

func (s *statsService) CollectionLengths(ctx context.Context) ([]model.CollectionCount, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	reviews, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	return []model.CollectionCount{
		{Category: "Users", Length: users},
		{Category: "Products", Length: products},
		{Category: "Reviews", Length: reviews},
	}, nil
}
