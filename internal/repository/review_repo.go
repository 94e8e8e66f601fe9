package repository

import (
	"context"
	"fmt"

	"nexify_backend/internal/model"
)

// ReviewRepository defines operations for review data. Reviews are immutable:
// there is no update or delete.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindAll(ctx context.Context) ([]model.Review, error)
	FindByProduct(ctx context.Context, productID string) ([]model.Review, error)
	Count(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	db DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	sql := `INSERT INTO reviews (id, product_id, owner, owner_image, body, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, sql, review.ID, review.ProductID, review.Owner, review.OwnerImage, review.Body, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) queryReviews(ctx context.Context, sql string, args ...any) ([]model.Review, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Owner, &rv.OwnerImage, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}

// FindAll retrieves every review, newest first
func (r *reviewRepository) FindAll(ctx context.Context) ([]model.Review, error) {
	sql := `SELECT id, product_id, owner, owner_image, body, created_at FROM reviews ORDER BY created_at DESC`
	return r.queryReviews(ctx, sql)
}

// FindByProduct retrieves every review for one product
func (r *reviewRepository) FindByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	sql := `SELECT id, product_id, owner, owner_image, body, created_at FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`
	return r.queryReviews(ctx, sql, productID)
}

// Count returns the total number of reviews
func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
