package model

import "time"

// Review is a free-text review left on a product; immutable once created
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	Owner      string    `json:"owner"` // reviewer email
	OwnerImage string    `json:"owner_image,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateReviewRequest is used when a user posts a review
type CreateReviewRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	Body       string `json:"body" binding:"required"`
	OwnerImage string `json:"owner_image"`
}
