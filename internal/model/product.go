package model

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Product represents a submitted product document
type Product struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"` // owner email
	OwnerName   string    `json:"owner_name,omitempty"`
	OwnerImage  string    `json:"owner_image,omitempty"`
	ProductName string    `json:"product_name"`
	Details     string    `json:"details,omitempty"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	Featured    bool      `json:"featured"`
	VoteCount   int       `json:"vote_count"`
	Voter       []string  `json:"voter,omitempty"` // emails that have voted
	Report      *string   `json:"report,omitempty"`
	Sort        int       `json:"sort"`
	Timestamp   time.Time `json:"timestamp"`
}

// CreateProductRequest is used when an owner submits a new product
type CreateProductRequest struct {
	ProductName string    `json:"product_name" binding:"required"`
	Details     string    `json:"details"`
	Image       string    `json:"image"`
	Tags        []string  `json:"tags"`
	OwnerName   string    `json:"owner_name"`
	OwnerImage  string    `json:"owner_image"`
	Timestamp   time.Time `json:"timestamp"`
}

// UpdateProductRequest carries the owner-editable fields; pointers allow partial updates
type UpdateProductRequest struct {
	ProductName *string    `json:"product_name,omitempty"`
	Details     *string    `json:"details,omitempty"`
	Image       *string    `json:"image,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// UserProductPatch is the authenticated-user transition: a vote or a report.
// A body that sets neither field is a no-op.
type UserProductPatch struct {
	Vote   bool    `json:"vote,omitempty"`
	Report *string `json:"report,omitempty"`
}

// ModeratorProductPatch is the moderation transition: a status decision
// (with its sort ranking) and/or the featured flag.
type ModeratorProductPatch struct {
	Status   *string `json:"status,omitempty"`
	Sort     *int    `json:"sort,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
}

// ProductPage is one page of the public accepted-product listing
type ProductPage struct {
	Result     []Product `json:"result"`
	TotalData  int       `json:"totalData"`
	TotalPages int       `json:"totalPages"`
}
