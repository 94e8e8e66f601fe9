package model

import "time"

// Payment records a completed promotion purchase; one per payer, never mutated
type Payment struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"` // in cents
	TransactionID string    `json:"transactionId"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentIntentRequest asks the provider for a new payment intent
type PaymentIntentRequest struct {
	Price     float64 `json:"price" binding:"required,gt=0"`
	CardToken string  `json:"cardToken"`
}

// CreatePaymentRequest stores the payment record after the client confirms
type CreatePaymentRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
}

// CollectionCount is one element of the public statistics response
type CollectionCount struct {
	Category string `json:"category"`
	Length   int64  `json:"length"`
}
