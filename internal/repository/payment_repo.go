package repository

import (
	"context"
	"errors"
	"fmt"

	"nexify_backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// PaymentRepository defines operations for payment records. Records are
// written once and never mutated.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByEmail(ctx context.Context, email string) (*model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
}

type paymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts a new payment record
func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) error {
	sql := `INSERT INTO payments (id, email, amount, transaction_id, created_at)
            VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, sql, p.ID, p.Email, p.Amount, p.TransactionID, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// FindByEmail retrieves the payment record for an email, if any
func (r *paymentRepository) FindByEmail(ctx context.Context, email string) (*model.Payment, error) {
	p := &model.Payment{}
	sql := `SELECT id, email, amount, transaction_id, created_at FROM payments WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(&p.ID, &p.Email, &p.Amount, &p.TransactionID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find payment by email: %w", err)
	}
	return p, nil
}

// ListByEmail retrieves every payment record for an email
func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	sql := `SELECT id, email, amount, transaction_id, created_at FROM payments WHERE email = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.Amount, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}
