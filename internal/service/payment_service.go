package service

import (
	"context"
	"fmt"
	"time"

	"nexify_backend/internal/model"
	"nexify_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// ChargeCreator is the slice of the payment provider this service needs:
// create an intent for an amount, get back an opaque client reference.
type ChargeCreator interface {
	CreateCharge(amount int64, currency, cardToken string) (string, error)
}

// OmiseGateway adapts the omise client to ChargeCreator
type OmiseGateway struct {
	client *omise.Client
}

// NewOmiseGateway creates a payment gateway backed by omise
func NewOmiseGateway(publicKey, secretKey string) (*OmiseGateway, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create omise client: %w", err)
	}
	return &OmiseGateway{client: client}, nil
}

func (g *OmiseGateway) CreateCharge(amount int64, currency, cardToken string) (string, error) {
	charge := &omise.Charge{}
	op := &operations.CreateCharge{
		Amount:   amount,
		Currency: currency,
		Card:     cardToken,
	}
	if err := g.client.Do(charge, op); err != nil {
		return "", fmt.Errorf("failed to create charge: %w", err)
	}
	return charge.ID, nil
}

// PaymentService creates payment intents and keeps the payment history
type PaymentService interface {
	// CreateIntent asks the provider for a charge over price dollars and
	// returns the client secret the frontend confirms against.
	CreateIntent(ctx context.Context, req model.PaymentIntentRequest) (string, error)
	// RecordPayment stores the payment once per payer; an existing record
	// leaves the store untouched and returns ("", false).
	RecordPayment(ctx context.Context, req model.CreatePaymentRequest) (string, bool, error)
	GetHistory(ctx context.Context, email string) ([]model.Payment, error)
}

type paymentService struct {
	repo    repository.PaymentRepository
	gateway ChargeCreator
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(repo repository.PaymentRepository, gateway ChargeCreator) PaymentService {
	return &paymentService{repo: repo, gateway: gateway}
}

func (s *paymentService) CreateIntent(ctx context.Context, req model.PaymentIntentRequest) (string, error) {
	amount := int64(req.Price * 100) // dollars to cents
	clientSecret, err := s.gateway.CreateCharge(amount, "usd", req.CardToken)
	if err != nil {
		return "", fmt.Errorf("payment provider error: %w", err)
	}
	return clientSecret, nil
}

func (s *paymentService) RecordPayment(ctx context.Context, req model.CreatePaymentRequest) (string, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", false, fmt.Errorf("failed to check existing payment: %w", err)
	}
	if existing != nil {
		return "", false, nil // already recorded, null-insert marker
	}

	payment := &model.Payment{
		ID:            uuid.NewString(),
		Email:         req.Email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return "", false, fmt.Errorf("failed to create payment in repository: %w", err)
	}
	return payment.ID, true, nil
}

func (s *paymentService) GetHistory(ctx context.Context, email string) ([]model.Payment, error) {
	payments, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment history from repo: %w", err)
	}
	return payments, nil
}
