package service

import (
	"context"
	"testing"

	"nexify_backend/internal/model"
	"nexify_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePaymentRepo struct {
	byEmail map[string]*model.Payment
}

var _ repository.PaymentRepository = (*fakePaymentRepo)(nil)

func (f *fakePaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	f.byEmail[p.Email] = p
	return nil
}

func (f *fakePaymentRepo) FindByEmail(ctx context.Context, email string) (*model.Payment, error) {
	return f.byEmail[email], nil
}

func (f *fakePaymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	if p, ok := f.byEmail[email]; ok {
		return []model.Payment{*p}, nil
	}
	return nil, nil
}

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	secret       string
}

func (f *fakeGateway) CreateCharge(amount int64, currency, cardToken string) (string, error) {
	f.lastAmount = amount
	f.lastCurrency = currency
	return f.secret, nil
}

func TestCreateIntent_ConvertsPriceToCents(t *testing.T) {
	gateway := &fakeGateway{secret: "chrg_test_123"}
	svc := NewPaymentService(&fakePaymentRepo{byEmail: map[string]*model.Payment{}}, gateway)

	clientSecret, err := svc.CreateIntent(context.Background(), model.PaymentIntentRequest{Price: 19.99})
	require.NoError(t, err)
	assert.Equal(t, "chrg_test_123", clientSecret)
	assert.Equal(t, int64(1999), gateway.lastAmount)
	assert.Equal(t, "usd", gateway.lastCurrency)
}

func TestRecordPayment_Idempotent(t *testing.T) {
	repo := &fakePaymentRepo{byEmail: map[string]*model.Payment{}}
	svc := NewPaymentService(repo, &fakeGateway{})
	req := model.CreatePaymentRequest{Email: "payer@example.com", Amount: 1999, TransactionID: "chrg_test_123"}

	id, created, err := svc.RecordPayment(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, id)

	// a second payment for the same payer leaves the store untouched
	id, created, err = svc.RecordPayment(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, id)
	assert.Len(t, repo.byEmail, 1)
}

func TestGetHistory(t *testing.T) {
	repo := &fakePaymentRepo{byEmail: map[string]*model.Payment{
		"payer@example.com": {ID: "pay1", Email: "payer@example.com", Amount: 1999},
	}}
	svc := NewPaymentService(repo, &fakeGateway{})

	payments, err := svc.GetHistory(context.Background(), "payer@example.com")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "pay1", payments[0].ID)

	payments, err = svc.GetHistory(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, payments)
}
