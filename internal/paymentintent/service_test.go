package paymentintent

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	byReference map[string]*PaymentIntent
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byReference: map[string]*PaymentIntent{}}
}

func (f *fakeRepository) Create(intent *PaymentIntent) error {
	f.byReference[intent.Reference] = intent
	return nil
}

func (f *fakeRepository) FindByReference(reference string) (*PaymentIntent, error) {
	return f.byReference[reference], nil
}

func (f *fakeRepository) FindByID(id string) (*PaymentIntent, error) {
	for _, i := range f.byReference {
		if i.ID.String() == id {
			return i, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) FindByOrderID(orderID string) (*PaymentIntent, error) {
	for _, i := range f.byReference {
		if i.OrderID == orderID {
			return i, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepository) UpdateStatus(id string, status Status) error {
	for _, i := range f.byReference {
		if i.ID.String() == id {
			i.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func TestCreateZeroDiscountHappyPath(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	intent, err := svc.Create(CreateInput{
		OrderID:        "O1",
		Amount:         decimal.RequireFromString("10000.0000"),
		OriginalAmount: decimal.RequireFromString("10000.0000"),
		Provider:       "flutterwave",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAYMENT_O1", intent.Reference)
	assert.True(t, intent.DiscountAmount.IsZero())
	assert.Equal(t, StatusPending, intent.Status)
}

func TestCreateDiscountRequiresCode(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Create(CreateInput{
		OrderID:        "O2",
		Amount:         decimal.RequireFromString("8000.0000"),
		OriginalAmount: decimal.RequireFromString("10000.0000"),
		Provider:       "flutterwave",
	})
	assert.ErrorIs(t, err, ErrDiscountCodeRequired)
}

func TestCreateInvalidAmount(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Create(CreateInput{
		OrderID:        "O3",
		Amount:         decimal.Zero,
		OriginalAmount: decimal.RequireFromString("10000.0000"),
		Provider:       "flutterwave",
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreateInvalidAmounts(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Create(CreateInput{
		OrderID:        "O4",
		Amount:         decimal.RequireFromString("10000.0000"),
		OriginalAmount: decimal.RequireFromString("9000.0000"),
		Provider:       "flutterwave",
	})
	assert.ErrorIs(t, err, ErrInvalidAmounts)
}

func TestCreateIsIdempotentOnOrderID(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	in := CreateInput{
		OrderID:        "O5",
		Amount:         decimal.RequireFromString("500.0000"),
		OriginalAmount: decimal.RequireFromString("500.0000"),
		Provider:       "flutterwave",
	}
	first, err := svc.Create(in)
	require.NoError(t, err)

	second, err := svc.Create(in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byReference, 1)
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	intent, err := svc.Create(CreateInput{
		OrderID:        "O6",
		Amount:         decimal.RequireFromString("100.0000"),
		OriginalAmount: decimal.RequireFromString("100.0000"),
		Provider:       "flutterwave",
	})
	require.NoError(t, err)

	err = svc.Transition(intent, StatusSettled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, svc.Transition(intent, StatusInitiated))
	require.NoError(t, svc.Transition(intent, StatusConfirming))
	require.NoError(t, svc.Transition(intent, StatusSettled))
	assert.Equal(t, StatusSettled, intent.Status)
}
