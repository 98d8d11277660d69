package service

import (
	"context"
	"strings"
	"testing"

	"shop-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderStartsPending(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store, nil)

	order, err := svc.CreateOrder(context.Background(), 7, &CreateOrderRequest{
		CustomerName: "Asha Patel",
		TotalAmount:  decimal.RequireFromString("35.50"),
		ItemCount:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, int64(7), order.ShopID)
	assert.NotZero(t, order.ID)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{}, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *CreateOrderRequest
	}{
		{"missing customer name", &CreateOrderRequest{ItemCount: 1}},
		{"zero items", &CreateOrderRequest{CustomerName: "Asha"}},
		{"negative amount", &CreateOrderRequest{CustomerName: "Asha", ItemCount: 1, TotalAmount: decimal.RequireFromString("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, 7, tt.req)
			require.Error(t, err)
			assert.Equal(t, KindValidation, ErrorKind(err))
		})
	}
}

func TestChangeStatusHappyPath(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 7, &CreateOrderRequest{CustomerName: "Asha", ItemCount: 1})
	require.NoError(t, err)

	order, err = svc.ChangeStatus(ctx, order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)

	order, err = svc.ChangeStatus(ctx, order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
}

func TestChangeStatusRejectsIllegalMoves(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 7, &CreateOrderRequest{CustomerName: "Asha", ItemCount: 1})
	require.NoError(t, err)

	// Pending cannot skip straight to completed.
	_, err = svc.ChangeStatus(ctx, order.ID, models.OrderStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrorKind(err))

	// The record is untouched after a rejected move.
	current, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, current.Status)
}

func TestChangeStatusTerminalStates(t *testing.T) {
	store := &fakeOrderStore{}
	svc := NewOrderService(store, nil)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 7, &CreateOrderRequest{CustomerName: "Asha", ItemCount: 1})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	for _, to := range []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	} {
		_, err = svc.ChangeStatus(ctx, order.ID, to)
		require.Error(t, err, "cancelled order must not move to %s", to)
		assert.Equal(t, KindValidation, ErrorKind(err))
	}
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{}, nil)

	_, err := svc.ChangeStatus(context.Background(), 1, "shipped")
	require.Error(t, err)
	assert.Equal(t, KindValidation, ErrorKind(err))
}

func TestGetOrderNotFound(t *testing.T) {
	svc := NewOrderService(&fakeOrderStore{}, nil)

	_, err := svc.GetOrder(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, ErrorKind(err))
}
