package services

import (
	"testing"

	"delivery-backend/apperr"
	"delivery-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentCreatedWithOrderAndMasked(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, newTestLogger())
	payments := NewPaymentService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)
	menu := createMenu(t, db, store, "김치찌개", 9000)
	customer := createUser(t, db, "customer1", models.RoleCustomer)

	order, err := orders.Create(actorFor(customer), CreateOrderRequest{
		StoreID:    store.ID,
		Address:    "서울시 강남구",
		CardNumber: "1234-5678-9012-3456",
		Lines:      []OrderLine{{MenuID: menu.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	payment, err := payments.GetByOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "****-****-****-3456", payment.CardNumber, "raw card numbers are never stored")
	assert.True(t, payment.Success)
}

func TestPaymentAbsentWithoutCard(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, newTestLogger())
	payments := NewPaymentService(db, newTestLogger())

	owner := createUser(t, db, "owner1", models.RoleOwner)
	store := createStore(t, db, owner)
	menu := createMenu(t, db, store, "김치찌개", 9000)
	customer := createUser(t, db, "customer1", models.RoleCustomer)

	order, err := orders.Create(actorFor(customer), CreateOrderRequest{
		StoreID: store.ID,
		Address: "서울시 강남구",
		Lines:   []OrderLine{{MenuID: menu.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = payments.GetByOrder(order.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, "결제 정보가 없습니다.", apperr.Message(err))
}
