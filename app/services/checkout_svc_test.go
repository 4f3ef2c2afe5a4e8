package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/Rakhulsr/go-motoshop/app/db/testdb"
	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	orders []*models.Order
	err    error
}

func (n *recordingNotifier) OrderPlaced(order *models.Order) error {
	n.orders = append(n.orders, order)
	return n.err
}

func newCheckoutService(db *gorm.DB, notifier OrderNotifier) *CheckoutService {
	return NewCheckoutService(
		db,
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		helpers.NewValidator(),
		notifier,
	)
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		CustomerName: "Nguyễn Văn An",
		Phone:        "0901234567",
		Email:        "An@Example.com ",
		Address:      "12 Lê Lợi, Quận 1, TP.HCM",
	}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	db := testdb.New(t)
	cart := newCartService(db)
	notifier := &recordingNotifier{}
	checkout := newCheckoutService(db, notifier)
	ctx := context.Background()
	owner := guest("checkout-1")

	oil := testdb.Product(t, db, "Nhớt Shell", 100, 80, true)
	tire := testdb.Product(t, db, "Lốp IRC", 500, 0, true)
	_, err := cart.AddItem(ctx, owner, AddItemInput{ProductID: oil.ID, Quantity: qty(2)})
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, owner, AddItemInput{ProductID: tire.ID, Quantity: qty(1)})
	require.NoError(t, err)

	// live price changes after add; the order uses the snapshot
	require.NoError(t, db.Model(tire).Update("price", 900).Error)

	order, err := checkout.Submit(ctx, owner, validCheckout())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`), order.OrderCode)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "an@example.com", order.Email)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(660)), "got %s", order.Total)
	require.Len(t, order.OrderItems, 2)
	require.NotNil(t, order.SessionID)
	assert.Nil(t, order.UserID)

	stored, err := repositories.NewOrderRepository(db).FindByCode(ctx, order.OrderCode)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.OrderItems, 2)

	view, err := cart.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	require.Len(t, notifier.orders, 1)
	assert.Equal(t, order.OrderCode, notifier.orders[0].OrderCode)
}

func TestCheckoutNotifierFailureDoesNotFailOrder(t *testing.T) {
	db := testdb.New(t)
	cart := newCartService(db)
	checkout := newCheckoutService(db, &recordingNotifier{err: errors.New("smtp down")})
	ctx := context.Background()
	owner := models.CartOwner{UserID: "user-checkout"}
	p := testdb.Product(t, db, "Bóng đèn", 50000, 0, true)

	_, err := cart.AddItem(ctx, owner, AddItemInput{ProductID: p.ID})
	require.NoError(t, err)

	order, err := checkout.Submit(ctx, owner, validCheckout())
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, "user-checkout", *order.UserID)
}

func TestCheckoutErrors(t *testing.T) {
	db := testdb.New(t)
	cart := newCartService(db)
	checkout := newCheckoutService(db, nil)
	ctx := context.Background()

	missing := validCheckout()
	missing.Address = "   "
	_, err := checkout.Submit(ctx, guest("checkout-2"), missing)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "address")

	_, err = checkout.Submit(ctx, guest("checkout-empty"), validCheckout())
	assert.True(t, apperror.Is(err, apperror.InvalidArgument), "empty cart")

	_, err = checkout.Submit(ctx, models.CartOwner{}, validCheckout())
	assert.True(t, apperror.Is(err, apperror.InvalidArgument), "no identity")

	soldOut := testdb.Product(t, db, "Pô Akrapovic", 9000000, 0, true)
	owner := guest("checkout-3")
	_, err = cart.AddItem(ctx, owner, AddItemInput{ProductID: soldOut.ID})
	require.NoError(t, err)
	require.NoError(t, db.Model(soldOut).Update("in_stock", false).Error)
	_, err = checkout.Submit(ctx, owner, validCheckout())
	assert.True(t, apperror.Is(err, apperror.Conflict))

	require.NoError(t, repositories.NewProductRepository(db).Delete(ctx, soldOut.ID))
	_, err = checkout.Submit(ctx, owner, validCheckout())
	assert.True(t, apperror.Is(err, apperror.NotFound))

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	count, err := cart.Count(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "failed checkout keeps the cart")
}

func TestCheckoutConflictsWhenCartWasAlreadyOrdered(t *testing.T) {
	db := testdb.New(t)
	cart := newCartService(db)
	notifier := &recordingNotifier{}
	checkout := newCheckoutService(db, notifier)
	ctx := context.Background()
	owner := guest("checkout-twice")

	p := testdb.Product(t, db, "Xích DID", 400000, 0, true)
	_, err := cart.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Quantity: qty(2)})
	require.NoError(t, err)

	removeCartsOnNextDelete(t, db)
	_, err = checkout.Submit(ctx, owner, validCheckout())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.Conflict))
	assert.Empty(t, notifier.orders)

	var orders, orderItems int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&orderItems).Error)
	assert.Zero(t, orders, "the losing submit must not leave an order behind")
	assert.Zero(t, orderItems)

	count, err := cart.Count(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
