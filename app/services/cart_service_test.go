package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Rakhulsr/go-motoshop/app/db/testdb"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		db,
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewProductRepository(db),
	)
}

func qty(n int) *int { return &n }

func guest(id string) models.CartOwner { return models.CartOwner{SessionID: id} }

func countLines(t *testing.T, db *gorm.DB, productID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("product_id = ?", productID).Count(&n).Error)
	return n
}

func TestCartScenario(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p1 := testdb.Product(t, db, "Nhớt Motul 300V", 100, 80, true)
	owner := guest("session-a")

	view, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)

	_, err = svc.AddItem(ctx, owner, AddItemInput{ProductID: p1.ID, Quantity: qty(2)})
	require.NoError(t, err)

	view, err = svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, p1.ID, view.Items[0].ProductID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 160.0, view.Items[0].Total)
	assert.Equal(t, 160.0, view.Total)

	_, err = svc.UpdateItem(ctx, owner, UpdateItemInput{ProductID: p1.ID, Quantity: 1})
	require.NoError(t, err)
	view, err = svc.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 80.0, view.Total)

	_, err = svc.RemoveItem(ctx, owner, p1.ID)
	require.NoError(t, err)
	view, err = svc.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

func TestAddItemIsAdditiveAndUnique(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Lốp Michelin", 1200000, 0, true)
	owner := guest("session-b")

	_, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Quantity: qty(2)})
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Quantity: qty(3)})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 5, view.ItemCount)
	assert.EqualValues(t, 1, countLines(t, db, p.ID))
}

func TestAddItemDefaultsToOne(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	p := testdb.Product(t, db, "Bugi NGK", 90000, 0, true)

	view, err := svc.AddItem(context.Background(), guest("session-c"), AddItemInput{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestAddItemErrors(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	soldOut := testdb.Product(t, db, "Phanh Brembo", 3000000, 0, false)
	owner := guest("session-d")

	tests := []struct {
		name string
		in   AddItemInput
		kind apperror.Kind
	}{
		{"missing product", AddItemInput{ProductID: "does-not-exist", Quantity: qty(1)}, apperror.NotFound},
		{"empty product id", AddItemInput{Quantity: qty(1)}, apperror.InvalidArgument},
		{"zero quantity", AddItemInput{ProductID: soldOut.ID, Quantity: qty(0)}, apperror.InvalidArgument},
		{"out of stock", AddItemInput{ProductID: soldOut.ID, Quantity: qty(1)}, apperror.Conflict},
		{"out of stock large quantity", AddItemInput{ProductID: soldOut.ID, Quantity: qty(50)}, apperror.Conflict},
		{"nested option", AddItemInput{ProductID: soldOut.ID, Options: map[string]interface{}{"color": []string{"red"}}}, apperror.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, owner, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.Zero(t, carts, "failed adds must not create a cart")
}

func TestAddItemInactiveProductIsNotFound(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	p := testdb.Product(t, db, "Đèn LED", 450000, 0, true)
	require.NoError(t, db.Model(p).Update("is_active", false).Error)

	_, err := svc.AddItem(context.Background(), guest("session-e"), AddItemInput{ProductID: p.ID})
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestAddItemSnapshotsEffectivePrice(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Xích DID", 500000, 450000, true)
	owner := guest("session-f")

	_, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Options: map[string]interface{}{"size": "428H", "gold": true}})
	require.NoError(t, err)

	require.NoError(t, db.Model(p).Update("sale_price", nil).Error)
	view, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 450000.0, view.Items[0].Price, "snapshot keeps the price at add time")
	assert.Equal(t, 500000.0, view.Items[0].UnitPrice, "totals follow the live price")
	assert.Equal(t, 500000.0, view.Total)
	assert.Equal(t, "428H", view.Items[0].Options["size"])
	assert.Equal(t, true, view.Items[0].Options["gold"])
}

func TestUpdateItemReplaces(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Gương chiếu hậu", 200000, 0, true)
	owner := guest("session-g")

	_, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Quantity: qty(3)})
	require.NoError(t, err)
	view, err := svc.UpdateItem(ctx, owner, UpdateItemInput{ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, owner, UpdateItemInput{ProductID: p.ID, Quantity: 0})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))
	_, err = svc.UpdateItem(ctx, owner, UpdateItemInput{ProductID: "", Quantity: 2})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))
	_, err = svc.UpdateItem(ctx, owner, UpdateItemInput{ProductID: "missing", Quantity: 2})
	assert.True(t, apperror.Is(err, apperror.NotFound))

	view, err = svc.GetCart(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Items[0].Quantity, "rejected updates leave the line untouched")
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	kept := testdb.Product(t, db, "Yên xe", 700000, 0, true)
	owner := guest("session-h")

	view, err := svc.RemoveItem(ctx, owner, kept.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = svc.AddItem(ctx, owner, AddItemInput{ProductID: kept.ID, Quantity: qty(2)})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		view, err = svc.RemoveItem(ctx, owner, "not-in-cart")
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.Items[0].Quantity)
	}
}

func TestClearCart(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Ắc quy GS", 600000, 0, true)
	owner := guest("session-i")

	_, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID})
	require.NoError(t, err)

	view, err := svc.Clear(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	var carts, items int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	assert.Zero(t, carts)
	assert.Zero(t, items)

	_, err = svc.Clear(ctx, owner)
	assert.NoError(t, err)
}

func TestCartsAreIsolatedByOwner(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Mũ bảo hiểm", 800000, 0, true)

	_, err := svc.AddItem(ctx, guest("one"), AddItemInput{ProductID: p.ID, Quantity: qty(1)})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, guest("two"), AddItemInput{ProductID: p.ID, Quantity: qty(4)})
	require.NoError(t, err)

	one, err := svc.Count(ctx, guest("one"))
	require.NoError(t, err)
	two, err := svc.Count(ctx, guest("two"))
	require.NoError(t, err)
	none, err := svc.Count(ctx, models.CartOwner{})
	require.NoError(t, err)

	assert.Equal(t, 1, one)
	assert.Equal(t, 4, two)
	assert.Zero(t, none)
}

func TestUserIDWinsOverSession(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Tay côn", 150000, 0, true)

	_, err := svc.AddItem(ctx, models.CartOwner{UserID: "user-1", SessionID: "session-j"}, AddItemInput{ProductID: p.ID})
	require.NoError(t, err)

	var cart models.Cart
	require.NoError(t, db.First(&cart).Error)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, "user-1", *cart.UserID)
	assert.Nil(t, cart.SessionID)
}

// The test database has a single connection, so these goroutines reach the
// database one at a time. This covers find-or-create and the upsert under
// goroutine interleaving; atomicity across connections rests on the
// single-statement upsert and the (cart_id, product_id) unique index.
func TestConcurrentAddsMergeIntoOneLine(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	p := testdb.Product(t, db, "Lọc gió", 120000, 0, true)
	owner := guest("session-k")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(context.Background(), owner, AddItemInput{ProductID: p.ID, Quantity: qty(1)})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.EqualValues(t, 1, countLines(t, db, p.ID))
	count, err := svc.Count(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, workers, count)
}

func TestMergeGuestCart(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	shared := testdb.Product(t, db, "Dầu phanh", 100000, 0, true)
	guestOnly := testdb.Product(t, db, "Má phanh", 250000, 0, true)
	user := models.CartOwner{UserID: "user-42"}

	_, err := svc.AddItem(ctx, user, AddItemInput{ProductID: shared.ID, Quantity: qty(1)})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, guest("guest-42"), AddItemInput{ProductID: shared.ID, Quantity: qty(2)})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, guest("guest-42"), AddItemInput{ProductID: guestOnly.ID, Quantity: qty(1)})
	require.NoError(t, err)

	merged, err := svc.MergeGuestCart(ctx, user.UserID, "guest-42")
	require.NoError(t, err)
	assert.True(t, merged)

	view, err := svc.GetCart(ctx, user)
	require.NoError(t, err)
	quantities := map[string]int{}
	for _, item := range view.Items {
		quantities[item.ProductID] = item.Quantity
	}
	assert.Equal(t, map[string]int{shared.ID: 3, guestOnly.ID: 1}, quantities)

	guestCart, err := repositories.NewCartRepository(db).FindBySessionID(ctx, "guest-42")
	require.NoError(t, err)
	assert.Nil(t, guestCart)

	merged, err = svc.MergeGuestCart(ctx, user.UserID, "guest-42")
	require.NoError(t, err)
	assert.False(t, merged)
}

func TestMergeGuestCartCreatesUserCart(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Nhông sên dĩa", 900000, 0, true)

	_, err := svc.AddItem(ctx, guest("guest-7"), AddItemInput{ProductID: p.ID, Quantity: qty(2)})
	require.NoError(t, err)

	merged, err := svc.MergeGuestCart(ctx, "user-7", "guest-7")
	require.NoError(t, err)
	assert.True(t, merged)

	count, err := svc.Count(ctx, models.CartOwner{UserID: "user-7"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// removeCartsOnNextDelete deletes the emptied carts right before the next
// cart delete runs, inside the same transaction, as if a concurrent request
// had checked out or merged the cart first.
func removeCartsOnNextDelete(t *testing.T, db *gorm.DB) {
	t.Helper()
	fired := false
	err := db.Callback().Delete().Before("gorm:delete").Register("test:remove_emptied_carts", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "carts" {
			return
		}
		fired = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, "DELETE FROM carts WHERE id NOT IN (SELECT cart_id FROM cart_items)")
		if err != nil {
			_ = tx.AddError(err)
		}
	})
	require.NoError(t, err)
}

func TestMergeGuestCartLosesRaceToAnotherMerge(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Bugi NGK", 90000, 0, true)
	user := models.CartOwner{UserID: "user-race"}

	_, err := svc.AddItem(ctx, user, AddItemInput{ProductID: p.ID, Quantity: qty(1)})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, guest("guest-race"), AddItemInput{ProductID: p.ID, Quantity: qty(2)})
	require.NoError(t, err)

	removeCartsOnNextDelete(t, db)
	merged, err := svc.MergeGuestCart(ctx, user.UserID, "guest-race")
	require.NoError(t, err)
	assert.False(t, merged)

	count, err := svc.Count(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the losing merge must not add guest quantities")
}

func TestQuantityIsCapped(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Vỏ Michelin", 1500000, 0, true)
	owner := guest("session-cap")

	_, err := svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Quantity: qty(models.MaxCartItemQuantity + 1)})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))
	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.Zero(t, carts)

	_, err = svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Quantity: qty(models.MaxCartItemQuantity)})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, AddItemInput{ProductID: p.ID, Quantity: qty(5)})
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, models.MaxCartItemQuantity, view.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, owner, UpdateItemInput{ProductID: p.ID, Quantity: models.MaxCartItemQuantity + 1})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))
}

func TestMergeGuestCartCapsQuantity(t *testing.T) {
	db := testdb.New(t)
	svc := newCartService(db)
	ctx := context.Background()
	p := testdb.Product(t, db, "Nhớt Motul", 180000, 0, true)
	user := models.CartOwner{UserID: "user-cap"}

	_, err := svc.AddItem(ctx, user, AddItemInput{ProductID: p.ID, Quantity: qty(600)})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, guest("guest-cap"), AddItemInput{ProductID: p.ID, Quantity: qty(600)})
	require.NoError(t, err)

	merged, err := svc.MergeGuestCart(ctx, user.UserID, "guest-cap")
	require.NoError(t, err)
	assert.True(t, merged)

	count, err := svc.Count(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.MaxCartItemQuantity, count)
}
