package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCartGone means the cart row was removed by a concurrent checkout or
// guest-cart merge after it was read.
var ErrCartGone = errors.New("cart no longer exists")

type CartRepositoryImpl interface {
	WithTx(tx *gorm.DB) CartRepositoryImpl
	FindByOwner(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.Cart, error)
	FindOrCreateByOwner(ctx context.Context, owner models.CartOwner) (*models.Cart, error)
	GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error)
	GetCartItemCount(ctx context.Context, cartID string) (int, error)
	LockCart(ctx context.Context, cartID string) error
	DeleteCart(ctx context.Context, cartID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepositoryImpl {
	return &cartRepository{tx}
}

func (r *cartRepository) first(ctx context.Context, query string, arg string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).Where(query, arg).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// FindByOwner looks the cart up by user id when present, else by session id.
func (r *cartRepository) FindByOwner(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	switch {
	case owner.UserID != "":
		return r.first(ctx, "user_id = ?", owner.UserID)
	case owner.SessionID != "":
		return r.first(ctx, "session_id = ?", owner.SessionID)
	default:
		return nil, nil
	}
}

func (r *cartRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.Cart, error) {
	if sessionID == "" {
		return nil, nil
	}
	return r.first(ctx, "session_id = ?", sessionID)
}

// FindOrCreateByOwner relies on the unique ownership index: when a concurrent
// request inserted the cart first, the insert fails and the winner is read back.
func (r *cartRepository) FindOrCreateByOwner(ctx context.Context, owner models.CartOwner) (*models.Cart, error) {
	if owner.IsZero() {
		return nil, fmt.Errorf("cannot create a cart without an owner")
	}

	cart, err := r.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = owner.NewCart()
	createErr := r.db.WithContext(ctx).Omit("CartItems").Create(cart).Error
	if createErr == nil {
		return cart, nil
	}

	existing, err := r.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("failed to create cart: %w", createErr)
	}
	return existing, nil
}

func (r *cartRepository) GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("CartItems.Product").
		Preload("CartItems.Product.ProductImages", orderedImages).
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetCartItemCount(ctx context.Context, cartID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&count).Error

	return int(count), err
}

// LockCart holds a row lock on the cart until the surrounding transaction
// ends. SQLite has no row locks and ignores the clause.
func (r *cartRepository) LockCart(ctx context.Context, cartID string) error {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&cart, "id = ?", cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartGone
	}
	return err
}

// DeleteCart returns ErrCartGone when no row was deleted.
func (r *cartRepository) DeleteCart(ctx context.Context, cartID string) error {
	result := r.db.WithContext(ctx).Delete(&models.Cart{}, "id = ?", cartID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartGone
	}
	return nil
}
