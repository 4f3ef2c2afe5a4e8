package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductID string                 `json:"productId"`
	Quantity  *int                   `json:"quantity"`
	Options   map[string]interface{} `json:"options"`
}

type UpdateItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CartService struct {
	db           *gorm.DB
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(db *gorm.DB, cartRepo repositories.CartRepositoryImpl, cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		db:           db,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// loadView reads the cart through repo so it can run inside a transaction.
func (s *CartService) loadView(ctx context.Context, repo repositories.CartRepositoryImpl, cartID string) (*CartView, error) {
	cart, err := repo.GetCartWithItems(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return ProjectCart(cart), nil
}

func (s *CartService) GetCart(ctx context.Context, owner models.CartOwner) (*CartView, error) {
	if owner.IsZero() {
		return EmptyCartView(), nil
	}

	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart == nil {
		return EmptyCartView(), nil
	}
	return s.loadView(ctx, s.cartRepo, cart.ID)
}

func (s *CartService) Count(ctx context.Context, owner models.CartOwner) (int, error) {
	if owner.IsZero() {
		return 0, nil
	}

	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart == nil {
		return 0, nil
	}

	count, err := s.cartRepo.GetCartItemCount(ctx, cart.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}

func quantityTooLarge() error {
	return apperror.NewInvalidFields("Số lượng không hợp lệ.", map[string]string{
		"quantity": fmt.Sprintf("Số lượng tối đa cho mỗi sản phẩm là %d.", models.MaxCartItemQuantity),
	})
}

// AddItem merges quantity into the owner's line for the product, creating the
// cart and the line as needed. The increment is a single upsert, so
// concurrent adds of the same product never lose updates or duplicate rows.
// A line never grows past models.MaxCartItemQuantity.
func (s *CartService) AddItem(ctx context.Context, owner models.CartOwner, in AddItemInput) (*CartView, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, apperror.NewInvalidFields("Dữ liệu giỏ hàng không hợp lệ.", map[string]string{"productId": "Vui lòng chọn sản phẩm."})
	}

	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 1 {
		return nil, apperror.NewInvalidFields("Số lượng không hợp lệ.", map[string]string{"quantity": "Số lượng phải lớn hơn hoặc bằng 1."})
	}
	if qty > models.MaxCartItemQuantity {
		return nil, quantityTooLarge()
	}

	options, err := normalizeCartOptions(in.Options)
	if err != nil {
		return nil, err
	}

	if owner.IsZero() {
		return nil, fmt.Errorf("cart owner is required to add items")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, apperror.NewNotFound("Không tìm thấy sản phẩm.")
	}
	if !product.InStock {
		return nil, apperror.NewConflict(fmt.Sprintf("Sản phẩm \"%s\" đã hết hàng.", product.Name))
	}

	cart, err := s.cartRepo.FindOrCreateByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  qty,
		Price:     product.EffectivePrice(),
		Options:   options,
	}
	if err := s.cartItemRepo.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return s.loadView(ctx, s.cartRepo, cart.ID)
}

// UpdateItem replaces the quantity of an existing line.
func (s *CartService) UpdateItem(ctx context.Context, owner models.CartOwner, in UpdateItemInput) (*CartView, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, apperror.NewInvalidFields("Dữ liệu giỏ hàng không hợp lệ.", map[string]string{"productId": "Vui lòng chọn sản phẩm."})
	}
	if in.Quantity < 1 {
		return nil, apperror.NewInvalidFields("Số lượng không hợp lệ.", map[string]string{"quantity": "Số lượng phải lớn hơn hoặc bằng 1. Dùng chức năng xóa để bỏ sản phẩm."})
	}
	if in.Quantity > models.MaxCartItemQuantity {
		return nil, quantityTooLarge()
	}

	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart == nil {
		return nil, apperror.NewNotFound("Sản phẩm không có trong giỏ hàng.")
	}

	item, err := s.cartItemRepo.GetCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil {
		return nil, apperror.NewNotFound("Sản phẩm không có trong giỏ hàng.")
	}

	if err := s.cartItemRepo.UpdateQuantity(ctx, item.ID, in.Quantity); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.loadView(ctx, s.cartRepo, cart.ID)
}

// RemoveItem is idempotent: removing an absent line returns the cart as is.
func (s *CartService) RemoveItem(ctx context.Context, owner models.CartOwner, productID string) (*CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, apperror.NewInvalidFields("Dữ liệu giỏ hàng không hợp lệ.", map[string]string{"productId": "Vui lòng chọn sản phẩm."})
	}

	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart == nil {
		return EmptyCartView(), nil
	}

	if err := s.cartItemRepo.Delete(ctx, cart.ID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.loadView(ctx, s.cartRepo, cart.ID)
}

// Clear deletes every line and the cart row itself. Clearing a missing cart
// is not an error.
func (s *CartService) Clear(ctx context.Context, owner models.CartOwner) (*CartView, error) {
	cart, err := s.cartRepo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart == nil {
		return EmptyCartView(), nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cartItemRepo.WithTx(tx).ClearCartItems(ctx, cart.ID); err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		if err := s.cartRepo.WithTx(tx).DeleteCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, repositories.ErrCartGone) {
		return nil, err
	}

	return EmptyCartView(), nil
}

// MergeGuestCart folds the guest cart of sessionID into the cart of userID
// with add semantics and deletes the guest cart. Lines already in the user
// cart keep their price snapshot. It reports whether a guest cart existed.
func (s *CartService) MergeGuestCart(ctx context.Context, userID, sessionID string) (bool, error) {
	if userID == "" || sessionID == "" {
		return false, nil
	}

	merged := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		itemRepo := s.cartItemRepo.WithTx(tx)

		guest, err := cartRepo.FindBySessionID(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to find guest cart: %w", err)
		}
		if guest == nil {
			return nil
		}
		if err := cartRepo.LockCart(ctx, guest.ID); err != nil {
			return err
		}

		guestItems, err := itemRepo.GetByCartID(ctx, guest.ID)
		if err != nil {
			return fmt.Errorf("failed to get guest cart items: %w", err)
		}

		if len(guestItems) > 0 {
			userCart, err := cartRepo.FindOrCreateByOwner(ctx, models.CartOwner{UserID: userID})
			if err != nil {
				return fmt.Errorf("failed to get or create user cart: %w", err)
			}

			for _, gi := range guestItems {
				item := &models.CartItem{
					CartID:    userCart.ID,
					ProductID: gi.ProductID,
					Quantity:  gi.Quantity,
					Price:     gi.Price,
					Options:   gi.Options,
				}
				if err := itemRepo.Upsert(ctx, item); err != nil {
					return fmt.Errorf("failed to merge cart item %s: %w", gi.ProductID, err)
				}
			}
		}

		if err := itemRepo.ClearCartItems(ctx, guest.ID); err != nil {
			return fmt.Errorf("failed to clear guest cart items: %w", err)
		}
		if err := cartRepo.DeleteCart(ctx, guest.ID); err != nil {
			return fmt.Errorf("failed to delete guest cart: %w", err)
		}

		merged = true
		log.Printf("CartService.MergeGuestCart: merged %d lines from guest cart %s into user %s", len(guestItems), guest.ID, userID)
		return nil
	})
	if errors.Is(err, repositories.ErrCartGone) {
		// another request merged this guest cart first
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return merged, nil
}
