package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/Rakhulsr/go-motoshop/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CheckoutInput struct {
	CustomerName string `json:"customerName" validate:"required,max=150"`
	Phone        string `json:"phone" validate:"required,min=8,max=20"`
	Email        string `json:"email" validate:"omitempty,email,max=100"`
	Address      string `json:"address" validate:"required,max=500"`
	Note         string `json:"note" validate:"max=1000"`
}

type CheckoutService struct {
	db            *gorm.DB
	cartRepo      repositories.CartRepositoryImpl
	cartItemRepo  repositories.CartItemRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	validator     *validator.Validate
	notifier      OrderNotifier
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepositoryImpl,
	cartItemRepo repositories.CartItemRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	validator *validator.Validate,
	notifier OrderNotifier,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		validator:     validator,
		notifier:      notifier,
	}
}

func generateOrderCode(now time.Time) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), token)
}

func (s *CheckoutService) validate(in *CheckoutInput) error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Address = strings.TrimSpace(in.Address)
	in.Note = strings.TrimSpace(in.Note)

	if err := s.validator.Struct(in); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return apperror.NewInvalidFields("Vui lòng kiểm tra lại thông tin giao hàng.", helpers.FormatValidationErrors(validationErrors))
		}
		return err
	}
	return nil
}

// Submit turns the owner's cart into an order priced from the cart's
// snapshot prices and deletes the cart, all in one transaction. The cart row
// is locked first, so a second submit of the same cart ends in Conflict.
func (s *CheckoutService) Submit(ctx context.Context, owner models.CartOwner, in CheckoutInput) (*models.Order, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, apperror.NewInvalid("Giỏ hàng của bạn đang trống.")
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)

		found, err := cartRepo.FindByOwner(ctx, owner)
		if err != nil {
			return fmt.Errorf("failed to find cart: %w", err)
		}
		if found == nil {
			return apperror.NewInvalid("Giỏ hàng của bạn đang trống.")
		}
		if err := cartRepo.LockCart(ctx, found.ID); err != nil {
			return err
		}

		cart, err := cartRepo.GetCartWithItems(ctx, found.ID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if cart == nil || len(cart.CartItems) == 0 {
			return apperror.NewInvalid("Giỏ hàng của bạn đang trống.")
		}

		now := time.Now()
		order = &models.Order{
			OrderCode:    generateOrderCode(now),
			CustomerName: in.CustomerName,
			Phone:        in.Phone,
			Email:        in.Email,
			Address:      in.Address,
			Note:         in.Note,
			Status:       models.OrderStatusPending,
		}
		if owner.UserID != "" {
			userID := owner.UserID
			order.UserID = &userID
		} else {
			sessionID := owner.SessionID
			order.SessionID = &sessionID
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cart.CartItems))
		for _, ci := range cart.CartItems {
			if ci.Product == nil || !ci.Product.IsActive {
				return apperror.NewNotFound("Một sản phẩm trong giỏ hàng không còn tồn tại, vui lòng cập nhật giỏ hàng.")
			}
			if !ci.Product.InStock {
				return apperror.NewConflict(fmt.Sprintf("Sản phẩm \"%s\" đã hết hàng.", ci.Product.Name))
			}

			subtotal := calc.LineTotal(ci.Price, ci.Quantity)
			total = total.Add(subtotal)
			items = append(items, models.OrderItem{
				ProductID:   ci.ProductID,
				ProductName: ci.Product.Name,
				Quantity:    ci.Quantity,
				Price:       ci.Price,
				Subtotal:    subtotal,
			})
		}
		order.Total = total

		if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.WithTx(tx).BulkCreate(ctx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.OrderItems = items

		if err := s.cartItemRepo.WithTx(tx).ClearCartItems(ctx, cart.ID); err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		if err := cartRepo.DeleteCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
	if errors.Is(err, repositories.ErrCartGone) {
		return nil, apperror.NewConflict("Giỏ hàng này đã được đặt hàng, vui lòng kiểm tra lại đơn hàng của bạn.")
	}
	if err != nil {
		return nil, err
	}

	log.Printf("CheckoutService.Submit: order %s created with %d items", order.OrderCode, len(order.OrderItems))

	if s.notifier != nil && order.Email != "" {
		if err := s.notifier.OrderPlaced(order); err != nil {
			log.Printf("CheckoutService.Submit: failed to notify order %s: %v", order.OrderCode, err)
		}
	}

	return order, nil
}
