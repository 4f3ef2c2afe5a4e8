package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
)

type OrderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

func (s *OrderService) ListForOwner(ctx context.Context, owner models.CartOwner) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) List(ctx context.Context, status string, page, perPage int) ([]models.Order, int64, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && !models.IsValidOrderStatus(status) {
		return nil, 0, apperror.NewInvalid("Trạng thái đơn hàng không hợp lệ.")
	}
	page, perPage = normalizePage(page, perPage)

	orders, total, err := s.orderRepo.GetAllOrders(ctx, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, apperror.NewNotFound("Không tìm thấy đơn hàng.")
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.IsValidOrderStatus(status) {
		return nil, apperror.NewInvalidFields("Trạng thái đơn hàng không hợp lệ.", map[string]string{
			"status": "Trạng thái phải là pending, confirmed, completed hoặc cancelled.",
		})
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusCompleted {
		if order.Status != status {
			return nil, apperror.NewConflict("Đơn hàng đã kết thúc, không thể đổi trạng thái.")
		}
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	return order, nil
}

func (s *OrderService) Count(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}

// normalizePage clamps page to >= 1 and perPage to 1..100, defaulting to 12.
func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 12
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}
