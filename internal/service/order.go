package service

import (
	"context"

	"github.com/avelinov/shop_api/internal/models"
	"github.com/avelinov/shop_api/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersForUser(ctx, userID)
}
