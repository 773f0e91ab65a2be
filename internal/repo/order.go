package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avelinov/shop_api/internal/models"
)

// withItems preloads Items and Items.Product: one query per table, three in
// total for a full listing no matter how many orders or items match.
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("Items.Product")
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	q := withItems(r.DB.WithContext(ctx).Model(&models.Order{}))
	if err := q.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	q := withItems(r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID))
	if err := q.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
