package repo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avelinov/shop_api/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("ID=?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	items := []models.Product{}
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ProductAggregate loads the catalog once and derives the count and maximum
// price from that snapshot. maxPrice is nil when the catalog is empty.
func (r *GormRepo) ProductAggregate(ctx context.Context) ([]models.Product, int, *decimal.Decimal, error) {
	items, err := r.GetProducts(ctx)
	if err != nil {
		return nil, 0, nil, err
	}

	var maxPrice *decimal.Decimal
	for i := range items {
		if maxPrice == nil || items[i].Price.GreaterThan(*maxPrice) {
			p := items[i].Price
			maxPrice = &p
		}
	}

	return items, len(items), maxPrice, nil
}
