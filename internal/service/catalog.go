package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avelinov/shop_api/internal/models"
	"github.com/avelinov/shop_api/internal/repo"
)

var ErrValidation = errors.New("validation") // 400

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) ProductInfo(ctx context.Context) ([]models.Product, int, *decimal.Decimal, error) {
	return s.Repo.ProductAggregate(ctx)
}

// ValidateProduct holds the write-path rules for products. No write endpoint
// is routed, but any future create/update must pass through here.
func ValidateProduct(p *models.Product) error {
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	return nil
}
