package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avelinov/shop_api/internal/models"
)

// Money renders a decimal amount with two fixed decimal places, so 10
// serializes as "10.00". Decimal's own String trims trailing zeros.
type Money struct {
	decimal.Decimal
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

type ProductResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Stock       uint   `json:"stock"`
}

// OrderItemResponse flattens the referenced product to two scalar fields.
// The full product object is never nested inside an order payload.
type OrderItemResponse struct {
	ProductName  string `json:"product_name"`
	ProductPrice Money  `json:"product_price"`
	Quantity     uint   `json:"quantity"`
	ItemSubtotal Money  `json:"item_subtotal"`
}

type OrderResponse struct {
	OrderID    uuid.UUID           `json:"order_id"`
	CreatedAt  time.Time           `json:"created_at"`
	User       uint                `json:"user"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	TotalPrice Money               `json:"total_price"`
}

type ProductInfoResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
	MaxPrice *Money            `json:"max_price"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessTokenResponse struct {
	Access string `json:"access"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       Money{p.Price},
		Stock:       p.Stock,
	}
}

func NewProductListResponse(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// NewOrderItemResponse derives the subtotal from the current product price,
// never from a stored column.
func NewOrderItemResponse(item models.OrderItem) OrderItemResponse {
	qty := decimal.NewFromInt(int64(item.Quantity))
	return OrderItemResponse{
		ProductName:  item.Product.Name,
		ProductPrice: Money{item.Product.Price},
		Quantity:     item.Quantity,
		ItemSubtotal: Money{item.Product.Price.Mul(qty)},
	}
}

func NewOrderResponse(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	total := decimal.Zero
	for _, item := range o.Items {
		r := NewOrderItemResponse(item)
		total = total.Add(r.ItemSubtotal.Decimal)
		items = append(items, r)
	}

	return OrderResponse{
		OrderID:    o.OrderID,
		CreatedAt:  o.CreatedAt,
		User:       o.UserID,
		Status:     o.Status,
		Items:      items,
		TotalPrice: Money{total},
	}
}

func NewOrderListResponse(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}

func NewProductInfoResponse(products []models.Product, count int, maxPrice *decimal.Decimal) ProductInfoResponse {
	resp := ProductInfoResponse{
		Products: NewProductListResponse(products),
		Count:    count,
	}
	if maxPrice != nil {
		resp.MaxPrice = &Money{*maxPrice}
	}
	return resp
}
