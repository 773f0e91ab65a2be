package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Description string          `gorm:"not null"                    json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       uint            `gorm:"not null;default:0"          json:"stock"`
}

type Order struct {
	OrderID   uuid.UUID   `gorm:"type:uuid;primaryKey"     json:"order_id"`
	UserID    uint        `gorm:"index;not null"           json:"user_id"`
	CreatedAt time.Time   `gorm:"not null"                 json:"created_at"`
	Status    string      `gorm:"not null;default:pending" json:"status"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"    json:"order_id"`
	ProductID uint      `gorm:"not null"                    json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID"        json:"-"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    uint      `gorm:"index;not null"  json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
	Revoked   bool      `gorm:"default:false"   json:"revoked"`
}
