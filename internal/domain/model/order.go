package model

import "time"

type OrderStatus string

const (
	OrderStatusOpen     OrderStatus = "OPEN"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// 許可されたステータスか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusOpen, OrderStatusPaid, OrderStatusShipped, OrderStatusCanceled:
		return true
	}
	return false
}

type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderDate time.Time   `gorm:"not null" json:"order_date"`
	UserID    int64       `gorm:"not null;index" json:"user_id"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`

	// 外部キーはDB側にも張る。注文が残っているユーザーは消せない。
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}
