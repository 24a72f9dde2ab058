package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	// ユーザー表現にorder_idsを入れるため
	ListIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
	// ユーザー削除ポリシーの判定用
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

// 注文と商品のリンクの約束
type OrderProductRepository interface {
	// 同じペアは黙って無視する（冪等）
	LinkBulk(ctx context.Context, orderID int64, productIDs []int64) error
	ListProductIDs(ctx context.Context, orderID int64) ([]int64, error)
	DeleteByOrderID(ctx context.Context, orderID int64) error
	// 商品削除ポリシーの判定用
	CountByProductID(ctx context.Context, productID int64) (int64, error)
}
