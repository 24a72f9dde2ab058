package repository

import (
	"context"
	"errors"

	"shopapi/internal/domain/model"
)

// 対象が存在しない
var ErrNotFound = errors.New("not found")

// 一意制約に衝突した（email / addressの重複など）
var ErrConflict = errors.New("conflict")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	// 注文組み立て用。見つかった分だけ返す（欠けの判定は呼び出し側）。
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}
