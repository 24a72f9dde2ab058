package repository

import (
	"context"

	"shopapi/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	// 全フィールド置き換え。部分適用の合成はusecase側でやる。
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id int64) error

	// 一意チェック用。見つからなければnil。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByAddress(ctx context.Context, address string) (*model.User, error)
}
