package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	repo "shopapi/internal/repository"
)

// エンティティ共通のCRUD。各リポジトリが埋め込んで使う。
type crudGorm[T any] struct {
	db *gorm.DB
}

func (r *crudGorm[T]) FindByID(ctx context.Context, id int64) (T, error) {
	var v T
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var zero T
		return zero, repo.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (r *crudGorm[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return []T{}, err
	}
	return items, nil
}

func (r *crudGorm[T]) Create(ctx context.Context, v T) (T, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		var zero T
		return zero, translateErr(err)
	}
	return v, nil
}

func (r *crudGorm[T]) Delete(ctx context.Context, id int64) error {
	var v T
	res := r.db.WithContext(ctx).Delete(&v, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	// 0件削除は「対象がない」
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 一意制約違反（23505）と外部キー違反（23503）はErrConflictに寄せる。
// 事前チェックをすり抜けた同時リクエストの保険。
func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
		return repo.ErrConflict
	}
	return err
}
