package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

type UserGormRepository struct {
	crudGorm[model.User]
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{crudGorm[model.User]{db: db}}
}

// ユーザーを更新（全フィールド置き換え）。
func (r *UserGormRepository) Update(ctx context.Context, u model.User) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"name":    u.Name,
		"email":   u.Email,
		"address": u.Address,
	})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// emailでユーザーを1件取得。見つからなければnil。
func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// addressでユーザーを1件取得。見つからなければnil。
func (r *UserGormRepository) FindByAddress(ctx context.Context, address string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("address = ?", address).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}
