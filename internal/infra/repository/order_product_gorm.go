package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopapi/internal/domain/model"
)

type OrderProductGormRepository struct {
	db *gorm.DB
}

func NewOrderProductGormRepository(db *gorm.DB) *OrderProductGormRepository {
	return &OrderProductGormRepository{db: db}
}

// リンクを一括作成。複合主キーの衝突はDO NOTHINGで握りつぶす（冪等）。
func (r *OrderProductGormRepository) LinkBulk(ctx context.Context, orderID int64, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}

	links := make([]model.OrderProduct, 0, len(productIDs))
	for _, pid := range productIDs {
		links = append(links, model.OrderProduct{
			OrderID:   orderID,
			ProductID: pid,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
}

func (r *OrderProductGormRepository) ListProductIDs(ctx context.Context, orderID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.OrderProduct{}).
		Where("order_id = ?", orderID).
		Order("product_id asc").
		Pluck("product_id", &ids).Error
	if err != nil {
		return []int64{}, err
	}
	return ids, nil
}

func (r *OrderProductGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderProduct{}).Error
}

func (r *OrderProductGormRepository) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.OrderProduct{}).
		Where("product_id = ?", productID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
