package repository

import (
	"context"

	"gorm.io/gorm"

	repo "shopapi/internal/repository"
)

type txReposGorm struct {
	users         repo.UserRepository
	products      repo.ProductRepository
	orders        repo.OrderRepository
	orderProducts repo.OrderProductRepository
}

func (r *txReposGorm) Users() repo.UserRepository                 { return r.users }
func (r *txReposGorm) Products() repo.ProductRepository           { return r.products }
func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderProducts() repo.OrderProductRepository { return r.orderProducts }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:         NewUserGormRepository(tx),
			products:      NewProductGormRepository(tx),
			orders:        NewOrderGormRepository(tx),
			orderProducts: NewOrderProductGormRepository(tx),
		}
		return fn(r)
	})
}
