package usecase

import (
	"context"
	"net/http"
	"strings"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

type ProductUsecase struct {
	tx          repo.TransactionManager
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(tx repo.TransactionManager, productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{
		tx:          tx,
		productRepo: productRepo,
	}
}

type CreateProductInput struct {
	ProductName string
	Price       *float64
}

// nilのフィールドは「変更しない」
type UpdateProductInput struct {
	ProductName *string
	Price       *float64
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.ProductName) == "" {
		fields["product_name"] = "product_name is required"
	}
	if in.Price != nil && *in.Price < 0 {
		fields["price"] = "price must be >= 0"
	}
	if len(fields) > 0 {
		return model.Product{}, NewValidationError(fields)
	}

	var price float64
	if in.Price != nil {
		price = *in.Price
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		ProductName: strings.TrimSpace(in.ProductName),
		Price:       price,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	current, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fields := map[string]string{}
	if in.ProductName != nil && strings.TrimSpace(*in.ProductName) == "" {
		fields["product_name"] = "product_name must not be empty"
	}
	if in.Price != nil && *in.Price < 0 {
		fields["price"] = "price must be >= 0"
	}
	if len(fields) > 0 {
		return model.Product{}, NewValidationError(fields)
	}

	// 指定されたフィールドだけ上書き
	if in.ProductName != nil {
		current.ProductName = strings.TrimSpace(*in.ProductName)
	}
	if in.Price != nil {
		current.Price = *in.Price
	}

	err = u.productRepo.Update(ctx, current)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return current, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	// 件数チェックと削除の間にリンクが入らないよう同一トランザクションで行う
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文から参照されている商品は消せない（ブロック方針）
		total, err := r.OrderProducts().CountByProductID(ctx, productID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if total > 0 {
			return NewHTTPError(http.StatusConflict, "product is referenced by orders")
		}

		err = r.Products().Delete(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Product not found")
		}
		// 外部キーに弾かれたケース。チェック後にリンクが入った
		if err == repo.ErrConflict {
			return NewHTTPError(http.StatusConflict, "product is referenced by orders")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}
