package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

type OrderUsecase struct {
	tx          repo.TransactionManager
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
	linkRepo    repo.OrderProductRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	productRepo repo.ProductRepository,
	linkRepo repo.OrderProductRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		linkRepo:    linkRepo,
	}
}

type CreateOrderInput struct {
	UserID     int64
	ProductIDs []int64
}

type OrderOutput struct {
	ID        int64           `json:"id"`
	OrderDate time.Time       `json:"order_date"`
	UserID    int64           `json:"user_id"`
	Status    string          `json:"status"`
	Products  []model.Product `json:"products"`
}

// CreateOrder は注文を作って商品をリンクする。
// 全product_idの存在を確認してから書き込む。途中失敗で空注文が残らないように
// 注文とリンクは1トランザクションで作る。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	fields := map[string]string{}
	if in.UserID <= 0 {
		fields["user_id"] = "user_id is required"
	}

	// 重複は除く（set扱い）。順序は最初に出てきた順を保つ。
	ids := dedupeIDs(in.ProductIDs)
	if len(ids) == 0 {
		fields["product_ids"] = "product_ids must not be empty"
	}
	for _, id := range ids {
		if id <= 0 {
			fields["product_ids"] = "product_ids must be positive"
			break
		}
	}
	if len(fields) > 0 {
		return OrderOutput{}, NewValidationError(fields)
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, in.UserID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "User not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 先に全商品を解決する。1件でも欠けたら何も書かずに失敗。
		products, err := r.Products().FindByIDs(ctx, ids)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if missing := missingIDs(ids, products); len(missing) > 0 {
			return NewHTTPError(http.StatusNotFound, "Product not found: "+joinIDs(missing))
		}

		created, err := r.Orders().Create(ctx, model.Order{
			OrderDate: time.Now().UTC(),
			UserID:    in.UserID,
			Status:    model.OrderStatusOpen,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderProducts().LinkBulk(ctx, created.ID, ids); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(created, products)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]OrderOutput, error) {
	orders, err := u.orderRepo.List(ctx)
	if err != nil {
		return []OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		products, err := u.resolveProducts(ctx, o.ID)
		if err != nil {
			return []OrderOutput{}, err
		}
		outs = append(outs, toOrderOutput(o, products))
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.resolveProducts(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(o, products), nil
}

// UpdateOrderStatus はステータスだけを書き換える。
// 商品リンクは組み立て時に確定したもの。更新では触らない。
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	s := model.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !s.Valid() {
		return OrderOutput{}, NewValidationError(map[string]string{
			"status": "status must be one of OPEN, PAID, SHIPPED, CANCELED",
		})
	}

	err := u.orderRepo.UpdateStatus(ctx, orderID, s)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetOrder(ctx, orderID)
}

// DeleteOrder は注文とそのリンクをまとめて消す。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.OrderProducts().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		err := r.Orders().Delete(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func (u *OrderUsecase) resolveProducts(ctx context.Context, orderID int64) ([]model.Product, error) {
	ids, err := u.linkRepo.ListProductIDs(ctx, orderID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func toOrderOutput(o model.Order, products []model.Product) OrderOutput {
	if products == nil {
		products = []model.Product{}
	}
	return OrderOutput{
		ID:        o.ID,
		OrderDate: o.OrderDate,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Products:  products,
	}
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(want []int64, got []model.Product) []int64 {
	found := make(map[int64]struct{}, len(got))
	for _, p := range got {
		found[p.ID] = struct{}{}
	}
	var missing []int64
	for _, id := range want {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
