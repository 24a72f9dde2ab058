package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
	OrderProducts() OrderProductRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// 1回の業務操作 = 1トランザクション。セッションを跨いで共有しない。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
