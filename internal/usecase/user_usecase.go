package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shopapi/internal/domain/model"
	repo "shopapi/internal/repository"
)

// 入力検証はDBを見る必要があるのでinterfaceで注入する
type UserValidator interface {
	ValidateCreate(ctx context.Context, in CreateUserInput) (map[string]string, error)
	ValidateUpdate(ctx context.Context, current model.User, in UpdateUserInput) (map[string]string, error)
}

type UserUsecase struct {
	tx        repo.TransactionManager
	userRepo  repo.UserRepository
	orderRepo repo.OrderRepository
	validator UserValidator
}

// DI
func NewUserUsecase(tx repo.TransactionManager, userRepo repo.UserRepository, orderRepo repo.OrderRepository, validator UserValidator) *UserUsecase {
	return &UserUsecase{
		tx:        tx,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		validator: validator,
	}
}

type CreateUserInput struct {
	Name    string
	Email   string
	Address *string
}

// nilのフィールドは「変更しない」
type UpdateUserInput struct {
	Name    *string
	Email   *string
	Address *string
}

type UserOutput struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   *string   `json:"address"`
	OrderIDs  []int64   `json:"order_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]UserOutput, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]UserOutput, 0, len(users))
	for _, usr := range users {
		orderIDs, err := u.orderRepo.ListIDsByUserID(ctx, usr.ID)
		if err != nil {
			return []UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toUserOutput(usr, orderIDs))
	}
	return outs, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	usr, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orderIDs, err := u.orderRepo.ListIDsByUserID(ctx, userID)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserOutput(usr, orderIDs), nil
}

func (u *UserUsecase) CreateUser(ctx context.Context, in CreateUserInput) (UserOutput, error) {
	fields, err := u.validator.ValidateCreate(ctx, in)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(fields) > 0 {
		return UserOutput{}, NewValidationError(fields)
	}

	created, err := u.userRepo.Create(ctx, model.User{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Address: trimAddress(in.Address),
	})
	if err == repo.ErrConflict {
		// 事前チェックとcreateの間に同じ値が入った
		return UserOutput{}, NewHTTPError(http.StatusConflict, "email or address already used")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserOutput(created, []int64{}), nil
}

func (u *UserUsecase) UpdateUser(ctx context.Context, userID int64, in UpdateUserInput) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	current, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fields, err := u.validator.ValidateUpdate(ctx, current, in)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(fields) > 0 {
		return UserOutput{}, NewValidationError(fields)
	}

	// 指定されたフィールドだけ上書き
	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		current.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		current.Address = trimAddress(in.Address)
	}

	err = u.userRepo.Update(ctx, current)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err == repo.ErrConflict {
		return UserOutput{}, NewHTTPError(http.StatusConflict, "email or address already used")
	}
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orderIDs, err := u.orderRepo.ListIDsByUserID(ctx, userID)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserOutput(current, orderIDs), nil
}

func (u *UserUsecase) DeleteUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	// 件数チェックと削除の間に注文が入らないよう同一トランザクションで行う
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文を持つユーザーは消せない（ブロック方針）
		total, err := r.Orders().CountByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if total > 0 {
			return NewHTTPError(http.StatusConflict, "user has orders")
		}

		err = r.Users().Delete(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}
		// 外部キーに弾かれたケース。チェック後に注文が入った
		if err == repo.ErrConflict {
			return NewHTTPError(http.StatusConflict, "user has orders")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 空白だけのaddressはnull扱いにする
func trimAddress(addr *string) *string {
	if addr == nil {
		return nil
	}
	a := strings.TrimSpace(*addr)
	if a == "" {
		return nil
	}
	return &a
}

func toUserOutput(u model.User, orderIDs []int64) UserOutput {
	if orderIDs == nil {
		orderIDs = []int64{}
	}
	return UserOutput{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		OrderIDs:  orderIDs,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
