package validator

import (
	"context"
	"regexp"
	"strings"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
	"shopapi/internal/usecase"
)

type userValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewUserValidator(users repository.UserRepository) usecase.UserValidator {
	return &userValidator{users: users}
}

// 新規作成の入力を検証。問題があればフィールド別メッセージを返す。
func (v *userValidator) ValidateCreate(ctx context.Context, in usecase.CreateUserInput) (map[string]string, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	// 必須チェック
	if name == "" {
		fields["name"] = "name is required"
	}
	if email == "" {
		fields["email"] = "email is required"
	} else if !isEmailLike(email) {
		fields["email"] = "email is invalid"
	}

	// email重複チェック（DBが必要）
	if fields["email"] == "" {
		u, err := v.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if u != nil {
			fields["email"] = "email already used"
		}
	}

	// address重複チェック（任意項目、指定があれば）
	if in.Address != nil && strings.TrimSpace(*in.Address) != "" {
		u, err := v.users.FindByAddress(ctx, strings.TrimSpace(*in.Address))
		if err != nil {
			return nil, err
		}
		if u != nil {
			fields["address"] = "address already used"
		}
	}

	return fields, nil
}

// 更新の入力を検証。自分自身との衝突は重複にしない。
func (v *userValidator) ValidateUpdate(ctx context.Context, current model.User, in usecase.UpdateUserInput) (map[string]string, error) {
	fields := map[string]string{}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fields["name"] = "name must not be empty"
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			fields["email"] = "email must not be empty"
		} else if !isEmailLike(email) {
			fields["email"] = "email is invalid"
		} else {
			u, err := v.users.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if u != nil && u.ID != current.ID {
				fields["email"] = "email already used"
			}
		}
	}

	if in.Address != nil && strings.TrimSpace(*in.Address) != "" {
		u, err := v.users.FindByAddress(ctx, strings.TrimSpace(*in.Address))
		if err != nil {
			return nil, err
		}
		if u != nil && u.ID != current.ID {
			fields["address"] = "address already used"
		}
	}

	return fields, nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
