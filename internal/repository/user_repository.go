package repository

import (
	"context"

	"shop/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error

	// 見つからないときは(nil, nil)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)

	Update(ctx context.Context, user *model.User) error
}
