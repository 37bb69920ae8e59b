package repository

import (
	"context"

	"refurbstore/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (model.User, error)
}
