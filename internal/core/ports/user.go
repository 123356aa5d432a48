package ports

import (
	"context"

	"cmms/internal/core/domain"
)

type UserRepository interface {
	GetUser(ctx context.Context, id uint64) (domain.User, error)
	GetUsers(ctx context.Context, ids []uint64) ([]domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error)
}

type UserService interface {
	ListUsers(ctx context.Context, actor *domain.Actor) ([]domain.User, error)
	CreateUser(ctx context.Context, actor *domain.Actor, user domain.NewUser) (domain.User, error)
}
