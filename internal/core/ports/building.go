package ports

import (
	"context"

	"cmms/internal/core/domain"
)

type BuildingRepository interface {
	CreateBuilding(ctx context.Context, input domain.BuildingInput) (domain.Building, error)
	GetBuilding(ctx context.Context, id uint64) (domain.Building, error)
	GetBuildings(ctx context.Context, ids []uint64) ([]domain.Building, error)
	ListBuildings(ctx context.Context, limit, offset int) ([]domain.Building, int, error)
	UpdateBuilding(ctx context.Context, id uint64, input domain.BuildingInput) (domain.Building, error)
	DeleteBuilding(ctx context.Context, id uint64) error
}

type BuildingService interface {
	ListBuildings(ctx context.Context, actor *domain.Actor, page int) (domain.BuildingPage, error)
	CreateBuilding(ctx context.Context, actor *domain.Actor, input domain.BuildingInput) (domain.Building, error)
	UpdateBuilding(ctx context.Context, actor *domain.Actor, id uint64, input domain.BuildingInput) (domain.Building, error)
	DeleteBuilding(ctx context.Context, actor *domain.Actor, id uint64) error
}
