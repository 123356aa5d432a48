package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

type BuildingService struct {
	repository ports.BuildingRepository
	audit      ports.AuditLog
}

func NewBuildingService(repository ports.BuildingRepository, audit ports.AuditLog) *BuildingService {
	return &BuildingService{repository: repository, audit: audit}
}

// ListBuildings returns one page of buildings ordered by name.
func (s *BuildingService) ListBuildings(ctx context.Context, actor *domain.Actor, page int) (domain.BuildingPage, error) {
	if err := Authorize(actor, OpListBuildings, nil); err != nil {
		return domain.BuildingPage{}, err
	}

	page = normalizePage(page)
	buildings, total, err := s.repository.ListBuildings(ctx, domain.PageSize, pageOffset(page))
	if err != nil {
		return domain.BuildingPage{}, err
	}
	pages, err := checkPage(page, total)
	if err != nil {
		return domain.BuildingPage{}, err
	}
	return domain.BuildingPage{Buildings: buildings, Page: page, NumPages: pages, Total: total}, nil
}

func (s *BuildingService) CreateBuilding(ctx context.Context, actor *domain.Actor, input domain.BuildingInput) (domain.Building, error) {
	if err := Authorize(actor, OpManageBuildings, nil); err != nil {
		return domain.Building{}, err
	}
	input = normalizeBuildingInput(input)
	if errs := input.Validate(); !errs.Empty() {
		return domain.Building{}, domain.NewValidationError(errs)
	}

	building, err := s.repository.CreateBuilding(ctx, input)
	if err != nil {
		return domain.Building{}, s.fail(ctx, actor, domain.AuditBuildingCreationFailed,
			"create building", fmt.Sprintf("Błąd podczas tworzenia budynku: %v", err), err)
	}
	s.audit.LogAction(ctx, domain.AuditBuildingCreated, actor,
		fmt.Sprintf("Budynek '%s' został utworzony.", building.Name))
	return building, nil
}

func (s *BuildingService) UpdateBuilding(ctx context.Context, actor *domain.Actor, id uint64, input domain.BuildingInput) (domain.Building, error) {
	if err := Authorize(actor, OpManageBuildings, nil); err != nil {
		return domain.Building{}, err
	}
	if _, err := s.repository.GetBuilding(ctx, id); err != nil {
		return domain.Building{}, err
	}
	input = normalizeBuildingInput(input)
	if errs := input.Validate(); !errs.Empty() {
		return domain.Building{}, domain.NewValidationError(errs)
	}

	building, err := s.repository.UpdateBuilding(ctx, id, input)
	if err != nil {
		return domain.Building{}, s.fail(ctx, actor, domain.AuditBuildingUpdateFailed,
			"update building", fmt.Sprintf("Błąd podczas aktualizacji budynku: %v", err), err)
	}
	s.audit.LogAction(ctx, domain.AuditBuildingUpdated, actor,
		fmt.Sprintf("Budynek '%s' został zaktualizowany.", building.Name))
	return building, nil
}

// DeleteBuilding removes the building; tasks referencing it stay.
func (s *BuildingService) DeleteBuilding(ctx context.Context, actor *domain.Actor, id uint64) error {
	if err := Authorize(actor, OpManageBuildings, nil); err != nil {
		return err
	}
	building, err := s.repository.GetBuilding(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.DeleteBuilding(ctx, id); err != nil {
		return s.fail(ctx, actor, domain.AuditBuildingDeleteFailed,
			"delete building", fmt.Sprintf("Błąd podczas usuwania budynku: %v", err), err)
	}
	s.audit.LogAction(ctx, domain.AuditBuildingDeleted, actor,
		fmt.Sprintf("Budynek '%s' został usunięty.", building.Name))
	return nil
}

func (s *BuildingService) fail(ctx context.Context, actor *domain.Actor, action domain.AuditAction, op, description string, err error) error {
	zap.L().Error("building operation failed", zap.String("op", op), zap.Error(err))
	s.audit.LogAction(context.WithoutCancel(ctx), action, actor, description)
	return &domain.PersistenceError{Op: op, Err: err}
}

func normalizeBuildingInput(input domain.BuildingInput) domain.BuildingInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	return input
}

var _ ports.BuildingService = (*BuildingService)(nil)
