package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

const (
	getBuildingQuery    = `SELECT b.id, b.name, b.address FROM buildings b WHERE b.id = ?`
	getBuildingsQuery   = `SELECT b.id, b.name, b.address FROM buildings b WHERE b.id IN (?) ORDER BY b.id`
	countBuildingsQuery = `SELECT COUNT(*) FROM buildings`
	listBuildingsQuery  = `
SELECT b.id, b.name, b.address
FROM buildings b
ORDER BY b.name, b.id
LIMIT ? OFFSET ?`
	insertBuildingQuery = `INSERT INTO buildings (name, address) VALUES (?, ?)`
	updateBuildingQuery = `UPDATE buildings SET name = ?, address = ? WHERE id = ?`
	deleteBuildingQuery = `DELETE FROM buildings WHERE id = ?`
)

type BuildingRepository struct {
	db *sqlx.DB
}

type buildingRow struct {
	ID      uint64 `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
}

var _ ports.BuildingRepository = (*BuildingRepository)(nil)

func NewBuildingRepository(db *sqlx.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) CreateBuilding(ctx context.Context, input domain.BuildingInput) (domain.Building, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(insertBuildingQuery), input.Name, input.Address)
	if err != nil {
		return domain.Building{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.Building{}, err
	}
	return domain.Building{ID: uint64(id), Name: input.Name, Address: input.Address}, nil
}

func (r *BuildingRepository) GetBuilding(ctx context.Context, id uint64) (domain.Building, error) {
	var row buildingRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(getBuildingQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Building{}, domain.ErrBuildingNotFound
		}
		return domain.Building{}, err
	}
	return mapBuildingRowToDomainBuilding(row), nil
}

func (r *BuildingRepository) GetBuildings(ctx context.Context, ids []uint64) ([]domain.Building, error) {
	if len(ids) == 0 {
		return []domain.Building{}, nil
	}

	query, args, err := sqlx.In(getBuildingsQuery, ids)
	if err != nil {
		return nil, err
	}

	var rows []buildingRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return mapBuildingRows(rows), nil
}

func (r *BuildingRepository) ListBuildings(ctx context.Context, limit, offset int) ([]domain.Building, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, countBuildingsQuery); err != nil {
		return nil, 0, err
	}

	var rows []buildingRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listBuildingsQuery), limit, offset); err != nil {
		return nil, 0, err
	}
	return mapBuildingRows(rows), total, nil
}

func (r *BuildingRepository) UpdateBuilding(ctx context.Context, id uint64, input domain.BuildingInput) (domain.Building, error) {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(updateBuildingQuery), input.Name, input.Address, id); err != nil {
		return domain.Building{}, err
	}
	return r.GetBuilding(ctx, id)
}

// DeleteBuilding drops the building and its task links; the tasks remain.
func (r *BuildingRepository) DeleteBuilding(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(deleteBuildingQuery), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrBuildingNotFound
	}
	return nil
}

func mapBuildingRows(rows []buildingRow) []domain.Building {
	buildings := make([]domain.Building, 0, len(rows))
	for _, row := range rows {
		buildings = append(buildings, mapBuildingRowToDomainBuilding(row))
	}
	return buildings
}

func mapBuildingRowToDomainBuilding(row buildingRow) domain.Building {
	return domain.Building{ID: row.ID, Name: row.Name, Address: row.Address}
}
