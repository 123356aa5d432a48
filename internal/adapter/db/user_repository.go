package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

const userColumns = `u.id, u.email, u.first_name, u.last_name, u.is_manager, u.first_login`

const (
	getUserQuery        = `SELECT ` + userColumns + ` FROM users u WHERE u.id = ?`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users u WHERE LOWER(u.email) = LOWER(?)`
	getUsersQuery       = `SELECT ` + userColumns + ` FROM users u WHERE u.id IN (?) ORDER BY u.id`
	listUsersQuery      = `SELECT ` + userColumns + ` FROM users u ORDER BY u.last_name, u.first_name, u.id`
	insertUserQuery     = `
INSERT INTO users (email, first_name, last_name, is_manager, first_login)
VALUES (?, ?, ?, ?, ?)`
)

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID         uint64 `db:"id"`
	Email      string `db:"email"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	IsManager  bool   `db:"is_manager"`
	FirstLogin bool   `db:"first_login"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetUser(ctx context.Context, id uint64) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(getUserQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return mapUserRowToDomainUser(row), nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(getUserByEmailQuery), email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return mapUserRowToDomainUser(row), nil
}

// GetUsers returns the users that exist among ids.
func (r *UserRepository) GetUsers(ctx context.Context, ids []uint64) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	query, args, err := sqlx.In(getUsersQuery, ids)
	if err != nil {
		return nil, err
	}

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return mapUserRows(rows), nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, listUsersQuery); err != nil {
		return nil, err
	}
	return mapUserRows(rows), nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(insertUserQuery),
		user.Email, user.FirstName, user.LastName, user.IsManager, true)
	if err != nil {
		return domain.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		ID:         uint64(id),
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsManager:  user.IsManager,
		FirstLogin: true,
	}, nil
}

func mapUserRows(rows []userRow) []domain.User {
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRowToDomainUser(row))
	}
	return users
}

func mapUserRowToDomainUser(row userRow) domain.User {
	return domain.User{
		ID:         row.ID,
		Email:      row.Email,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		IsManager:  row.IsManager,
		FirstLogin: row.FirstLogin,
	}
}
