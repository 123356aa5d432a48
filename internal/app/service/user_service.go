package service

import (
	"context"
	"fmt"
	"strings"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

type UserService struct {
	repository ports.UserRepository
	audit      ports.AuditLog
}

func NewUserService(repository ports.UserRepository, audit ports.AuditLog) *UserService {
	return &UserService{repository: repository, audit: audit}
}

func (s *UserService) ListUsers(ctx context.Context, actor *domain.Actor) ([]domain.User, error) {
	if err := Authorize(actor, OpListUsers, nil); err != nil {
		return nil, err
	}
	return s.repository.ListUsers(ctx)
}

// CreateUser adds a user. A nil actor stands for the command line.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.Actor, user domain.NewUser) (domain.User, error) {
	if err := Authorize(actor, OpCreateUser, nil); err != nil {
		return domain.User{}, err
	}

	user.Email = strings.TrimSpace(user.Email)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)

	errs := domain.FieldErrors{}
	switch {
	case user.Email == "":
		errs.Add("email", domain.FieldRequired)
	case !strings.Contains(user.Email, "@"):
		errs.Add("email", domain.FieldInvalid)
	}
	if user.FirstName == "" {
		errs.Add("first_name", domain.FieldRequired)
	}
	if user.LastName == "" {
		errs.Add("last_name", domain.FieldRequired)
	}
	if !errs.Empty() {
		return domain.User{}, domain.NewValidationError(errs)
	}

	created, err := s.repository.CreateUser(ctx, user)
	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "create user", Err: err}
	}
	s.audit.LogAction(ctx, domain.AuditUserAdded, actor, fmt.Sprintf("id=%d, %s", created.ID, created.FullName()))
	return created, nil
}

var _ ports.UserService = (*UserService)(nil)
