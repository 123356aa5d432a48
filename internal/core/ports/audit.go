package ports

import (
	"context"

	"cmms/internal/core/domain"
)

// AuditRepository is append-only.
type AuditRepository interface {
	AppendEntry(ctx context.Context, entry domain.AuditEntry) error
	ListEntries(ctx context.Context, action domain.AuditAction, limit, offset int) ([]domain.AuditEntry, int, error)
}

type AuditLog interface {
	LogAction(ctx context.Context, action domain.AuditAction, actor *domain.Actor, description string)
	LogActionWithIP(ctx context.Context, action domain.AuditAction, actor *domain.Actor, description, ip string)
}

type AuditService interface {
	AuditLog
	ListEntries(ctx context.Context, actor *domain.Actor, filter domain.AuditFilter) (domain.AuditPage, error)
}
