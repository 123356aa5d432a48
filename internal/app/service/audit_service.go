package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

type AuditLogService struct {
	repository ports.AuditRepository
	now        func() time.Time
}

func NewAuditLogService(repository ports.AuditRepository) *AuditLogService {
	return &AuditLogService{repository: repository, now: defaultClock}
}

func (s *AuditLogService) LogAction(ctx context.Context, action domain.AuditAction, actor *domain.Actor, description string) {
	s.LogActionWithIP(ctx, action, actor, description, "")
}

// LogActionWithIP records an entry. An empty ip is derived from the actor.
// The write ignores cancellation of ctx so entries for failed operations
// survive an aborted request.
func (s *AuditLogService) LogActionWithIP(ctx context.Context, action domain.AuditAction, actor *domain.Actor, description, ip string) {
	if ip == "" {
		ip = visitorIP(actor)
	}

	entry := domain.AuditEntry{
		Action:      action,
		Date:        s.now(),
		Description: description,
	}
	// Requests always record an address, possibly empty; NULL marks entries
	// written without a request.
	if actor != nil || ip != "" {
		entry.IP = &ip
	}
	if actor != nil && actor.User != nil {
		email := actor.User.Email
		entry.Email = &email
	}

	if err := s.repository.AppendEntry(context.WithoutCancel(ctx), entry); err != nil {
		zap.L().Error("failed to write audit entry",
			zap.String("action", string(action)),
			zap.String("description", description),
			zap.Error(err),
		)
	}
}

func (s *AuditLogService) ListEntries(ctx context.Context, actor *domain.Actor, filter domain.AuditFilter) (domain.AuditPage, error) {
	if err := Authorize(actor, OpListAudit, nil); err != nil {
		return domain.AuditPage{}, err
	}

	page := normalizePage(filter.Page)
	entries, total, err := s.repository.ListEntries(ctx, filter.Action, domain.PageSize, pageOffset(page))
	if err != nil {
		return domain.AuditPage{}, err
	}
	pages, err := checkPage(page, total)
	if err != nil {
		return domain.AuditPage{}, err
	}

	return domain.AuditPage{Entries: entries, Page: page, NumPages: pages, Total: total}, nil
}

// visitorIP prefers the X-Real-Ip header over the resolved client address.
func visitorIP(actor *domain.Actor) string {
	if actor == nil {
		return ""
	}
	if actor.RealIP != "" {
		return actor.RealIP
	}
	return actor.ClientIP
}

func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

var _ ports.AuditService = (*AuditLogService)(nil)
