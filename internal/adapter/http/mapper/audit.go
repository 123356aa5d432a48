package mapper

import (
	"time"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/core/domain"
)

func ToAuditPage(page domain.AuditPage) dto.AuditPage {
	entries := make([]dto.AuditEntryItem, 0, len(page.Entries))
	for _, entry := range page.Entries {
		entries = append(entries, dto.AuditEntryItem{
			ID:          entry.ID,
			Action:      string(entry.Action),
			IP:          entry.IP,
			Email:       entry.Email,
			Date:        entry.Date.UTC().Format(time.RFC3339),
			Description: entry.Description,
		})
	}
	return dto.AuditPage{Entries: entries, Page: page.Page, NumPages: page.NumPages, Total: page.Total}
}
