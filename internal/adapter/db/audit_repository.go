package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

const (
	insertAuditEntryQuery = `
INSERT INTO audit_entries (action, ip, email, date, description)
VALUES (?, ?, ?, ?, ?)`
	listAuditEntriesQuery = `
SELECT a.id, a.action, a.ip, a.email, a.date, a.description
FROM audit_entries a`
	countAuditEntriesQuery = `SELECT COUNT(*) FROM audit_entries a`
)

type AuditRepository struct {
	db *sqlx.DB
}

type auditEntryRow struct {
	ID          uint64         `db:"id"`
	Action      string         `db:"action"`
	IP          sql.NullString `db:"ip"`
	Email       sql.NullString `db:"email"`
	Date        time.Time      `db:"date"`
	Description string         `db:"description"`
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) AppendEntry(ctx context.Context, entry domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertAuditEntryQuery),
		string(entry.Action),
		nullString(entry.IP),
		nullString(entry.Email),
		entry.Date.UTC(),
		entry.Description,
	)
	return err
}

// ListEntries returns entries newest first, optionally for one action.
func (r *AuditRepository) ListEntries(ctx context.Context, action domain.AuditAction, limit, offset int) ([]domain.AuditEntry, int, error) {
	where := &whereClause{}
	if action != "" {
		where.add("a.action = ?", string(action))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countAuditEntriesQuery+where.String()), where.args...); err != nil {
		return nil, 0, err
	}

	query := listAuditEntriesQuery + where.String() + " ORDER BY a.date DESC, a.id DESC LIMIT ? OFFSET ?"
	args := append(append([]any{}, where.args...), limit, offset)

	var rows []auditEntryRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, 0, err
	}

	entries := make([]domain.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapAuditEntryRowToDomainAuditEntry(row))
	}
	return entries, total, nil
}

func mapAuditEntryRowToDomainAuditEntry(row auditEntryRow) domain.AuditEntry {
	entry := domain.AuditEntry{
		ID:          row.ID,
		Action:      domain.AuditAction(row.Action),
		Date:        row.Date,
		Description: row.Description,
	}
	if row.IP.Valid {
		value := row.IP.String
		entry.IP = &value
	}
	if row.Email.Valid {
		value := row.Email.String
		entry.Email = &value
	}
	return entry
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
