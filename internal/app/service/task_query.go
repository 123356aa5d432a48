package service

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"cmms/internal/core/domain"
)

const DateLayout = "2006-01-02"

// Filter query keys accepted by ParseTaskFilter.
const (
	QueryAssignee     = "assigned_person"
	QueryStatus       = "status_field"
	QueryCategory     = "category"
	QueryPriority     = "priority"
	QueryCreatedFrom  = "created_at_start"
	QueryCreatedTo    = "created_at_end"
	QueryClosedFrom   = "closed_at_start"
	QueryClosedTo     = "closed_at_end"
	QueryDeadlineFrom = "deadline_start"
	QueryDeadlineTo   = "deadline_end"
	QueryPage         = "page"
)

// ParseTaskFilter reads the optional filters from query values. Blank,
// unknown or unparseable values leave their filter unset.
func ParseTaskFilter(values url.Values) domain.TaskFilter {
	var filter domain.TaskFilter

	if raw := strings.TrimSpace(values.Get(QueryAssignee)); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.AssigneeID = &id
		}
	}
	if raw := strings.TrimSpace(values.Get(QueryStatus)); raw != "" {
		status := domain.TaskStatus(raw)
		if raw == domain.TaskStatusNone {
			status = domain.TaskStatusOpen
		}
		if status.Valid() {
			filter.Status = &status
		}
	}
	if category := domain.TaskCategory(strings.TrimSpace(values.Get(QueryCategory))); category.Valid() {
		filter.Category = category
	}
	if priority := domain.TaskPriority(strings.TrimSpace(values.Get(QueryPriority))); priority.Valid() {
		filter.Priority = priority
	}

	filter.CreatedAt = parseDateRange(values, QueryCreatedFrom, QueryCreatedTo)
	filter.ClosedAt = parseDateRange(values, QueryClosedFrom, QueryClosedTo)
	filter.Deadline = parseDateRange(values, QueryDeadlineFrom, QueryDeadlineTo)

	return filter
}

// ParsePage returns the requested page number, 1 when missing or malformed.
func ParsePage(values url.Values) int {
	page, err := strconv.Atoi(strings.TrimSpace(values.Get(QueryPage)))
	if err != nil {
		return 1
	}
	return normalizePage(page)
}

// EncodeTaskFilter renders a parsed filter back into query form.
func EncodeTaskFilter(filter domain.TaskFilter) string {
	values := url.Values{}
	if filter.AssigneeID != nil {
		values.Set(QueryAssignee, strconv.FormatUint(*filter.AssigneeID, 10))
	}
	if filter.Status != nil {
		status := string(*filter.Status)
		if status == "" {
			status = domain.TaskStatusNone
		}
		values.Set(QueryStatus, status)
	}
	if filter.Category != "" {
		values.Set(QueryCategory, string(filter.Category))
	}
	if filter.Priority != "" {
		values.Set(QueryPriority, string(filter.Priority))
	}
	encodeDateRange(values, filter.CreatedAt, QueryCreatedFrom, QueryCreatedTo)
	encodeDateRange(values, filter.ClosedAt, QueryClosedFrom, QueryClosedTo)
	encodeDateRange(values, filter.Deadline, QueryDeadlineFrom, QueryDeadlineTo)
	return values.Encode()
}

func parseDateRange(values url.Values, fromKey, toKey string) domain.DateRange {
	return domain.DateRange{
		From: parseDate(values.Get(fromKey)),
		To:   parseDate(values.Get(toKey)),
	}
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	day, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil
	}
	return &day
}

func encodeDateRange(values url.Values, r domain.DateRange, fromKey, toKey string) {
	if r.From != nil {
		values.Set(fromKey, r.From.Format(DateLayout))
	}
	if r.To != nil {
		values.Set(toKey, r.To.Format(DateLayout))
	}
}
