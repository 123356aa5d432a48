package dto

type AuditEntryItem struct {
	ID          uint64  `json:"id"`
	Action      string  `json:"action"`
	IP          *string `json:"ip"`
	Email       *string `json:"email"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type AuditPage struct {
	Entries  []AuditEntryItem `json:"entries"`
	Page     int              `json:"page"`
	NumPages int              `json:"num_pages"`
	Total    int              `json:"total"`
}
