package dto

type LabelCount struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Dashboard struct {
	Total       int          `json:"total"`
	Open        int          `json:"open"`
	Closed      int          `json:"closed"`
	Overdue     int          `json:"overdue"`
	ByCategory  []LabelCount `json:"by_category"`
	ByPriority  []LabelCount `json:"by_priority"`
	AvgClosure  *string      `json:"avg_closure,omitempty"`
	RecentTasks []TaskItem   `json:"recent_tasks"`
}
