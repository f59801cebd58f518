package models

// ErrorResponse is the uniform error body returned by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PaginationInfo contains pagination metadata.
type PaginationInfo struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// DashboardSummary is the headline view: tier distribution and average health.
type DashboardSummary struct {
	TotalClients   int `json:"total_clients"`
	Green          int `json:"green"`
	Amber          int `json:"amber"`
	Red            int `json:"red"`
	AvgHealthScore int `json:"avg_health_score"`
}

// RedQueueEntry is one Red-tier client in the callback queue.
type RedQueueEntry struct {
	Client  Client `json:"client"`
	Overdue bool   `json:"overdue"`
}

// RedQueueResponse lists Red-tier clients with their 24h SLA state.
type RedQueueResponse struct {
	Total   int             `json:"total"`
	Overdue int             `json:"overdue"`
	Clients []RedQueueEntry `json:"clients"`
}
