package models

// PaginatedResponse wraps a page of results for the admin listings. Total is
// the full row count so the dashboard can render page controls.
type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
