package domain

// DatabaseStats is the collaborator's answer to the stats operation.
// DatabaseSizeMB mirrors the backend's information_schema computation.
type DatabaseStats struct {
	Tables       int     `json:"tables"`
	TotalRecords int64   `json:"total_records"`
	SizeMB       float64 `json:"database_size"`
}
