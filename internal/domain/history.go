package domain

import "time"

// HistoryEntry is an immutable record of a past successful query. Entries
// are appended newest-first and never edited; only a bulk clear removes
// them.
type HistoryEntry struct {
	ID           string    `json:"id"`
	Question     string    `json:"question"`
	SQL          string    `json:"sql"`
	ResultsCount int       `json:"results_count"`
	Timestamp    time.Time `json:"timestamp"`
	ConnectionID string    `json:"connection_id,omitempty"`
}
