package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/ports"
)

// Fallback messages for failures that carry no usable text, in preference
// order after any server-supplied message.
const (
	msgExecutionFailed = "Error executing query"
	msgUnknownError    = "Unknown error occurred"
)

// Pipeline accepts natural-language questions, delegates them to the
// backend and normalizes the reply. Failures become plain result values
// with Success=false; the caller never handles a raised error for the
// common failure paths. There is no retry: a retry is a user re-submission.
type Pipeline struct {
	Gateway ports.DatabaseGateway
	History *HistoryLedger
	Session *SessionManager
	Logger  ports.Logger

	mu      sync.Mutex
	seq     uint64
	current *domain.QueryResult
}

// NewPipeline builds a pipeline over the given collaborators.
func NewPipeline(gateway ports.DatabaseGateway, history *HistoryLedger, session *SessionManager, logger ports.Logger) *Pipeline {
	return &Pipeline{
		Gateway: gateway,
		History: history,
		Session: session,
		Logger:  logger,
	}
}

// Execute runs one question through the backend. On success a history
// entry is appended; on failure the history is untouched. Either way the
// outcome is offered as the current result, but a completion only installs
// itself when its issue sequence is still the newest, so a slow stale
// query can never overwrite a fresher one's displayed result.
func (p *Pipeline) Execute(ctx context.Context, question string) domain.QueryResult {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	result, err := p.Gateway.Query(ctx, question)
	if err != nil {
		result = domain.QueryResult{
			Success:  false,
			Error:    failureMessage(err),
			Response: "There was an error executing your query",
		}
		p.Logger.Warn("query failed", map[string]interface{}{"error": err.Error()})
	} else if !result.Success && result.Error == "" {
		result.Error = msgUnknownError
	}

	if result.Success {
		entry := domain.HistoryEntry{
			ID:           "query_" + uuid.NewString(),
			Question:     question,
			SQL:          result.SQL,
			ResultsCount: result.Count,
			Timestamp:    time.Now().UTC(),
		}
		if p.Session != nil {
			entry.ConnectionID = p.Session.CurrentProfileID()
		}
		if err := p.History.Append(entry); err != nil {
			p.Logger.Warn("history append failed", map[string]interface{}{"error": err.Error()})
		}
	}

	p.mu.Lock()
	if seq == p.seq {
		copied := result
		p.current = &copied
	}
	p.mu.Unlock()

	return result
}

// Stats fetches database statistics from the backend. Absence, not an
// error: any failure yields ok=false.
func (p *Pipeline) Stats(ctx context.Context) (domain.DatabaseStats, bool) {
	stats, err := p.Gateway.Stats(ctx)
	if err != nil {
		p.Logger.Warn("stats fetch failed", map[string]interface{}{"error": err.Error()})
		return domain.DatabaseStats{}, false
	}
	return stats, true
}

// CurrentResult returns the most recent result, if any.
func (p *Pipeline) CurrentResult() (domain.QueryResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.QueryResult{}, false
	}
	return *p.current, true
}

// ClearResult drops the current result.
func (p *Pipeline) ClearResult() {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
}

// failureMessage prefers the server-supplied message, then a generic
// execution failure, then the unknown-error fallback.
func failureMessage(err error) string {
	var transport *domain.TransportError
	if errors.As(err, &transport) {
		if transport.Message != "" {
			return transport.Message
		}
		return msgExecutionFailed
	}
	if err != nil && err.Error() != "" {
		return msgExecutionFailed
	}
	return msgUnknownError
}
