package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	UpsertBatch(ctx context.Context, items []Entry) error
	ListByMatch(ctx context.Context, matchID int64) ([]Entry, error)
	// SetMinuteInIfNull and SetMinuteOutIfNull backfill substitution
	// minutes from ingested events; existing values are never overwritten.
	SetMinuteInIfNull(ctx context.Context, matchID, playerID int64, minute int) error
	SetMinuteOutIfNull(ctx context.Context, matchID, playerID int64, minute int) error
}
