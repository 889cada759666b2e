package matchevent

import "context"

// Repository exposes match event persistence operations.
type Repository interface {
	// ReplaceByMatch swaps the full timeline of one match; partial
	// overwrite would leave stale sequence indices behind.
	ReplaceByMatch(ctx context.Context, matchID int64, items []Event) error
	ListByMatch(ctx context.Context, matchID int64) ([]Event, error)
}
