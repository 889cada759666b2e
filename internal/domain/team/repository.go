package team

import "context"

// Repository exposes team persistence operations.
type Repository interface {
	// UpsertBatch inserts missing teams. With overwriteNames unset an
	// existing non-empty name is kept (first writer wins).
	UpsertBatch(ctx context.Context, items []Team, overwriteNames bool) error
	GetByExternalID(ctx context.Context, externalID int64) (Team, bool, error)
	ListByExternalIDs(ctx context.Context, externalIDs []int64) ([]Team, error)
}
