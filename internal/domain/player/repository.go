package player

import "context"

// Repository exposes player persistence operations.
type Repository interface {
	// UpsertBatch inserts missing players; an existing non-empty name is
	// kept (first writer wins).
	UpsertBatch(ctx context.Context, items []Player) error
	GetByExternalID(ctx context.Context, externalID int64) (Player, bool, error)
}
