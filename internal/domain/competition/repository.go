package competition

import "context"

// Repository exposes competition persistence operations.
type Repository interface {
	UpsertBatch(ctx context.Context, items []Competition) error
	List(ctx context.Context, seasonYear int) ([]Competition, error)
	GetByKey(ctx context.Context, externalID int64, seasonYear int) (Competition, bool, error)
}
