package standing

import "context"

// Repository exposes standings persistence operations.
type Repository interface {
	// ReplaceTable swaps a whole table (delete scoped by parent key, then
	// insert); rank order is only meaningful as a complete set.
	ReplaceTable(ctx context.Context, competitionID int64, seasonYear, tableIndex int, rows []Row) error
	ListByCompetition(ctx context.Context, competitionID int64, seasonYear int) ([]Row, error)
}
