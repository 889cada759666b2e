package match

import "context"

// Repository exposes match persistence operations.
type Repository interface {
	UpsertBatch(ctx context.Context, items []Match) error
	GetByExternalID(ctx context.Context, externalID int64) (Match, bool, error)
	ListByCompetition(ctx context.Context, competitionID int64, seasonYear int) ([]Match, error)
	ListByTeam(ctx context.Context, teamID int64, seasonYear int) ([]Match, error)
	ListExternalIDs(ctx context.Context, competitionID int64, seasonYear int) ([]int64, error)
}
