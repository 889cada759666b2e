package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/solvik/vollur/internal/domain/competition"
	"github.com/solvik/vollur/internal/domain/match"
	"github.com/solvik/vollur/internal/platform/logging"
	"github.com/solvik/vollur/internal/scrape"
)

// pageFetcher is the single seam between services and the live site;
// tests feed parsed fixture documents through it.
type pageFetcher interface {
	FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error)
}

type DiscoveryConfig struct {
	MaxPages  int
	PageSize  int
	ChunkSize int
	DryRun    bool
}

type DiscoveryService struct {
	fetcher         pageFetcher
	urls            scrape.URLs
	competitionRepo competition.Repository
	matchRepo       match.Repository
	cfg             DiscoveryConfig
	logger          *logging.Logger
}

func NewDiscoveryService(
	fetcher pageFetcher,
	urls scrape.URLs,
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	cfg DiscoveryConfig,
	logger *logging.Logger,
) *DiscoveryService {
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 100
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 250
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DiscoveryService{
		fetcher:         fetcher,
		urls:            urls,
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		cfg:             cfg,
		logger:          logger,
	}
}

type DiscoveryInput struct {
	CompetitionID int64
	SeasonYear    int
	// SeasonID is the source site's opaque season number; zero means the
	// season year doubles as the number.
	SeasonID int64
	Name     string
}

type DiscoveryResult struct {
	CompetitionID int64
	SeasonYear    int
	MatchesFound  int
	NewMatches    int
}

// SyncCompetition registers the competition and crawls its listing pages
// until a page adds nothing new. Any page failure fails the whole
// competition/season unit.
func (s *DiscoveryService) SyncCompetition(ctx context.Context, in DiscoveryInput) (DiscoveryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DiscoveryService.SyncCompetition")
	defer span.End()

	if in.CompetitionID <= 0 {
		return DiscoveryResult{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if in.SeasonYear <= 0 {
		return DiscoveryResult{}, fmt.Errorf("%w: season year is required", ErrInvalidInput)
	}
	seasonID := in.SeasonID
	if seasonID == 0 {
		seasonID = int64(in.SeasonYear)
	}

	comp := scrape.ClassifyCompetition(in.CompetitionID, in.SeasonYear, strings.TrimSpace(in.Name))
	if !s.cfg.DryRun {
		if err := s.competitionRepo.UpsertBatch(ctx, []competition.Competition{comp}); err != nil {
			return DiscoveryResult{}, fmt.Errorf("upsert competition: %w", err)
		}
	}

	ids, err := scrape.DiscoverMatchIDs(ctx, func(ctx context.Context, page int) (*goquery.Document, error) {
		return s.fetcher.FetchDocument(ctx, s.urls.CompetitionListing(in.CompetitionID, seasonID, page, s.cfg.PageSize))
	}, s.cfg.MaxPages)
	if err != nil {
		return DiscoveryResult{}, fmt.Errorf("discover matches for competition %d: %w", in.CompetitionID, err)
	}

	result := DiscoveryResult{
		CompetitionID: in.CompetitionID,
		SeasonYear:    in.SeasonYear,
		MatchesFound:  len(ids),
	}

	known := make(map[int64]struct{})
	if existing, err := s.matchRepo.ListExternalIDs(ctx, in.CompetitionID, in.SeasonYear); err == nil {
		for _, id := range existing {
			known[id] = struct{}{}
		}
	} else {
		return DiscoveryResult{}, fmt.Errorf("list known matches: %w", err)
	}

	matches := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			result.NewMatches++
		}
		matches = append(matches, match.Match{
			ExternalID:    id,
			CompetitionID: in.CompetitionID,
			SeasonYear:    in.SeasonYear,
		})
	}

	if !s.cfg.DryRun {
		for _, chunk := range chunkMatches(matches, s.cfg.ChunkSize) {
			if err := s.matchRepo.UpsertBatch(ctx, chunk); err != nil {
				return DiscoveryResult{}, fmt.Errorf("upsert discovered matches: %w", err)
			}
		}
	}

	s.logger.InfoContext(ctx, "competition discovered",
		"competition_id", in.CompetitionID,
		"season_year", in.SeasonYear,
		"matches_found", result.MatchesFound,
		"new_matches", result.NewMatches,
		"dry_run", s.cfg.DryRun,
	)
	return result, nil
}

func chunkMatches(items []match.Match, size int) [][]match.Match {
	if len(items) == 0 {
		return nil
	}
	var out [][]match.Match
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
