package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/solvik/vollur/internal/domain/competition"
	"github.com/solvik/vollur/internal/platform/logging"
	"github.com/solvik/vollur/internal/scrape"
)

func listingHTML(ids ...int64) string {
	page := "<html><body>"
	for _, id := range ids {
		page += fmt.Sprintf(`<a href="/mot/stakur-leikur/?leikur=%d">Leikur</a>`, id)
	}
	return page + "</body></html>"
}

func newDiscoveryFixtureService() (*DiscoveryService, *stubCompetitionRepo, *stubMatchRepo, *stubFetcher) {
	urls := scrape.URLs{Base: "https://www.ksi.is"}
	fetcher := &stubFetcher{pages: map[string]string{
		urls.CompetitionListing(45801, 2025, 1, 100): listingHTML(900, 901, 902),
		urls.CompetitionListing(45801, 2025, 2, 100): listingHTML(903, 904),
		// Page 3 re-serves page 2, the crawler must stop there.
		urls.CompetitionListing(45801, 2025, 3, 100): listingHTML(903, 904),
	}}
	competitionRepo := &stubCompetitionRepo{}
	matchRepo := &stubMatchRepo{}

	svc := NewDiscoveryService(fetcher, urls, competitionRepo, matchRepo,
		DiscoveryConfig{MaxPages: 50, PageSize: 100}, logging.NewNop())
	return svc, competitionRepo, matchRepo, fetcher
}

func TestDiscoveryService_SyncCompetition(t *testing.T) {
	t.Parallel()

	svc, competitionRepo, matchRepo, fetcher := newDiscoveryFixtureService()

	in := DiscoveryInput{CompetitionID: 45801, SeasonYear: 2025, Name: "Besta deild karla"}
	result, err := svc.SyncCompetition(context.Background(), in)
	if err != nil {
		t.Fatalf("SyncCompetition error: %v", err)
	}
	if result.MatchesFound != 5 || result.NewMatches != 5 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(fetcher.calls) != 3 {
		t.Fatalf("crawler did not stop on the repeated page: %v", fetcher.calls)
	}

	comp, ok, _ := competitionRepo.GetByKey(context.Background(), 45801, 2025)
	if !ok {
		t.Fatalf("competition not registered")
	}
	if comp.Gender != competition.GenderMale || comp.Tier == nil || *comp.Tier != 1 {
		t.Fatalf("competition not classified: %+v", comp)
	}

	ids, _ := matchRepo.ListExternalIDs(context.Background(), 45801, 2025)
	if len(ids) != 5 {
		t.Fatalf("matches not stored: %v", ids)
	}

	// Second sync sees nothing new.
	again, err := svc.SyncCompetition(context.Background(), in)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if again.MatchesFound != 5 || again.NewMatches != 0 {
		t.Fatalf("expected idempotent re-sync, got %+v", again)
	}
}

func TestDiscoveryService_PageFailureFailsUnit(t *testing.T) {
	t.Parallel()

	urls := scrape.URLs{Base: "https://www.ksi.is"}
	fetcher := &stubFetcher{pages: map[string]string{
		urls.CompetitionListing(45801, 2025, 1, 100): listingHTML(900),
		// Page 2 is missing; the fetch fails.
	}}
	svc := NewDiscoveryService(fetcher, urls, &stubCompetitionRepo{}, &stubMatchRepo{},
		DiscoveryConfig{MaxPages: 50, PageSize: 100}, logging.NewNop())

	_, err := svc.SyncCompetition(context.Background(), DiscoveryInput{CompetitionID: 45801, SeasonYear: 2025})
	if err == nil {
		t.Fatalf("expected the page failure to fail the competition unit")
	}
}

func TestDiscoveryService_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newDiscoveryFixtureService()

	if _, err := svc.SyncCompetition(context.Background(), DiscoveryInput{SeasonYear: 2025}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.SyncCompetition(context.Background(), DiscoveryInput{CompetitionID: 45801}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
