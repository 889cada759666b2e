package scrape

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

// ListingFetcher fetches one page of a competition listing.
type ListingFetcher func(ctx context.Context, page int) (*goquery.Document, error)

// DiscoverMatchIDs walks listing pages 1..maxPages and accumulates match
// ids in first-seen order. The loop stops as soon as a page contributes
// zero new ids, which also covers sites that re-serve an earlier page
// when the page number runs past the end. A failed page fails the whole
// competition/season unit; retries belong to the caller.
func DiscoverMatchIDs(ctx context.Context, fetch ListingFetcher, maxPages int) ([]int64, error) {
	if fetch == nil {
		return nil, errors.New("scrape: listing fetcher is required")
	}
	if maxPages < 1 {
		maxPages = 1
	}

	seen := make(map[int64]struct{})
	var out []int64

	for page := 1; page <= maxPages; page++ {
		doc, err := fetch(ctx, page)
		if err != nil {
			return nil, errors.Wrapf(err, "listing page %d", page)
		}

		added := 0
		for _, id := range ExtractMatchIDs(doc) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
			added++
		}
		if added == 0 {
			break
		}
	}

	return out, nil
}
