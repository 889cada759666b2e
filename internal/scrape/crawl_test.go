package scrape

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
)

func listingPage(t *testing.T, ids ...int64) *goquery.Document {
	t.Helper()
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, id := range ids {
		fmt.Fprintf(&b, `<a href="/mot/stakur-leikur/?leikur=%d">Leikur</a>`, id)
	}
	b.WriteString("</body></html>")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("build listing page: %v", err)
	}
	return doc
}

func TestDiscoverMatchIDs_StopsOnRepeatedPage(t *testing.T) {
	t.Parallel()

	// The site re-serves the last page when the page number runs past the
	// end: page 3 repeats page 2.
	pages := map[int][]int64{
		1: {101, 102, 103},
		2: {104, 105},
		3: {104, 105},
	}
	var fetched []int
	fetch := func(_ context.Context, page int) (*goquery.Document, error) {
		fetched = append(fetched, page)
		return listingPage(t, pages[page]...), nil
	}

	ids, err := DiscoverMatchIDs(context.Background(), fetch, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{101, 102, 103, 104, 105}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d (%v)", len(want), len(ids), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("id %d = %d, want %d (first-seen order)", i, ids[i], want[i])
		}
	}

	if len(fetched) != 3 {
		t.Fatalf("expected to stop after the repeated page, fetched %v", fetched)
	}
}

func TestDiscoverMatchIDs_RespectsMaxPages(t *testing.T) {
	t.Parallel()

	next := int64(1)
	fetch := func(_ context.Context, page int) (*goquery.Document, error) {
		if page > 4 {
			t.Fatalf("fetched page %d past the cap", page)
		}
		id := next
		next++
		return listingPage(t, id), nil
	}

	ids, err := DiscoverMatchIDs(context.Background(), fetch, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 4 {
		t.Fatalf("expected 4 ids, got %d", len(ids))
	}
}

func TestDiscoverMatchIDs_PageFailureFailsTheUnit(t *testing.T) {
	t.Parallel()

	boom := errors.New("status 500")
	fetch := func(_ context.Context, page int) (*goquery.Document, error) {
		if page == 2 {
			return nil, boom
		}
		return listingPage(t, int64(page*10), int64(page*10+1)), nil
	}

	ids, err := DiscoverMatchIDs(context.Background(), fetch, 10)
	if err == nil {
		t.Fatalf("expected the page failure to propagate")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause lost: %v", err)
	}
	if ids != nil {
		t.Fatalf("partial ids must not leak out of a failed unit: %v", ids)
	}
}
