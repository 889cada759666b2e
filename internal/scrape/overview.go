package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// MatchOverview carries the header fields of a match page. Nil fields
// mean the page does not expose them yet (upcoming matches have no
// score).
type MatchOverview struct {
	HomeTeamID   *int64
	AwayTeamID   *int64
	HomeTeamName string
	AwayTeamName string
	HomeScore    *int
	AwayScore    *int
	KickoffAt    *time.Time
	Venue        string
}

// ExtractMatchOverview reads teams, score, kickoff and venue from a
// match page header. Scores are kept only as a pair; a half-parsed score
// is dropped so the both-or-neither invariant holds.
func ExtractMatchOverview(doc *goquery.Document) MatchOverview {
	var out MatchOverview

	header := doc.Find(".match-header").First()
	if header.Length() == 0 {
		header = doc.Selection
	}

	home := header.Find(".match-team.home").First()
	away := header.Find(".match-team.away").First()
	out.HomeTeamName, out.HomeTeamID = teamFromCell(home)
	out.AwayTeamName, out.AwayTeamID = teamFromCell(away)

	if hs, as, ok := parseScore(header.Find(".match-score").First().Text()); ok {
		out.HomeScore = &hs
		out.AwayScore = &as
	}

	if raw := header.Find("time").First().AttrOr("datetime", ""); raw != "" {
		if at, err := time.Parse(time.RFC3339, raw); err == nil {
			out.KickoffAt = &at
		}
	}

	out.Venue = normalizeText(header.Find(".match-venue").First().Text())

	return out
}

func teamFromCell(cell *goquery.Selection) (string, *int64) {
	if cell.Length() == 0 {
		return "", nil
	}
	name := normalizeText(cell.Text())
	var id *int64
	cell.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if v, ok := teamIDFromHref(link.AttrOr("href", "")); ok {
			id = &v
			return false
		}
		return true
	})
	if id == nil {
		if v, ok := teamIDFromHref(cell.AttrOr("data-href", "")); ok {
			id = &v
		}
	}
	return name, id
}

func parseScore(raw string) (int, int, bool) {
	raw = normalizeText(raw)
	sep := strings.IndexAny(raw, "-:")
	if sep <= 0 {
		return 0, 0, false
	}
	home := parseNullableInt(raw[:sep])
	away := parseNullableInt(raw[sep+1:])
	if home == nil || away == nil {
		return 0, 0, false
	}
	return *home, *away, true
}
