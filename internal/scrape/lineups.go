package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/solvik/vollur/internal/domain/lineup"
)

// Goalkeeper marker appended to the keeper's name on the lineup grid.
const goalkeeperMarker = "(M)"

var trailingMinuteToken = regexp.MustCompile(`\s*\d+\s*'\s*$`)

// ExtractLineups turns a located lineup region into roster entries. The
// region repeats a fixed quadruple per squad: two side headers followed
// by two row lists (home first). Document order is meaningful and is
// preserved as the slot index; a single counter runs across home-start,
// away-start, home-bench, away-bench.
func ExtractLineups(region *goquery.Selection, matchID, homeTeamID, awayTeamID int64) []lineup.Entry {
	if region == nil || region.Length() == 0 {
		return nil
	}

	var (
		out      []lineup.Entry
		squad    lineup.Squad
		listSeen int
		slot     int
	)

	region.Children().Each(func(_ int, child *goquery.Selection) {
		if child.Is("h2, h3, h4, strong") {
			switch normalizeText(child.Text()) {
			case labelStartingXI:
				squad = lineup.SquadStart
				listSeen = 0
			case labelBench:
				squad = lineup.SquadBench
				listSeen = 0
			}
			return
		}

		if squad == "" {
			return
		}
		rows := child.Find(".lineup-row")
		if rows.Length() == 0 && !child.HasClass("lineup-list") {
			return
		}

		side := lineup.SideHome
		teamID := homeTeamID
		if listSeen > 0 {
			side = lineup.SideAway
			teamID = awayTeamID
		}
		listSeen++

		rows.Each(func(_ int, row *goquery.Selection) {
			out = append(out, lineupEntryFromRow(row, matchID, side, squad, slot, teamID))
			slot++
		})
	})

	return out
}

func lineupEntryFromRow(row *goquery.Selection, matchID int64, side lineup.Side, squad lineup.Squad, slot int, teamID int64) lineup.Entry {
	entry := lineup.Entry{
		MatchID:   matchID,
		Side:      side,
		Squad:     squad,
		SlotIndex: slot,
		TeamID:    teamID,
	}

	// A row without a profile link still yields a record so roster-size
	// counts stay accurate; a later repair pass can resolve the id.
	row.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if id, ok := playerIDFromHref(link.AttrOr("href", "")); ok {
			entry.PlayerID = &id
			return false
		}
		return true
	})

	if shirt := parseShirtNumber(row.Find(".shirt").First().Text()); shirt != nil {
		entry.ShirtNumber = shirt
	}

	name := pickPlayerName(row)
	entry.Goalkeeper = strings.Contains(name, goalkeeperMarker)
	entry.Name = cleanPlayerName(name)

	return entry
}

// pickPlayerName prefers the sub-span carrying the goalkeeper marker,
// then the longest visible text span, then the row's flattened text.
func pickPlayerName(row *goquery.Selection) string {
	var keeper, longest string
	row.Find("a, span").Each(func(_ int, sel *goquery.Selection) {
		text := normalizeText(sel.Text())
		if text == "" {
			return
		}
		if keeper == "" && strings.Contains(text, goalkeeperMarker) {
			keeper = text
		}
		if len(text) > len(longest) {
			longest = text
		}
	})
	if keeper != "" {
		return keeper
	}
	if longest != "" {
		return longest
	}
	return normalizeText(row.Text())
}

func cleanPlayerName(name string) string {
	name = strings.ReplaceAll(name, goalkeeperMarker, "")
	name = trailingMinuteToken.ReplaceAllString(name, "")
	return normalizeText(name)
}

func parseShirtNumber(raw string) *int {
	raw = strings.TrimSuffix(normalizeText(raw), ".")
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
