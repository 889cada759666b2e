package scrape

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/solvik/vollur/internal/domain/standing"
)

// ColumnMap assigns canonical standing fields to header positions. An
// index of -1 means the table has no such column.
type ColumnMap struct {
	Variant      string
	Position     int
	Team         int
	Played       int
	Wins         int
	Draws        int
	Losses       int
	Goals        int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
}

const (
	VariantNew     = "new"
	VariantClassic = "classic"
)

// Icelandic letters folded to ASCII before comparison. ð, þ, æ and ö are
// distinct letters, not combining-diacritic forms, so generic accent
// stripping does not cover them.
var icelandicFold = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ý", "y",
	"ð", "d",
	"þ", "th",
	"æ", "ae",
	"ö", "o",
)

func foldHeader(s string) string {
	return icelandicFold.Replace(strings.ToLower(normalizeText(s)))
}

// MapColumns infers the canonical column layout from a header row. The
// team column is mandatory and doubles as the standings-table detector:
// without it the function returns nil, never a partial map. The compact
// single-letter layout is tried first, then the older spelled-out one.
func MapColumns(headers []string) *ColumnMap {
	if len(headers) == 0 {
		return nil
	}

	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = foldHeader(h)
	}

	teamIdx := -1
	for i, h := range folded {
		if h == "lid" || strings.Contains(h, "felag") {
			teamIdx = i
			break
		}
	}
	if teamIdx == -1 {
		return nil
	}

	if m := mapNewLayout(folded, teamIdx); m != nil {
		return m
	}
	return mapClassicLayout(folded, teamIdx)
}

// mapNewLayout recognizes the compact header set: single letters U/J/T
// for wins/draws/losses, M for a combined "X-Y" goals cell, and the
// letter S used for both played and points — first occurrence after the
// team column is played, last is points.
func mapNewLayout(folded []string, teamIdx int) *ColumnMap {
	m := emptyColumnMap(VariantNew)
	m.Team = teamIdx

	var sIdx []int
	for i, h := range folded {
		switch h {
		case "u":
			m.Wins = i
		case "j":
			m.Draws = i
		case "t":
			m.Losses = i
		case "m":
			m.Goals = i
		case "+/-":
			m.GoalDiff = i
		case "s":
			if i > teamIdx {
				sIdx = append(sIdx, i)
			}
		}
	}

	if m.Wins == -1 || m.Draws == -1 || m.Losses == -1 || len(sIdx) < 2 {
		return nil
	}
	m.Played = sIdx[0]
	m.Points = sIdx[len(sIdx)-1]
	return m
}

// mapClassicLayout matches the spelled-out vocabulary per field and
// accepts the result only when at least two of the five core numeric
// fields resolve.
func mapClassicLayout(folded []string, teamIdx int) *ColumnMap {
	m := emptyColumnMap(VariantClassic)
	m.Team = teamIdx

	assign := func(target *int, i int) {
		if *target == -1 {
			*target = i
		}
	}

	for i, h := range folded {
		if i == teamIdx {
			continue
		}
		switch {
		case h == "saeti" || h == "nr" || h == "nr." || h == "rod":
			assign(&m.Position, i)
		case strings.Contains(h, "leik"):
			assign(&m.Played, i)
		case strings.Contains(h, "unn") || h == "sigrar":
			assign(&m.Wins, i)
		case strings.Contains(h, "jafnt"):
			assign(&m.Draws, i)
		case strings.Contains(h, "tap") || h == "top":
			assign(&m.Losses, i)
		case strings.Contains(h, "markamun") || h == "+/-" || h == "mm":
			assign(&m.GoalDiff, i)
		case strings.Contains(h, "skorud"):
			assign(&m.GoalsFor, i)
		case strings.Contains(h, "fengin"):
			assign(&m.GoalsAgainst, i)
		case strings.Contains(h, "mork"):
			assign(&m.Goals, i)
		case strings.Contains(h, "stig"):
			assign(&m.Points, i)
		}
	}

	core := 0
	for _, idx := range []int{m.Played, m.Wins, m.Draws, m.Losses, m.Points} {
		if idx != -1 {
			core++
		}
	}
	if core < 2 {
		return nil
	}
	return m
}

func emptyColumnMap(variant string) *ColumnMap {
	return &ColumnMap{
		Variant:  variant,
		Position: -1, Team: -1, Played: -1, Wins: -1, Draws: -1, Losses: -1,
		Goals: -1, GoalsFor: -1, GoalsAgainst: -1, GoalDiff: -1, Points: -1,
	}
}

// ExtractStandings walks every table in the document, keeps the ones the
// header inference accepts, and emits ranked rows. Numeric cells the
// table omits or that fail to parse stay nil.
func ExtractStandings(doc *goquery.Document, competitionID int64, seasonYear int) []standing.Row {
	var out []standing.Row
	tableIndex := 0

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		m := MapColumns(headerCells(table))
		if m == nil {
			return
		}

		table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
			if rowIdx == 0 {
				return
			}
			cells := row.Find("td")
			if cells.Length() <= m.Team {
				return
			}

			teamCell := cells.Eq(m.Team)
			r := standing.Row{
				CompetitionID: competitionID,
				SeasonYear:    seasonYear,
				TableIndex:    tableIndex,
				TeamName:      normalizeText(teamCell.Text()),
			}
			teamCell.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
				if id, ok := teamIDFromHref(link.AttrOr("href", "")); ok {
					r.TeamID = &id
					return false
				}
				return true
			})

			r.Position = cellInt(cells, m.Position)
			r.Played = cellInt(cells, m.Played)
			r.Wins = cellInt(cells, m.Wins)
			r.Draws = cellInt(cells, m.Draws)
			r.Losses = cellInt(cells, m.Losses)
			r.GoalDifference = cellInt(cells, m.GoalDiff)
			r.Points = cellInt(cells, m.Points)

			if m.Goals != -1 && m.Goals < cells.Length() {
				r.GoalsFor, r.GoalsAgainst = SplitGoals(cells.Eq(m.Goals).Text())
			} else {
				r.GoalsFor = cellInt(cells, m.GoalsFor)
				r.GoalsAgainst = cellInt(cells, m.GoalsAgainst)
			}

			out = append(out, r)
		})

		tableIndex++
	})

	return out
}

// SplitGoals splits a combined goals cell ("47-27" or "47:27") on the
// first separator.
func SplitGoals(raw string) (*int, *int) {
	raw = normalizeText(raw)
	sep := strings.IndexAny(raw, "-:")
	if sep <= 0 {
		return nil, nil
	}
	return parseNullableInt(raw[:sep]), parseNullableInt(raw[sep+1:])
}

func cellInt(cells *goquery.Selection, idx int) *int {
	if idx < 0 || idx >= cells.Length() {
		return nil
	}
	return parseNullableInt(cells.Eq(idx).Text())
}

func parseNullableInt(raw string) *int {
	raw = normalizeText(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
