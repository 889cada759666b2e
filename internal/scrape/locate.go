package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Region names a logical page area the extractors consume.
type Region int

const (
	RegionLineups Region = iota
	RegionEvents
	RegionStandings
)

// Section labels as rendered by the source site.
const (
	labelStartingXI = "Byrjunarlið"
	labelBench      = "Varamenn"
	labelEvents     = "Atburðir"
	labelStandings  = "Staðan"
)

type locateStrategy func(*goquery.Document) *goquery.Selection

// Locate finds the sub-tree for a region using a ranked strategy chain:
// label-anchored search, then class fingerprint, then a positional
// fallback. A miss is not an error; many pages genuinely lack the region.
func Locate(doc *goquery.Document, region Region) (*goquery.Selection, bool) {
	var chain []locateStrategy
	switch region {
	case RegionLineups:
		chain = []locateStrategy{
			labelAnchored(labelStartingXI),
			lineupFingerprint,
			lineupPositional,
		}
	case RegionEvents:
		chain = []locateStrategy{
			labelAnchored(labelEvents),
			eventFingerprint,
			eventPositional,
		}
	case RegionStandings:
		chain = []locateStrategy{
			labelAnchored(labelStandings),
			standingsFingerprint,
			standingsPositional,
		}
	default:
		return nil, false
	}

	for _, strategy := range chain {
		if sel := strategy(doc); sel != nil && sel.Length() > 0 {
			return sel.First(), true
		}
	}
	return nil, false
}

// labelAnchored finds a heading whose normalized text equals the label
// and returns the grid containing it. The offset from label to region is
// a fixed structural fact of the page, not configuration.
func labelAnchored(label string) locateStrategy {
	return func(doc *goquery.Document) *goquery.Selection {
		var found *goquery.Selection
		doc.Find("h2, h3, h4, strong").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if normalizeText(sel.Text()) != label {
				return true
			}
			if grid := sel.Closest("div.match-report__grid"); grid.Length() > 0 {
				found = grid
				return false
			}
			if parent := sel.Parent(); parent.Length() > 0 && !parent.Is("body, html") {
				found = parent
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
		// Standings tables carry the label as a sibling heading, with the
		// table following it.
		var table *goquery.Selection
		doc.Find("h2, h3, h4").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if normalizeText(sel.Text()) != label {
				return true
			}
			next := sel.NextAllFiltered("table").First()
			if next.Length() > 0 {
				table = next
				return false
			}
			return true
		})
		return table
	}
}

func lineupFingerprint(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.cols-2").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.Find(".lineup-list").Length() >= 2
	})
}

// lineupPositional accepts the first grid with at least two row lists of
// plausible roster size.
func lineupPositional(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		lists := 0
		sel.Children().Each(func(_ int, child *goquery.Selection) {
			if child.Find(".lineup-row").Length() >= 2 {
				lists++
			}
		})
		return lists >= 2
	})
}

func eventFingerprint(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.cols-2").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.Find("[data-event]").Length() > 0
	})
}

// eventPositional accepts the first element with at least two row-like
// children that each carry two or more minute markers.
func eventPositional(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		plausible := 0
		sel.Children().Each(func(_ int, child *goquery.Selection) {
			if child.Find(".minute-bubble").Length() >= 2 {
				plausible++
			}
		})
		return plausible >= 2
	})
}

func standingsFingerprint(doc *goquery.Document) *goquery.Selection {
	return doc.Find("table.league-table")
}

// standingsPositional uses header inference as the table-type detector.
func standingsPositional(doc *goquery.Document) *goquery.Selection {
	return doc.Find("table").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return MapColumns(headerCells(sel)) != nil
	})
}

func headerCells(table *goquery.Selection) []string {
	row := table.Find("tr").First()
	var out []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		out = append(out, normalizeText(cell.Text()))
	})
	return out
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
