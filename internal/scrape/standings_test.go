package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestMapColumns_NewLayout(t *testing.T) {
	t.Parallel()

	headers := []string{"Lið", "S", "U", "J", "T", "M", "+/-", "S", "SÍÐUSTU 5", "Næsti"}
	m := MapColumns(headers)
	if m == nil {
		t.Fatalf("expected a column map, got nil")
	}
	if m.Variant != VariantNew {
		t.Fatalf("expected new layout, got %s", m.Variant)
	}
	if m.Team != 0 {
		t.Fatalf("unexpected team column: %d", m.Team)
	}
	if m.Played != 1 {
		t.Fatalf("first S after team should be played, got %d", m.Played)
	}
	if m.Points != 7 {
		t.Fatalf("last S should be points, got %d", m.Points)
	}
	if m.Wins != 2 || m.Draws != 3 || m.Losses != 4 {
		t.Fatalf("unexpected W/D/L columns: %d/%d/%d", m.Wins, m.Draws, m.Losses)
	}
	if m.Goals != 5 {
		t.Fatalf("unexpected combined goals column: %d", m.Goals)
	}
	if m.GoalDiff != 6 {
		t.Fatalf("unexpected goal difference column: %d", m.GoalDiff)
	}
}

func TestMapColumns_ClassicLayout(t *testing.T) {
	t.Parallel()

	headers := []string{"Sæti", "Lið", "Leikir", "Unnir", "Jafntefli", "Töp", "Mörk", "Markamunur", "Stig"}
	m := MapColumns(headers)
	if m == nil {
		t.Fatalf("expected a column map, got nil")
	}
	if m.Variant != VariantClassic {
		t.Fatalf("expected classic layout, got %s", m.Variant)
	}
	if m.Position != 0 || m.Team != 1 || m.Played != 2 {
		t.Fatalf("unexpected position/team/played columns: %d/%d/%d", m.Position, m.Team, m.Played)
	}
	if m.Wins != 3 || m.Draws != 4 || m.Losses != 5 {
		t.Fatalf("unexpected W/D/L columns: %d/%d/%d", m.Wins, m.Draws, m.Losses)
	}
	if m.Goals != 6 || m.GoalDiff != 7 || m.Points != 8 {
		t.Fatalf("unexpected goals/diff/points columns: %d/%d/%d", m.Goals, m.GoalDiff, m.Points)
	}
}

func TestMapColumns_NilWithoutTeamColumn(t *testing.T) {
	t.Parallel()

	if m := MapColumns([]string{"Sæti", "Leikir", "Stig"}); m != nil {
		t.Fatalf("expected nil for header row without a team column, got %+v", m)
	}
	if m := MapColumns(nil); m != nil {
		t.Fatalf("expected nil for empty header row, got %+v", m)
	}
}

func TestMapColumns_NilWhenTooAmbiguous(t *testing.T) {
	t.Parallel()

	// Team column alone plus one core field is not enough to trust.
	if m := MapColumns([]string{"Lið", "Stig", "Dagsetning"}); m != nil {
		t.Fatalf("expected nil for ambiguous header row, got %+v", m)
	}
}

func TestFoldHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Lið":       "lid",
		"Töp":       "top",
		"Sæti":      "saeti",
		"Þjálfari":  "thjalfari",
		"Mörk":      "mork",
		"SÍÐUSTU 5": "sidustu 5",
	}
	for in, want := range cases {
		if got := foldHeader(in); got != want {
			t.Fatalf("foldHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitGoals(t *testing.T) {
	t.Parallel()

	gf, ga := SplitGoals("47-27")
	if gf == nil || ga == nil || *gf != 47 || *ga != 27 {
		t.Fatalf("unexpected split of 47-27: %v %v", gf, ga)
	}

	gf, ga = SplitGoals("12:9")
	if gf == nil || ga == nil || *gf != 12 || *ga != 9 {
		t.Fatalf("unexpected split of 12:9: %v %v", gf, ga)
	}

	gf, ga = SplitGoals("n/a")
	if gf != nil || ga != nil {
		t.Fatalf("expected nil pair for unparseable cell, got %v %v", gf, ga)
	}
}

const standingsFixture = `<html><body>
<h3>Staðan</h3>
<table class="league-table">
  <tr><th>Lið</th><th>S</th><th>U</th><th>J</th><th>T</th><th>M</th><th>+/-</th><th>S</th></tr>
  <tr><td><a href="/mot/felog/?felag=101">Valur</a></td><td>22</td><td>15</td><td>4</td><td>3</td><td>47-27</td><td>20</td><td>49</td></tr>
  <tr><td><a href="/mot/felog/?felag=102">Breiðablik</a></td><td>22</td><td>14</td><td>5</td><td>3</td><td>45-22</td><td>23</td><td>47</td></tr>
  <tr><td><a href="/mot/felog/?felag=103">KA</a></td><td>22</td><td>12</td><td>-</td><td>6</td><td>40-31</td><td>9</td><td>40</td></tr>
</table>
<table>
  <tr><th>Dagsetning</th><th>Leikur</th></tr>
  <tr><td>12.5.</td><td>Valur - KA</td></tr>
</table>
</body></html>`

func TestExtractStandings(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, standingsFixture)
	rows := ExtractStandings(doc, 45801, 2025)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.TeamName != "Valur" {
		t.Fatalf("unexpected first team: %q", first.TeamName)
	}
	if first.TeamID == nil || *first.TeamID != 101 {
		t.Fatalf("unexpected first team id: %v", first.TeamID)
	}
	if first.Played == nil || *first.Played != 22 {
		t.Fatalf("unexpected played: %v", first.Played)
	}
	if first.GoalsFor == nil || *first.GoalsFor != 47 || first.GoalsAgainst == nil || *first.GoalsAgainst != 27 {
		t.Fatalf("unexpected goals split: %v %v", first.GoalsFor, first.GoalsAgainst)
	}
	if first.Points == nil || *first.Points != 49 {
		t.Fatalf("unexpected points: %v", first.Points)
	}
	if first.TableIndex != 0 {
		t.Fatalf("unexpected table index: %d", first.TableIndex)
	}

	// An unparseable numeric cell stays nil, not zero.
	third := rows[2]
	if third.Draws != nil {
		t.Fatalf("expected nil draws for dash cell, got %v", third.Draws)
	}

	// The schedule table has no team column and must not be extracted.
	for _, r := range rows {
		if r.TableIndex != 0 {
			t.Fatalf("unexpected extra table extracted: %+v", r)
		}
	}
}

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}
