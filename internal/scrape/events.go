package scrape

import (
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/solvik/vollur/internal/domain/matchevent"
)

// layoutVariant holds the icon colors of one page-generation era. Both
// observed palettes stay recognized; the site has never confirmed
// retiring the older one.
type layoutVariant struct {
	name   string
	subOn  string
	subOff string
	yellow string
	red    string
}

var layoutVariants = []layoutVariant{
	{name: "modern", subOn: "#3dbb56", subOff: "#d34a3f", yellow: "#f2c311", red: "#c1272d"},
	{name: "legacy", subOn: "#00a651", subOff: "#ed1c24", yellow: "#ffd400", red: "#a6192e"},
}

// Substitution direction text classes: green marks the player coming on,
// red the player going off.
const (
	classSubOn  = "txt-green"
	classSubOff = "txt-red"
)

// Note keywords used to refine goal and card subtypes.
const (
	noteOwnGoal      = "sjálfsmark"
	notePenalty      = "víti"
	noteSecondYellow = "seinna gula"
)

// ExtractEvents turns a located events region into a chronologically
// ordered timeline. Rows render in a two-column layout; the "reversed"
// row class marks the away column. That mapping is a fixed convention of
// the source and is reproduced, not derived.
func ExtractEvents(region *goquery.Selection, matchID, homeTeamID, awayTeamID int64, teamByPlayer map[int64]int64) []matchevent.Event {
	if region == nil || region.Length() == 0 {
		return nil
	}

	var events []matchevent.Event
	region.Find("[data-event]").Each(func(_ int, node *goquery.Selection) {
		if ev, ok := eventFromNode(node, matchID, homeTeamID, awayTeamID, teamByPlayer); ok {
			events = append(events, ev)
		}
	})

	events = dedupeEvents(events)

	// Raw document order does not track temporal order closely enough to
	// trust; the explicit re-sort makes (match, sequence) stable across
	// re-parses.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Minute != events[j].Minute {
			return events[i].Minute < events[j].Minute
		}
		si, sj := stoppageOrZero(events[i].Stoppage), stoppageOrZero(events[j].Stoppage)
		if si != sj {
			return si < sj
		}
		ti, tj := teamOrZero(events[i].TeamID), teamOrZero(events[j].TeamID)
		if ti != tj {
			return ti < tj
		}
		return events[i].Type < events[j].Type
	})
	for i := range events {
		events[i].Sequence = i
	}

	return events
}

func eventFromNode(node *goquery.Selection, matchID, homeTeamID, awayTeamID int64, teamByPlayer map[int64]int64) (matchevent.Event, bool) {
	row := node.Closest(".event-row")
	if row.Length() == 0 {
		row = node.Parent()
	}

	minute, ok := parseMinute(node.Find(".minute-bubble").First().Text())
	if !ok {
		// Minute is load-bearing for the sort key and for substitution
		// backfill; a row without one is discarded outright.
		return matchevent.Event{}, false
	}

	ev := matchevent.Event{
		MatchID: matchID,
		Minute:  minute,
		Raw:     normalizeText(row.Text()),
	}
	if extra, ok := parseStoppage(node.Find(".minute-extra").First().Text()); ok {
		ev.Stoppage = &extra
	}

	links := collectPlayerLinks(node)
	colors := collectIconColors(node)
	rawLower := strings.ToLower(ev.Raw)

	switch {
	case matchesYellow(colors):
		ev.Type = matchevent.TypeYellow
		if strings.Contains(rawLower, noteSecondYellow) {
			ev.Type = matchevent.TypeSecondYellow
		}
	case matchesSubstitution(colors):
		ev.Type = matchevent.TypeSubstitution
		applySubstitution(&ev, links)
	case matchesRed(colors):
		ev.Type = matchevent.TypeRed
	case len(links) == 1 && hasIcon(node):
		ev.Type = matchevent.TypeGoal
		if strings.Contains(rawLower, noteOwnGoal) {
			ev.Type = matchevent.TypeOwnGoal
		} else if strings.Contains(rawLower, notePenalty) {
			ev.Type = matchevent.TypePenalty
		}
	default:
		ev.Type = matchevent.TypeUnknown
	}

	if ev.Type != matchevent.TypeSubstitution && len(links) > 0 {
		ev.PlayerID = links[0].id
		ev.PlayerName = links[0].name
	}

	// Side-derived attribution. Rows flagged "reversed" render in the away
	// column.
	sideTeam := homeTeamID
	if row.HasClass("reversed") {
		sideTeam = awayTeamID
	}
	ev.TeamID = resolveTeam(ev, teamByPlayer, sideTeam)

	ev.Notes = buildNotes(ev.Raw, minute, links)

	return ev, true
}

type playerLink struct {
	id    *int64
	name  string
	onCls bool
	off   bool
}

func collectPlayerLinks(node *goquery.Selection) []playerLink {
	var out []playerLink
	node.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		name := cleanPlayerName(normalizeText(link.Text()))
		entry := playerLink{
			name:  name,
			onCls: link.HasClass(classSubOn),
			off:   link.HasClass(classSubOff),
		}
		if id, ok := playerIDFromHref(link.AttrOr("href", "")); ok {
			entry.id = &id
		}
		out = append(out, entry)
	})
	return out
}

// applySubstitution picks on/off players by text-color class, falling
// back to document order (first link on, second off).
func applySubstitution(ev *matchevent.Event, links []playerLink) {
	var on, off *playerLink
	for i := range links {
		switch {
		case links[i].onCls && on == nil:
			on = &links[i]
		case links[i].off && off == nil:
			off = &links[i]
		}
	}
	if on == nil && len(links) > 0 {
		on = &links[0]
	}
	if off == nil && len(links) > 1 {
		off = &links[1]
	}
	if on != nil {
		ev.InPlayerID = on.id
		ev.InPlayerName = on.name
	}
	if off != nil {
		ev.OutPlayerID = off.id
		ev.OutPlayerName = off.name
	}
}

func resolveTeam(ev matchevent.Event, teamByPlayer map[int64]int64, sideTeam int64) *int64 {
	lookup := ev.PlayerID
	if ev.Type == matchevent.TypeSubstitution {
		lookup = ev.InPlayerID
	}
	if lookup != nil {
		if teamID, ok := teamByPlayer[*lookup]; ok {
			return &teamID
		}
	}
	if sideTeam > 0 {
		team := sideTeam
		return &team
	}
	return nil
}

func collectIconColors(node *goquery.Selection) map[string]bool {
	colors := make(map[string]bool)
	node.Find("path, rect, circle, line, polygon").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range []string{"stroke", "fill"} {
			if v := strings.ToLower(strings.TrimSpace(sel.AttrOr(attr, ""))); strings.HasPrefix(v, "#") {
				colors[v] = true
			}
		}
	})
	return colors
}

func matchesYellow(colors map[string]bool) bool {
	for _, variant := range layoutVariants {
		if colors[variant.yellow] {
			return true
		}
	}
	return false
}

func matchesRed(colors map[string]bool) bool {
	for _, variant := range layoutVariants {
		if colors[variant.red] {
			return true
		}
	}
	return false
}

// matchesSubstitution requires both direction strokes of the same
// variant; a lone green or red stroke is not enough.
func matchesSubstitution(colors map[string]bool) bool {
	for _, variant := range layoutVariants {
		if colors[variant.subOn] && colors[variant.subOff] {
			return true
		}
	}
	return false
}

func hasIcon(node *goquery.Selection) bool {
	return node.Find("svg, img").Length() > 0
}

// buildNotes strips the minute token and matched player names from the
// flattened text; empty or punctuation-only leftovers collapse to "".
func buildNotes(raw string, minute int, links []playerLink) string {
	notes := raw
	notes = strings.ReplaceAll(notes, strconv.Itoa(minute)+"'", "")
	for _, link := range links {
		if link.name != "" {
			notes = strings.ReplaceAll(notes, link.name, "")
		}
	}
	notes = normalizeText(notes)
	if strings.Trim(notes, " .,;:-+()'") == "" {
		return ""
	}
	return notes
}

func dedupeEvents(events []matchevent.Event) []matchevent.Event {
	seen := make(map[string]bool, len(events))
	out := events[:0]
	for _, ev := range events {
		key := eventKey(ev)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}

func eventKey(ev matchevent.Event) string {
	parts := []string{
		strconv.Itoa(ev.Minute),
		strconv.Itoa(stoppageOrZero(ev.Stoppage)),
		strconv.FormatInt(teamOrZero(ev.TeamID), 10),
		formatID(ev.PlayerID),
		formatID(ev.InPlayerID),
		formatID(ev.OutPlayerID),
		string(ev.Type),
	}
	return strings.Join(parts, "|")
}

func formatID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

func stoppageOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func teamOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func parseMinute(raw string) (int, bool) {
	raw = normalizeText(raw)
	digits := leadingDigits(raw)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseStoppage(raw string) (int, bool) {
	raw = strings.TrimPrefix(normalizeText(raw), "+")
	digits := leadingDigits(raw)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
