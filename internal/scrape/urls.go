package scrape

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// URLs builds source page addresses. The site routes everything through
// query parameters on a handful of paths.
type URLs struct {
	Base string
}

func (u URLs) CompetitionListing(competitionID int64, seasonID int64, page, pageSize int) string {
	return fmt.Sprintf("%s/mot/motalisti/?MotNumer=%d&TimabilNumer=%d&Sida=%d&FjoldiASidu=%d",
		u.Base, competitionID, seasonID, page, pageSize)
}

func (u URLs) MatchOverview(matchID int64) string {
	return fmt.Sprintf("%s/mot/stakur-leikur/?leikur=%d&tab=overview", u.Base, matchID)
}

func (u URLs) MatchReport(matchID int64) string {
	return fmt.Sprintf("%s/mot/stakur-leikur/?leikur=%d&tab=report", u.Base, matchID)
}

func (u URLs) Standings(competitionID int64, seasonID int64) string {
	return fmt.Sprintf("%s/mot/stada/?MotNumer=%d&TimabilNumer=%d", u.Base, competitionID, seasonID)
}

func (u URLs) Player(playerID int64) string {
	return fmt.Sprintf("%s/mot/leikmadur/?leikmadur=%d", u.Base, playerID)
}

var (
	matchIDPattern  = regexp.MustCompile(`[?&]leikur=(\d+)`)
	playerIDPattern = regexp.MustCompile(`[?&]leikmadur=(\d+)`)
	teamIDPattern   = regexp.MustCompile(`[?&]felag=(\d+)`)
)

// ExtractMatchIDs returns every match id linked from the document in
// document order, duplicates included; callers de-duplicate.
func ExtractMatchIDs(doc *goquery.Document) []int64 {
	var out []int64
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		if id, ok := matchPatternID(matchIDPattern, href); ok {
			out = append(out, id)
		}
	})
	return out
}

func playerIDFromHref(href string) (int64, bool) {
	return matchPatternID(playerIDPattern, href)
}

func teamIDFromHref(href string) (int64, bool) {
	return matchPatternID(teamIDPattern, href)
}

func matchPatternID(pattern *regexp.Regexp, href string) (int64, bool) {
	m := pattern.FindStringSubmatch(href)
	if len(m) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
