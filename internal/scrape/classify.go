package scrape

import (
	"regexp"
	"strings"

	"github.com/solvik/vollur/internal/domain/competition"
)

// Division names in tier order; both the sponsor-era and the older
// generic names stay recognized.
var tierPatterns = []struct {
	pattern string
	tier    int
}{
	{"besta deild", 1},
	{"urvalsdeild", 1},
	{"lengjudeild", 2},
	{"1. deild", 2},
	{"2. deild", 3},
	{"3. deild", 4},
	{"4. deild", 5},
}

var youthPattern = regexp.MustCompile(`(\d+\. flokkur|u-?\d{2})`)

// ClassifyCompetition infers tier, gender and age category from a
// competition display name. An unmatched tier stays nil rather than
// guessing.
func ClassifyCompetition(externalID int64, seasonYear int, name string) competition.Competition {
	out := competition.Competition{
		ExternalID:  externalID,
		SeasonYear:  seasonYear,
		Name:        normalizeText(name),
		AgeCategory: competition.AgeAdult,
	}

	folded := foldHeader(name)

	switch {
	case strings.Contains(folded, "kvenna"):
		out.Gender = competition.GenderFemale
	case strings.Contains(folded, "karla"):
		out.Gender = competition.GenderMale
	}

	if youthPattern.MatchString(folded) {
		out.AgeCategory = competition.AgeYouth
	}

	// Tier only ranks men's adult divisions.
	if out.Gender == competition.GenderMale && out.AgeCategory == competition.AgeAdult {
		for _, item := range tierPatterns {
			if strings.Contains(folded, item.pattern) {
				tier := item.tier
				out.Tier = &tier
				break
			}
		}
	}

	return out
}
