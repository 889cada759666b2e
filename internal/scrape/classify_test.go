package scrape

import (
	"testing"

	"github.com/solvik/vollur/internal/domain/competition"
)

func TestClassifyCompetition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wantSex  competition.Gender
		wantAge  competition.AgeCategory
		wantTier *int
	}{
		{"Besta deild karla", competition.GenderMale, competition.AgeAdult, intPtr(1)},
		{"Úrvalsdeild karla", competition.GenderMale, competition.AgeAdult, intPtr(1)},
		{"Lengjudeild karla", competition.GenderMale, competition.AgeAdult, intPtr(2)},
		{"2. deild karla", competition.GenderMale, competition.AgeAdult, intPtr(3)},
		{"4. deild karla", competition.GenderMale, competition.AgeAdult, intPtr(5)},
		{"Besta deild kvenna", competition.GenderFemale, competition.AgeAdult, nil},
		{"2. flokkur karla", competition.GenderMale, competition.AgeYouth, nil},
		{"U-19 kvenna", competition.GenderFemale, competition.AgeYouth, nil},
		{"Mjólkurbikarinn", "", competition.AgeAdult, nil},
	}

	for _, tc := range tests {
		got := ClassifyCompetition(45801, 2025, tc.name)
		if got.Gender != tc.wantSex {
			t.Fatalf("%q: gender = %q, want %q", tc.name, got.Gender, tc.wantSex)
		}
		if got.AgeCategory != tc.wantAge {
			t.Fatalf("%q: age = %q, want %q", tc.name, got.AgeCategory, tc.wantAge)
		}
		switch {
		case tc.wantTier == nil && got.Tier != nil:
			t.Fatalf("%q: unexpected tier %d", tc.name, *got.Tier)
		case tc.wantTier != nil && (got.Tier == nil || *got.Tier != *tc.wantTier):
			t.Fatalf("%q: tier = %v, want %d", tc.name, got.Tier, *tc.wantTier)
		}
		if got.ExternalID != 45801 || got.SeasonYear != 2025 {
			t.Fatalf("%q: key fields not carried: %+v", tc.name, got)
		}
	}
}

func intPtr(v int) *int { return &v }
