package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/solvik/vollur/internal/domain/competition"
	"github.com/solvik/vollur/internal/domain/lineup"
	"github.com/solvik/vollur/internal/domain/match"
	"github.com/solvik/vollur/internal/domain/matchevent"
	"github.com/solvik/vollur/internal/domain/player"
	"github.com/solvik/vollur/internal/domain/standing"
	"github.com/solvik/vollur/internal/domain/team"
)

// stubFetcher serves canned HTML by exact URL; unknown URLs fail like a
// transport error would.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *stubFetcher) FetchDocument(_ context.Context, pageURL string) (*goquery.Document, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pageURL)
	html, ok := f.pages[pageURL]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no page for %s", pageURL)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

type stubCompetitionRepo struct {
	byKey map[string]competition.Competition
}

func competitionKey(externalID int64, seasonYear int) string {
	return fmt.Sprintf("%d|%d", externalID, seasonYear)
}

func (r *stubCompetitionRepo) UpsertBatch(_ context.Context, items []competition.Competition) error {
	if r.byKey == nil {
		r.byKey = make(map[string]competition.Competition)
	}
	for _, item := range items {
		r.byKey[competitionKey(item.ExternalID, item.SeasonYear)] = item
	}
	return nil
}

func (r *stubCompetitionRepo) List(_ context.Context, seasonYear int) ([]competition.Competition, error) {
	var out []competition.Competition
	for _, c := range r.byKey {
		if c.SeasonYear == seasonYear {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *stubCompetitionRepo) GetByKey(_ context.Context, externalID int64, seasonYear int) (competition.Competition, bool, error) {
	c, ok := r.byKey[competitionKey(externalID, seasonYear)]
	return c, ok, nil
}

type stubMatchRepo struct {
	byID map[int64]match.Match
	err  error
}

func (r *stubMatchRepo) UpsertBatch(_ context.Context, items []match.Match) error {
	if r.err != nil {
		return r.err
	}
	if r.byID == nil {
		r.byID = make(map[int64]match.Match)
	}
	for _, item := range items {
		stored, ok := r.byID[item.ExternalID]
		if !ok {
			r.byID[item.ExternalID] = item
			continue
		}
		stored.CompetitionID = item.CompetitionID
		stored.SeasonYear = item.SeasonYear
		if item.KickoffAt != nil {
			stored.KickoffAt = item.KickoffAt
		}
		if item.Venue != "" {
			stored.Venue = item.Venue
		}
		if item.HomeTeamID != nil {
			stored.HomeTeamID = item.HomeTeamID
		}
		if item.AwayTeamID != nil {
			stored.AwayTeamID = item.AwayTeamID
		}
		if item.HomeScore != nil {
			stored.HomeScore = item.HomeScore
		}
		if item.AwayScore != nil {
			stored.AwayScore = item.AwayScore
		}
		r.byID[item.ExternalID] = stored
	}
	return nil
}

func (r *stubMatchRepo) GetByExternalID(_ context.Context, externalID int64) (match.Match, bool, error) {
	m, ok := r.byID[externalID]
	return m, ok, nil
}

func (r *stubMatchRepo) ListByCompetition(_ context.Context, competitionID int64, seasonYear int) ([]match.Match, error) {
	var out []match.Match
	for _, m := range r.byID {
		if m.CompetitionID == competitionID && m.SeasonYear == seasonYear {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *stubMatchRepo) ListByTeam(_ context.Context, teamID int64, seasonYear int) ([]match.Match, error) {
	var out []match.Match
	for _, m := range r.byID {
		if m.SeasonYear != seasonYear {
			continue
		}
		if (m.HomeTeamID != nil && *m.HomeTeamID == teamID) || (m.AwayTeamID != nil && *m.AwayTeamID == teamID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (r *stubMatchRepo) ListExternalIDs(_ context.Context, competitionID int64, seasonYear int) ([]int64, error) {
	var out []int64
	for _, m := range r.byID {
		if m.CompetitionID == competitionID && m.SeasonYear == seasonYear {
			out = append(out, m.ExternalID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type stubTeamRepo struct {
	byID map[int64]team.Team
}

func (r *stubTeamRepo) UpsertBatch(_ context.Context, items []team.Team, overwriteNames bool) error {
	if r.byID == nil {
		r.byID = make(map[int64]team.Team)
	}
	for _, item := range items {
		stored, ok := r.byID[item.ExternalID]
		if !ok {
			r.byID[item.ExternalID] = item
			continue
		}
		if overwriteNames && item.Name != "" {
			stored.Name = item.Name
		} else if stored.Name == "" {
			stored.Name = item.Name
		}
		r.byID[item.ExternalID] = stored
	}
	return nil
}

func (r *stubTeamRepo) GetByExternalID(_ context.Context, externalID int64) (team.Team, bool, error) {
	t, ok := r.byID[externalID]
	return t, ok, nil
}

func (r *stubTeamRepo) ListByExternalIDs(_ context.Context, externalIDs []int64) ([]team.Team, error) {
	var out []team.Team
	for _, id := range externalIDs {
		if t, ok := r.byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type stubPlayerRepo struct {
	byID map[int64]player.Player
}

func (r *stubPlayerRepo) UpsertBatch(_ context.Context, items []player.Player) error {
	if r.byID == nil {
		r.byID = make(map[int64]player.Player)
	}
	for _, item := range items {
		stored, ok := r.byID[item.ExternalID]
		if !ok {
			r.byID[item.ExternalID] = item
			continue
		}
		if stored.Name == "" {
			stored.Name = item.Name
			r.byID[item.ExternalID] = stored
		}
	}
	return nil
}

func (r *stubPlayerRepo) GetByExternalID(_ context.Context, externalID int64) (player.Player, bool, error) {
	p, ok := r.byID[externalID]
	return p, ok, nil
}

type stubLineupRepo struct {
	bySlot map[string]lineup.Entry
}

func lineupKey(e lineup.Entry) string {
	return fmt.Sprintf("%d|%s|%s|%d", e.MatchID, e.Side, e.Squad, e.SlotIndex)
}

func (r *stubLineupRepo) UpsertBatch(_ context.Context, items []lineup.Entry) error {
	if r.bySlot == nil {
		r.bySlot = make(map[string]lineup.Entry)
	}
	for _, item := range items {
		stored, ok := r.bySlot[lineupKey(item)]
		if ok {
			if item.MinuteIn == nil {
				item.MinuteIn = stored.MinuteIn
			}
			if item.MinuteOut == nil {
				item.MinuteOut = stored.MinuteOut
			}
		}
		r.bySlot[lineupKey(item)] = item
	}
	return nil
}

func (r *stubLineupRepo) ListByMatch(_ context.Context, matchID int64) ([]lineup.Entry, error) {
	var out []lineup.Entry
	for _, e := range r.bySlot {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotIndex < out[j].SlotIndex })
	return out, nil
}

func (r *stubLineupRepo) SetMinuteInIfNull(_ context.Context, matchID, playerID int64, minute int) error {
	for key, e := range r.bySlot {
		if e.MatchID == matchID && e.PlayerID != nil && *e.PlayerID == playerID && e.MinuteIn == nil {
			m := minute
			e.MinuteIn = &m
			r.bySlot[key] = e
		}
	}
	return nil
}

func (r *stubLineupRepo) SetMinuteOutIfNull(_ context.Context, matchID, playerID int64, minute int) error {
	for key, e := range r.bySlot {
		if e.MatchID == matchID && e.PlayerID != nil && *e.PlayerID == playerID && e.MinuteOut == nil {
			m := minute
			e.MinuteOut = &m
			r.bySlot[key] = e
		}
	}
	return nil
}

type stubEventRepo struct {
	byMatch  map[int64][]matchevent.Event
	replaces int
}

func (r *stubEventRepo) ReplaceByMatch(_ context.Context, matchID int64, items []matchevent.Event) error {
	if r.byMatch == nil {
		r.byMatch = make(map[int64][]matchevent.Event)
	}
	r.replaces++
	r.byMatch[matchID] = append([]matchevent.Event(nil), items...)
	return nil
}

func (r *stubEventRepo) ListByMatch(_ context.Context, matchID int64) ([]matchevent.Event, error) {
	return r.byMatch[matchID], nil
}

type stubStandingRepo struct {
	byTable  map[string][]standing.Row
	replaces int
}

func standingKey(competitionID int64, seasonYear, tableIndex int) string {
	return fmt.Sprintf("%d|%d|%d", competitionID, seasonYear, tableIndex)
}

func (r *stubStandingRepo) ReplaceTable(_ context.Context, competitionID int64, seasonYear, tableIndex int, rows []standing.Row) error {
	if r.byTable == nil {
		r.byTable = make(map[string][]standing.Row)
	}
	r.replaces++
	r.byTable[standingKey(competitionID, seasonYear, tableIndex)] = append([]standing.Row(nil), rows...)
	return nil
}

func (r *stubStandingRepo) ListByCompetition(_ context.Context, competitionID int64, seasonYear int) ([]standing.Row, error) {
	var keys []string
	for key := range r.byTable {
		if strings.HasPrefix(key, fmt.Sprintf("%d|%d|", competitionID, seasonYear)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	var out []standing.Row
	for _, key := range keys {
		out = append(out, r.byTable[key]...)
	}
	return out, nil
}
