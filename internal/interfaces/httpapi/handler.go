package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/solvik/vollur/internal/domain/competition"
	"github.com/solvik/vollur/internal/domain/lineup"
	"github.com/solvik/vollur/internal/domain/match"
	"github.com/solvik/vollur/internal/domain/matchevent"
	"github.com/solvik/vollur/internal/domain/standing"
	"github.com/solvik/vollur/internal/platform/logging"
	"github.com/solvik/vollur/internal/usecase"
)

type Handler struct {
	analysisService *usecase.AnalysisService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(analysisService *usecase.AnalysisService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		analysisService: analysisService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type seasonQuery struct {
	Season int `validate:"required,gte=1990,lte=2100"`
}

// seasonFromRequest reads the ?season= query parameter, defaulting to
// the current year when absent.
func (h *Handler) seasonFromRequest(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("season"))
	season := time.Now().Year()
	if raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid season %q", usecase.ErrInvalidInput, raw)
		}
		season = parsed
	}

	if err := h.validator.StructCtx(r.Context(), seasonQuery{Season: season}); err != nil {
		return 0, fmt.Errorf("%w: season out of range", usecase.ErrInvalidInput)
	}
	return season, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

type competitionDTO struct {
	ID          int64  `json:"id"`
	SeasonYear  int    `json:"seasonYear"`
	Name        string `json:"name"`
	Gender      string `json:"gender,omitempty"`
	AgeCategory string `json:"ageCategory,omitempty"`
	Tier        *int   `json:"tier,omitempty"`
	ParentID    *int64 `json:"parentId,omitempty"`
}

func toCompetitionDTO(c competition.Competition) competitionDTO {
	return competitionDTO{
		ID:          c.ExternalID,
		SeasonYear:  c.SeasonYear,
		Name:        c.Name,
		Gender:      string(c.Gender),
		AgeCategory: string(c.AgeCategory),
		Tier:        c.Tier,
		ParentID:    c.ParentExternalID,
	}
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	season, err := h.seasonFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	competitions, err := h.analysisService.ListCompetitions(ctx, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list competitions failed", "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(competitions))
	for _, c := range competitions {
		items = append(items, toCompetitionDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

type standingRowDTO struct {
	TableIndex     int    `json:"tableIndex"`
	Position       *int   `json:"position,omitempty"`
	TeamID         *int64 `json:"teamId,omitempty"`
	TeamName       string `json:"teamName"`
	Played         *int   `json:"played,omitempty"`
	Wins           *int   `json:"wins,omitempty"`
	Draws          *int   `json:"draws,omitempty"`
	Losses         *int   `json:"losses,omitempty"`
	GoalsFor       *int   `json:"goalsFor,omitempty"`
	GoalsAgainst   *int   `json:"goalsAgainst,omitempty"`
	GoalDifference *int   `json:"goalDifference,omitempty"`
	Points         *int   `json:"points,omitempty"`
}

func toStandingRowDTO(row standing.Row) standingRowDTO {
	return standingRowDTO{
		TableIndex:     row.TableIndex,
		Position:       row.Position,
		TeamID:         row.TeamID,
		TeamName:       row.TeamName,
		Played:         row.Played,
		Wins:           row.Wins,
		Draws:          row.Draws,
		Losses:         row.Losses,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
	}
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	competitionID, err := pathID(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := h.seasonFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.analysisService.GetStandings(ctx, competitionID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "competition_id", competitionID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toStandingRowDTO(row))
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

type matchDTO struct {
	ID            int64      `json:"id"`
	CompetitionID int64      `json:"competitionId"`
	SeasonYear    int        `json:"seasonYear"`
	KickoffAt     *time.Time `json:"kickoffAt,omitempty"`
	Venue         string     `json:"venue,omitempty"`
	HomeTeamID    *int64     `json:"homeTeamId,omitempty"`
	AwayTeamID    *int64     `json:"awayTeamId,omitempty"`
	HomeScore     *int       `json:"homeScore,omitempty"`
	AwayScore     *int       `json:"awayScore,omitempty"`
}

func toMatchDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:            m.ExternalID,
		CompetitionID: m.CompetitionID,
		SeasonYear:    m.SeasonYear,
		KickoffAt:     m.KickoffAt,
		Venue:         m.Venue,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		HomeScore:     m.HomeScore,
		AwayScore:     m.AwayScore,
	}
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	competitionID, err := pathID(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := h.seasonFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.analysisService.ListMatches(ctx, competitionID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "competition_id", competitionID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, toMatchDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": items})
}

type teamSummaryDTO struct {
	TeamID       int64  `json:"teamId"`
	TeamName     string `json:"teamName"`
	SeasonYear   int    `json:"seasonYear"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Form         string `json:"form"`
}

func (h *Handler) GetTeamSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSummary")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := h.seasonFromRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.analysisService.GetTeamSummary(ctx, teamID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get team summary failed", "team_id", teamID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamSummaryDTO{
		TeamID:       summary.Team.ExternalID,
		TeamName:     summary.Team.Name,
		SeasonYear:   summary.SeasonYear,
		Played:       summary.Played,
		Wins:         summary.Wins,
		Draws:        summary.Draws,
		Losses:       summary.Losses,
		GoalsFor:     summary.GoalsFor,
		GoalsAgainst: summary.GoalsAgainst,
		Form:         summary.Form,
	})
}

type lineupEntryDTO struct {
	Side        string `json:"side"`
	Squad       string `json:"squad"`
	SlotIndex   int    `json:"slotIndex"`
	TeamID      int64  `json:"teamId"`
	PlayerID    *int64 `json:"playerId,omitempty"`
	Name        string `json:"name"`
	ShirtNumber *int   `json:"shirtNumber,omitempty"`
	Goalkeeper  bool   `json:"goalkeeper"`
	MinuteIn    *int   `json:"minuteIn,omitempty"`
	MinuteOut   *int   `json:"minuteOut,omitempty"`
}

func toLineupEntryDTO(e lineup.Entry) lineupEntryDTO {
	return lineupEntryDTO{
		Side:        string(e.Side),
		Squad:       string(e.Squad),
		SlotIndex:   e.SlotIndex,
		TeamID:      e.TeamID,
		PlayerID:    e.PlayerID,
		Name:        e.Name,
		ShirtNumber: e.ShirtNumber,
		Goalkeeper:  e.Goalkeeper,
		MinuteIn:    e.MinuteIn,
		MinuteOut:   e.MinuteOut,
	}
}

type eventDTO struct {
	Sequence      int    `json:"sequence"`
	Minute        int    `json:"minute"`
	Stoppage      *int   `json:"stoppage,omitempty"`
	Type          string `json:"type"`
	TeamID        *int64 `json:"teamId,omitempty"`
	PlayerID      *int64 `json:"playerId,omitempty"`
	PlayerName    string `json:"playerName,omitempty"`
	InPlayerID    *int64 `json:"inPlayerId,omitempty"`
	InPlayerName  string `json:"inPlayerName,omitempty"`
	OutPlayerID   *int64 `json:"outPlayerId,omitempty"`
	OutPlayerName string `json:"outPlayerName,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

func toEventDTO(e matchevent.Event) eventDTO {
	return eventDTO{
		Sequence:      e.Sequence,
		Minute:        e.Minute,
		Stoppage:      e.Stoppage,
		Type:          string(e.Type),
		TeamID:        e.TeamID,
		PlayerID:      e.PlayerID,
		PlayerName:    e.PlayerName,
		InPlayerID:    e.InPlayerID,
		InPlayerName:  e.InPlayerName,
		OutPlayerID:   e.OutPlayerID,
		OutPlayerName: e.OutPlayerName,
		Notes:         e.Notes,
	}
}

type matchAnalysisDTO struct {
	Match  matchDTO         `json:"match"`
	Lineup []lineupEntryDTO `json:"lineup"`
	Events []eventDTO       `json:"events"`
}

func (h *Handler) GetMatchAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchAnalysis")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.analysisService.GetMatchAnalysis(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match analysis failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := matchAnalysisDTO{
		Match:  toMatchDTO(analysis.Match),
		Lineup: make([]lineupEntryDTO, 0, len(analysis.Lineup)),
		Events: make([]eventDTO, 0, len(analysis.Events)),
	}
	for _, e := range analysis.Lineup {
		dto.Lineup = append(dto.Lineup, toLineupEntryDTO(e))
	}
	for _, e := range analysis.Events {
		dto.Events = append(dto.Events, toEventDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}
