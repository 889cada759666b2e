package lineup

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

type Squad string

const (
	SquadStart Squad = "start"
	SquadBench Squad = "bench"
)

// Entry is one roster row of a match report. SlotIndex is a single
// running counter across home-start, away-start, home-bench, away-bench,
// preserving source document order; (match, side, squad, slot) is the
// upsert key.
type Entry struct {
	MatchID     int64
	Side        Side
	Squad       Squad
	SlotIndex   int
	TeamID      int64
	PlayerID    *int64
	Name        string
	ShirtNumber *int
	Goalkeeper  bool
	MinuteIn    *int
	MinuteOut   *int
}
