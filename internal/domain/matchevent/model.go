package matchevent

type Type string

const (
	TypeGoal         Type = "goal"
	TypeOwnGoal      Type = "own_goal"
	TypePenalty      Type = "penalty"
	TypeYellow       Type = "yellow"
	TypeSecondYellow Type = "second_yellow"
	TypeRed          Type = "red"
	TypeSubstitution Type = "substitution"
	TypeUnknown      Type = "unknown"
)

// Event is one row of a match timeline. Sequence is assigned after a
// stable sort by (minute, stoppage, team, type), so re-parsing the same
// page always yields the same (match, sequence) key.
type Event struct {
	MatchID       int64
	Sequence      int
	Minute        int
	Stoppage      *int
	Type          Type
	TeamID        *int64
	PlayerID      *int64
	PlayerName    string
	InPlayerID    *int64
	InPlayerName  string
	OutPlayerID   *int64
	OutPlayerName string
	Notes         string
	Raw           string
}
