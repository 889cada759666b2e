package player

// Player is keyed by the source site's numeric id, first seen via a
// profile link on a lineup grid.
type Player struct {
	ExternalID int64
	Name       string
}
