package team

// Team is keyed by the source site's numeric id. The name is filled
// opportunistically; the first writer wins unless an overwrite pass runs.
type Team struct {
	ExternalID int64
	Name       string
}
