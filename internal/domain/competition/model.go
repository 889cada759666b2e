package competition

// Competition is one competition instance within a season, keyed by the
// source site's numeric id plus the season year (ids are reused across
// seasons).
type Competition struct {
	ExternalID       int64
	SeasonYear       int
	Name             string
	Gender           Gender
	AgeCategory      AgeCategory
	Tier             *int
	ParentExternalID *int64
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type AgeCategory string

const (
	AgeAdult AgeCategory = "adult"
	AgeYouth AgeCategory = "youth"
)
