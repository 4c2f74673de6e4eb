package domain

// A point of interest on campus, produced by the place search collaborator
// and consumed as a navigation destination.
type Place struct {
	PlaceID     int
	Name        string
	Category    string
	Coordinate  Coordinate
	Description string
	ImageURL    string
}
