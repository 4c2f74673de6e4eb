package domain

// One discrete turn-by-turn step of a route, in the exact order returned
// by the routing backend. The sequence is never reordered or deduplicated.
type Instruction struct {
	Text            string
	DistanceMeters  float64
	DurationSeconds float64
}

// Represents a navigable path between two coordinates.
// A Route is the output of a single route fetch and is immutable planning
// data: a replacement route is a new value, never an in-place mutation.
type Route struct {
	Polyline        []Coordinate
	DistanceMeters  float64
	DurationSeconds float64
	Instructions    []Instruction
}
