package domain

import "fmt"

// Mode of transport parameterizing a routing request.
// The string values are the wire values expected by the routing backend.
type TravelMode string

const (
	ModeFoot TravelMode = "foot"
	ModeBike TravelMode = "bike"
	ModeCar  TravelMode = "car"
)

// ParseTravelMode validates a mode string received from a client.
func ParseTravelMode(s string) (TravelMode, error) {
	switch TravelMode(s) {
	case ModeFoot, ModeBike, ModeCar:
		return TravelMode(s), nil
	}
	return "", fmt.Errorf("invalid travel mode %q (want foot, bike or car)", s)
}
