package nav

import (
	"campus-nav-service/internal/domain"
	"time"
)

// Defaults tuned for pedestrian campus navigation. GPS noise on a phone
// is a few meters, so the reroute gate sits well above it and the watch
// gate well below it.
const (
	DefaultRerouteDistanceMeters = 20.0
	DefaultRerouteDebounce       = 2000 * time.Millisecond
	DefaultMaxRerouteAttempts    = 3
	DefaultAnnounceStagger       = 2000 * time.Millisecond
	DefaultArrivalDistanceMeters = 15.0
	DefaultWatchDistanceMeters   = 10.0
)

// Config carries everything a Session needs that the surrounding app
// would otherwise provide as ambient state.
type Config struct {
	Mode          domain.TravelMode
	VoiceGuidance bool

	// Reroute policy tuning.
	RerouteDistanceMeters float64
	RerouteDebounce       time.Duration
	MaxRerouteAttempts    int

	// Spoken-instruction stagger.
	AnnounceStagger time.Duration

	// Arrival detection and location watch gating.
	ArrivalDistanceMeters float64
	WatchDistanceMeters   float64
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = domain.ModeFoot
	}
	if c.RerouteDistanceMeters <= 0 {
		c.RerouteDistanceMeters = DefaultRerouteDistanceMeters
	}
	if c.RerouteDebounce <= 0 {
		c.RerouteDebounce = DefaultRerouteDebounce
	}
	if c.MaxRerouteAttempts <= 0 {
		c.MaxRerouteAttempts = DefaultMaxRerouteAttempts
	}
	if c.AnnounceStagger <= 0 {
		c.AnnounceStagger = DefaultAnnounceStagger
	}
	if c.ArrivalDistanceMeters <= 0 {
		c.ArrivalDistanceMeters = DefaultArrivalDistanceMeters
	}
	if c.WatchDistanceMeters <= 0 {
		c.WatchDistanceMeters = DefaultWatchDistanceMeters
	}
	return c
}
