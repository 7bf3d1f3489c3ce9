package domain

import "context"

// Geocoder resolves place names to coordinates and back. Implementations live
// in the adapter layer; the orchestrator substitutes documented fallbacks on
// any error, so failures here never reach the caller.
type Geocoder interface {
	// Forward converts a place name to a coordinate.
	Forward(ctx context.Context, name string) (Coordinate, error)

	// Reverse converts a coordinate to a human-readable display name.
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}
