package geo

// Point is a latitude/longitude pair attached to a player at response time.
type Point struct {
	Lat float64
	Lng float64
}

// Result is what a geocoding lookup produced. A failed lookup still carries
// a usable Point: the zero coordinate.
type Result struct {
	Point Point
	OK    bool
	Err   error
}

// Found wraps a successful lookup.
func Found(p Point) Result {
	return Result{Point: p, OK: true}
}

// Fallback wraps a failed or empty lookup; err may be nil for empty results.
func Fallback(err error) Result {
	return Result{Err: err}
}
