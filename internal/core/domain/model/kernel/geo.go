package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0

	// kmPerDegreeLat approximates the length of one degree of latitude.
	kmPerDegreeLat = 111.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via the NewGeoPoint constructor.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position as a latitude/longitude pair in degrees.
// GeoPoint is an immutable value object; the zero value is invalid and represents a
// missing coordinate. Distance computations involving an unconstructed point yield an
// infinite distance rather than an error, so a single bad record never matches
// anything but also never aborts a whole pass.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Point: %s", point) // Output: GeoPoint(40.712800,-74.006000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180] degrees.
// NaN coordinates are rejected.
//
// Returns:
//   - GeoPoint: A valid geographic point
//   - error: Validation error if either coordinate is out of bounds
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using NewGeoPoint.
// The zero value of GeoPoint is invalid and fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation in the form "GeoPoint(lat,lon)".
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p == other, nil
}

// DistanceKm calculates the great-circle distance to another point in kilometers
// using the haversine formula with a 6371 km Earth radius.
//
// The computation is symmetric: a.DistanceKm(b) == b.DistanceKm(a).
//
// If either point was not properly constructed (missing coordinates), the result is
// +Inf. Callers treat an infinite distance as "never matches", which keeps malformed
// records out of clustering and matching decisions without raising a fault.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	if p.Validate() != nil || other.Validate() != nil {
		return math.Inf(1)
	}

	lat1 := radians(p.latitude)
	lat2 := radians(other.latitude)
	dLat := radians(other.latitude - p.latitude)
	dLon := radians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// setLatitude sets the latitude with validation.
// Note: pointer receiver for self-encapsulated validation during construction,
// consistent with the other value objects in this package.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

// BoundingBox is an axis-aligned latitude/longitude rectangle used as a cheap
// pre-filter for indexable range queries over stored coordinates.
//
// The box is built with the flat-grid approximation (111 km per degree of latitude,
// scaled by cos(latitude) for longitude) and is therefore a superset of the true
// circle of the given radius: every point within radiusKm of the center falls inside
// the box, but the box also contains points slightly beyond the radius. Callers that
// need exactness must apply a haversine check to the candidate set afterwards.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// NewBoundingBox computes the bounding rectangle around a center point for the given
// radius in kilometers. The center must be a properly constructed GeoPoint and the
// radius must be positive.
func NewBoundingBox(center GeoPoint, radiusKm float64) (BoundingBox, error) {
	if err := center.Validate(); err != nil {
		return BoundingBox{}, err
	}
	if radiusKm <= 0 || math.IsNaN(radiusKm) {
		return BoundingBox{}, errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%f is not greater than 0", radiusKm))
	}

	latDelta := radiusKm / kmPerDegreeLat
	lonDelta := radiusKm / (kmPerDegreeLat * math.Cos(radians(center.Latitude())))

	return BoundingBox{
		MinLat: center.Latitude() - latDelta,
		MaxLat: center.Latitude() + latDelta,
		MinLon: center.Longitude() - lonDelta,
		MaxLon: center.Longitude() + lonDelta,
	}, nil
}

// Contains reports whether the point lies inside the rectangle.
// An unconstructed point is never contained.
func (b BoundingBox) Contains(point GeoPoint) bool {
	if point.Validate() != nil {
		return false
	}

	return point.Latitude() >= b.MinLat && point.Latitude() <= b.MaxLat &&
		point.Longitude() >= b.MinLon && point.Longitude() <= b.MaxLon
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
