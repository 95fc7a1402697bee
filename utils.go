package geodome

import (
	"math"

	"github.com/soypat/geodome/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Precision is the number of decimal places every generated
	// coordinate is rounded to. Coordinates that are mathematically
	// zero come out as exactly 0.
	Precision = 10
)

const (
	pi        = math.Pi
	tau       = 2 * pi
	tolerance = 1e-9
)

// pentagonAltitude is the elevation of the icosahedron's upper pentagon
// above the equator.
var pentagonAltitude = math.Atan(0.5)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// Round rounds x to the given number of decimal places.
// Negative zero is returned as positive zero.
func Round(x float64, places int) float64 {
	return d3.Round(x, places)
}

// SphericalToCartesian converts spherical coordinates to a point.
// Altitude is measured from the XY plane in the range [-pi/2, pi/2] and
// azimuth is measured from the +Y axis towards +X in the range [0, 2pi).
// Each resulting component is rounded to Precision decimal places.
func SphericalToCartesian(radius, altitude, azimuth float64) r3.Vec {
	sinAlt, cosAlt := math.Sincos(altitude)
	sinAz, cosAz := math.Sincos(azimuth)
	return d3.RoundElem(r3.Vec{
		X: radius * cosAlt * sinAz,
		Y: radius * cosAlt * cosAz,
		Z: radius * sinAlt,
	}, Precision)
}

func validRadius(radius float64) bool {
	return radius > 0 && !math.IsInf(radius, 1)
}
