package go_geogrid

import (
	"github.com/golang/geo/s2"
)

// Coordinate is a geographic point in degrees. It is a pure value type:
// radian values are derived on read and never cached.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// LatLng converts the coordinate to an s2.LatLng.
func (c Coordinate) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Latitude, c.Longitude)
}

func (c Coordinate) LatitudeRadians() float64 {
	return c.LatLng().Lat.Radians()
}

func (c Coordinate) LongitudeRadians() float64 {
	return c.LatLng().Lng.Radians()
}
