package go_geogrid

import (
	"github.com/golang/geo/s2"
)

// Entity is a geolocated record: a key, an opaque payload, a coordinate and
// a set of named numeric attributes. Entities are immutable after creation
// and owned by exactly one cell once ingested.
type Entity[T any] struct {
	key   string
	value T
	coord Coordinate
	attrs map[string]float64
}

func NewEntity[T any](key string, value T, lat float64, long float64, attrs map[string]float64) *Entity[T] {
	return &Entity[T]{
		key:   key,
		value: value,
		coord: Coordinate{Latitude: lat, Longitude: long},
		attrs: attrs,
	}
}

func (e *Entity[T]) Key() string {
	return e.key
}

func (e *Entity[T]) Value() T {
	return e.value
}

func (e *Entity[T]) Coordinate() Coordinate {
	return e.coord
}

// Attribute returns the named numeric attribute and whether it is present.
func (e *Entity[T]) Attribute(name string) (float64, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// AttributeOr returns the named attribute, or def when it is absent.
func (e *Entity[T]) AttributeOr(name string, def float64) float64 {
	if v, ok := e.attrs[name]; ok {
		return v
	}
	return def
}

// DistanceKM returns the great-circle distance between the entity and the
// given coordinates in kilometers.
func (e *Entity[T]) DistanceKM(lat, long float64) float64 {
	return float64(s2.LatLngFromDegrees(lat, long).Distance(e.coord.LatLng())) * EarthRadiusKM
}
