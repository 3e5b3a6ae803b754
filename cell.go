package go_geogrid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Cell is one rectangular bucket of the grid, bounded by two corner
// coordinates. It owns the entities located inside its bounds and exposes
// the statistics derived from them.
type Cell[T any] struct {
	lowCorner  Coordinate
	highCorner Coordinate
	members    []*Entity[T]
}

func NewCell[T any](lowCorner, highCorner Coordinate) *Cell[T] {
	return &Cell[T]{lowCorner: lowCorner, highCorner: highCorner}
}

// AddMember appends an entity to the cell. There is no uniqueness check: an
// entity added twice is counted twice.
func (c *Cell[T]) AddMember(entity *Entity[T]) {
	c.members = append(c.members, entity)
}

func (c *Cell[T]) Population() int {
	return len(c.members)
}

func (c *Cell[T]) Members() []*Entity[T] {
	return c.members
}

func (c *Cell[T]) LowCorner() Coordinate {
	return c.lowCorner
}

func (c *Cell[T]) HighCorner() Coordinate {
	return c.highCorner
}

// Center returns the midpoint of the cell.
func (c *Cell[T]) Center() Coordinate {
	return Coordinate{
		Latitude:  (c.lowCorner.Latitude + c.highCorner.Latitude) / 2,
		Longitude: (c.lowCorner.Longitude + c.highCorner.Longitude) / 2,
	}
}

// WidthKM is the east-west extent of the cell using the flat per-degree
// approximation.
func (c *Cell[T]) WidthKM() float64 {
	return math.Abs(c.highCorner.LongitudeRadians()-c.lowCorner.LongitudeRadians()) * EarthRadiusKM
}

// HeightKM is the north-south extent of the cell.
func (c *Cell[T]) HeightKM() float64 {
	return math.Abs(c.highCorner.LatitudeRadians()-c.lowCorner.LatitudeRadians()) * EarthRadiusKM
}

func (c *Cell[T]) AreaKM2() float64 {
	return c.WidthKM() * c.HeightKM()
}

// Density returns the population per square kilometer. A cell whose width or
// height collapsed to zero degrees has no density and reports ErrZeroArea
// instead of a silent infinity.
func (c *Cell[T]) Density() (float64, error) {
	area := c.AreaKM2()
	if area == 0 {
		return 0, fmt.Errorf("%w: cell (%f, %f)-(%f, %f)", ErrZeroArea,
			c.lowCorner.Latitude, c.lowCorner.Longitude, c.highCorner.Latitude, c.highCorner.Longitude)
	}
	return float64(c.Population()) / area, nil
}

// AverageOf returns the mean of the named attribute across the cell's
// members, 0 for an empty cell. Members missing the attribute contribute
// the zero default.
func (c *Cell[T]) AverageOf(name string) float64 {
	if len(c.members) == 0 {
		return 0
	}
	values := make([]float64, 0, len(c.members))
	for _, member := range c.members {
		values = append(values, member.AttributeOr(name, 0))
	}
	return stat.Mean(values, nil)
}

// Contains reports whether the coordinate lies inside the cell. The test is
// half-open on both axes (low edge inclusive, high edge exclusive) and uses
// the min/max of the stored corners, so every point of the tiling belongs to
// exactly one cell regardless of corner order.
func (c *Cell[T]) Contains(lat, long float64) bool {
	lowLat := math.Min(c.lowCorner.Latitude, c.highCorner.Latitude)
	highLat := math.Max(c.lowCorner.Latitude, c.highCorner.Latitude)
	lowLong := math.Min(c.lowCorner.Longitude, c.highCorner.Longitude)
	highLong := math.Max(c.lowCorner.Longitude, c.highCorner.Longitude)
	return lat >= lowLat && lat < highLat && long >= lowLong && long < highLong
}
