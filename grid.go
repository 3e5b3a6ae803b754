package go_geogrid

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

const (
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinLatitude  = -90.0
	MaxLatitude  = 90.0

	DefaultCellWidthDegrees  = 1.0
	DefaultCellHeightDegrees = 1.0

	EarthRadiusKM = 6371.0
)

var (
	// ErrInvalidResolution reports a non-positive cell width or height.
	ErrInvalidResolution = errors.New("invalid resolution")
	// ErrOutOfRange reports a coordinate outside the covered extent.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrZeroArea reports a density request on a cell with no area.
	ErrZeroArea = errors.New("zero-area cell")
	// ErrIndexMismatch reports a lookup whose bin arithmetic disagrees with
	// the returned cell's bounds. It indicates a binning bug, not a bad input.
	ErrIndexMismatch = errors.New("index mismatch")
)

// Grid tiles [MinLongitude, MaxLongitude) x [MinLatitude, MaxLatitude) with
// fixed-size cells stored in row-major order (latitude rows, longitude
// columns). The cells are built lazily on first use and exactly once; after
// that the grid is read-only apart from appending members to cells.
type Grid[T any] struct {
	cellWidth  float64
	cellHeight float64
	longBins   int
	latBins    int

	buildOnce sync.Once
	cells     []*Cell[T]
}

// NewGrid creates a grid at the given cell resolution in degrees. Both
// dimensions must be positive. When the extent is not evenly divisible by
// the cell size, the last row/column overshoots the maximum so the tiling
// still covers the full extent.
func NewGrid[T any](cellWidth, cellHeight float64) (*Grid[T], error) {
	if cellWidth <= 0 || cellHeight <= 0 {
		return nil, fmt.Errorf("%w: cell size %fx%f degrees, both dimensions must be positive", ErrInvalidResolution, cellWidth, cellHeight)
	}
	return &Grid[T]{
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		longBins:   int(math.Ceil((MaxLongitude - MinLongitude) / cellWidth)),
		latBins:    int(math.Ceil((MaxLatitude - MinLatitude) / cellHeight)),
	}, nil
}

// NewDefaultGrid creates a grid at the default 1x1 degree resolution.
func NewDefaultGrid[T any]() *Grid[T] {
	g, _ := NewGrid[T](DefaultCellWidthDegrees, DefaultCellHeightDegrees)
	return g
}

// ensureBuilt constructs every cell of the tiling on the first call and is a
// no-op afterwards. The append order (latitude outer, longitude inner) fixes
// the flat index used by Find.
func (g *Grid[T]) ensureBuilt() {
	g.buildOnce.Do(func() {
		g.cells = make([]*Cell[T], 0, g.latBins*g.longBins)
		for latBin := 0; latBin < g.latBins; latBin++ {
			for longBin := 0; longBin < g.longBins; longBin++ {
				low := Coordinate{
					Latitude:  MinLatitude + float64(latBin)*g.cellHeight,
					Longitude: MinLongitude + float64(longBin)*g.cellWidth,
				}
				high := Coordinate{
					Latitude:  low.Latitude + g.cellHeight,
					Longitude: low.Longitude + g.cellWidth,
				}
				g.cells = append(g.cells, NewCell[T](low, high))
			}
		}
	})
}

// Find returns the cell covering the coordinate in constant time. A
// coordinate exactly on a shared edge bins into the higher cell, matching
// the half-open containment test.
func (g *Grid[T]) Find(lat float64, long float64) (*Cell[T], error) {
	if lat < MinLatitude || lat >= MaxLatitude || long < MinLongitude || long >= MaxLongitude {
		return nil, fmt.Errorf("%w: latitude %f (min %v, max %v exclusive), longitude %f (min %v, max %v exclusive)",
			ErrOutOfRange, lat, MinLatitude, MaxLatitude, long, MinLongitude, MaxLongitude)
	}
	g.ensureBuilt()
	// Just below a maximum, the subtraction can round up to the full extent
	// and floor into a bin past the last one. The range guard already proved
	// the coordinate belongs to the last bin, so clamp.
	latBin := int(math.Floor((lat - MinLatitude) / g.cellHeight))
	if latBin >= g.latBins {
		latBin = g.latBins - 1
	}
	longBin := int(math.Floor((long - MinLongitude) / g.cellWidth))
	if longBin >= g.longBins {
		longBin = g.longBins - 1
	}
	cell := g.cells[latBin*g.longBins+longBin]
	if !cell.Contains(lat, long) {
		return nil, fmt.Errorf("%w: (%f, %f) binned to (%d, %d) but the cell bounds disagree", ErrIndexMismatch, lat, long, latBin, longBin)
	}
	return cell, nil
}

// Add ingests one entity: it finds the owning cell and appends the entity to
// it. This is the single-ownership path used by the ingestion boundary.
func (g *Grid[T]) Add(key string, value T, lat float64, long float64, attrs map[string]float64) (*Cell[T], error) {
	cell, err := g.Find(lat, long)
	if err != nil {
		return nil, err
	}
	cell.AddMember(NewEntity(key, value, lat, long, attrs))
	return cell, nil
}

// Cells returns every cell of the tiling in row-major order, building the
// grid if needed.
func (g *Grid[T]) Cells() []*Cell[T] {
	g.ensureBuilt()
	return g.cells
}

func (g *Grid[T]) CellCount() int {
	g.ensureBuilt()
	return len(g.cells)
}

// Population returns the number of ingested entities across all cells.
func (g *Grid[T]) Population() int {
	g.ensureBuilt()
	total := 0
	for _, cell := range g.cells {
		total += cell.Population()
	}
	return total
}
