package go_geogrid

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func RandLat(r *rand.Rand) float64 {
	return -90 + r.Float64()*180
}
func RandLong(r *rand.Rand) float64 {
	return -180 + r.Float64()*360
}

func Test_NewGrid_Success(t *testing.T) {
	grid, err := NewGrid[int](1, 1)
	assert.NoError(t, err)
	assert.NotNil(t, grid)
	assert.Equal(t, 360, grid.longBins)
	assert.Equal(t, 180, grid.latBins)
	assert.Equal(t, 360*180, grid.CellCount())
}

func Test_NewGrid_InvalidResolution(t *testing.T) {
	for _, size := range [][2]float64{{0, 1}, {1, 0}, {0, 0}, {-1, 1}, {1, -0.5}} {
		grid, err := NewGrid[int](size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidResolution)
		assert.Nil(t, grid)
	}
}

func Test_NewGrid_UnevenResolution(t *testing.T) {
	// 7 degrees does not divide either extent; the last row/column overshoots
	// the maximum so the tiling still covers it.
	grid, err := NewGrid[int](7, 7)
	assert.NoError(t, err)
	assert.Equal(t, 52, grid.longBins)
	assert.Equal(t, 26, grid.latBins)

	cell, err := grid.Find(89.9, 179.9)
	assert.NoError(t, err)
	assert.True(t, cell.Contains(89.9, 179.9))
}

func Test_Grid_Find_MatchesContains(t *testing.T) {
	grid, err := NewGrid[int](1, 1)
	assert.NoError(t, err)
	r := rand.New(rand.NewSource(1))

	for range 10_000 {
		lat, long := RandLat(r), RandLong(r)
		cell, err := grid.Find(lat, long)
		assert.NoError(t, err)
		assert.True(t, cell.Contains(lat, long), "lat: %f, long: %f", lat, long)
	}
}

func Test_Grid_Find_OutOfRange(t *testing.T) {
	grid, err := NewGrid[int](1, 1)
	assert.NoError(t, err)

	for _, point := range [][2]float64{{90, 0}, {-90.5, 0}, {0, 180}, {0, -180.5}, {91, 181}} {
		cell, err := grid.Find(point[0], point[1])
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Nil(t, cell)
	}

	// The minima are inside the half-open extent, the maxima are not.
	_, err = grid.Find(-90, -180)
	assert.NoError(t, err)
	_, err = grid.Find(89.999, 179.999)
	assert.NoError(t, err)
}

func Test_Grid_Find_ExtentExtremes(t *testing.T) {
	grid, err := NewGrid[int](1, 1)
	assert.NoError(t, err)

	// The largest representable coordinates below the maxima: subtracting the
	// minimum rounds up to the full extent, which must still bin into the
	// last row/column, not past it.
	lat := math.Nextafter(MaxLatitude, 0)
	long := math.Nextafter(MaxLongitude, 0)

	cell, err := grid.Find(lat, 0)
	assert.NoError(t, err)
	assert.True(t, cell.Contains(lat, 0))
	assert.Equal(t, Coordinate{Latitude: 89, Longitude: 0}, cell.LowCorner())

	cell, err = grid.Find(0, long)
	assert.NoError(t, err)
	assert.True(t, cell.Contains(0, long))
	assert.Equal(t, Coordinate{Latitude: 0, Longitude: 179}, cell.LowCorner())

	cell, err = grid.Find(lat, long)
	assert.NoError(t, err)
	assert.True(t, cell.Contains(lat, long))
	assert.Equal(t, Coordinate{Latitude: 89, Longitude: 179}, cell.LowCorner())
}

func Test_Grid_Find_SharedEdge(t *testing.T) {
	grid, err := NewGrid[int](1, 1)
	assert.NoError(t, err)

	// A coordinate exactly on a shared edge bins into the higher cell only.
	cell, err := grid.Find(48, 2)
	assert.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 48, Longitude: 2}, cell.LowCorner())
	assert.Equal(t, Coordinate{Latitude: 49, Longitude: 3}, cell.HighCorner())

	below, err := grid.Find(47.5, 2.5)
	assert.NoError(t, err)
	assert.False(t, below.Contains(48, 2))

	left, err := grid.Find(48.5, 1.5)
	assert.NoError(t, err)
	assert.False(t, left.Contains(48, 2))
}

func Test_Grid_BuildIdempotent(t *testing.T) {
	grid, err := NewGrid[int](1, 1)
	assert.NoError(t, err)

	count := grid.CellCount()
	samples := make([]*Cell[int], 0, 100)
	r := rand.New(rand.NewSource(1))
	coords := make([][2]float64, 0, 100)
	for range 100 {
		lat, long := RandLat(r), RandLong(r)
		coords = append(coords, [2]float64{lat, long})
		cell, err := grid.Find(lat, long)
		assert.NoError(t, err)
		samples = append(samples, cell)
	}

	// A second pass over the same grid must observe the same cells.
	assert.Equal(t, count, grid.CellCount())
	for i, coord := range coords {
		cell, err := grid.Find(coord[0], coord[1])
		assert.NoError(t, err)
		assert.Same(t, samples[i], cell)
	}
}

func Test_Grid_Add(t *testing.T) {
	grid, err := NewGrid[string](1, 1)
	assert.NoError(t, err)

	cell, err := grid.Add("p1", "alice", 48.5, 2.5, map[string]float64{"age": 30})
	assert.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 48, Longitude: 2}, cell.LowCorner())
	assert.Equal(t, Coordinate{Latitude: 49, Longitude: 3}, cell.HighCorner())
	assert.Equal(t, 1, cell.Population())

	// Every other cell is untouched.
	occupied := 0
	for _, c := range grid.Cells() {
		if c.Population() > 0 {
			occupied++
			assert.Same(t, cell, c)
		}
	}
	assert.Equal(t, 1, occupied)
	assert.Equal(t, 1, grid.Population())
}

func Test_Grid_Add_OutOfRange(t *testing.T) {
	grid := NewDefaultGrid[int]()

	cell, err := grid.Add("p1", 1, 90, 0, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Nil(t, cell)
	assert.Equal(t, 0, grid.Population())
}

func Test_Grid_HalfDegreeResolution(t *testing.T) {
	grid, err := NewGrid[int](0.5, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, 720*360, grid.CellCount())

	cell, err := grid.Find(48.75, 2.25)
	assert.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 48.5, Longitude: 2}, cell.LowCorner())
	assert.Equal(t, Coordinate{Latitude: 49, Longitude: 2.5}, cell.HighCorner())
}
