package go_geogrid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Point is one (x, y) sample of a metric-pair series.
type Point struct {
	X float64
	Y float64
}

// Series is an ordered metric-pair sequence plus the axis metadata a
// visualization consumer needs. Skipped counts cells excluded because their
// metric pair could not be computed.
type Series struct {
	Title   string
	XLabel  string
	YLabel  string
	Points  []Point
	Skipped int
}

// PairFunc extracts one (x, y) metric pair from a cell. Returning an error
// excludes the cell from the series without aborting the aggregation.
type PairFunc[T any] func(*Cell[T]) (x float64, y float64, err error)

// CollectPairs applies pair to each cell in input order, skipping and
// counting the cells whose extraction fails.
func CollectPairs[T any](cells []*Cell[T], pair PairFunc[T]) ([]Point, int) {
	points := make([]Point, 0, len(cells))
	skipped := 0
	for _, cell := range cells {
		x, y, err := pair(cell)
		if err != nil {
			skipped++
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, skipped
}

// DensityVsAverage produces one (density, mean attribute) point per cell in
// input order. Cells without a defined density are skipped and counted in
// Series.Skipped rather than failing the whole aggregation.
func DensityVsAverage[T any](cells []*Cell[T], attribute string) Series {
	points, skipped := CollectPairs(cells, func(cell *Cell[T]) (float64, float64, error) {
		density, err := cell.Density()
		if err != nil {
			return 0, 0, err
		}
		return density, cell.AverageOf(attribute), nil
	})
	return Series{
		Title:   fmt.Sprintf("density vs mean %s", attribute),
		XLabel:  "population density (1/km²)",
		YLabel:  fmt.Sprintf("mean %s", attribute),
		Points:  points,
		Skipped: skipped,
	}
}

// BucketedMeans produces one point per integer bucket in
// [minBucket, maxBucket]: X is the bucket and Y the mean of valueAttribute
// over every entity, across all cells, whose floored bucketAttribute equals
// the bucket. Empty buckets yield 0. Entities missing the bucket attribute
// are ignored, since defaulting them would silently pile into bucket 0.
func BucketedMeans[T any](cells []*Cell[T], bucketAttribute, valueAttribute string, minBucket, maxBucket int) Series {
	series := Series{
		Title:  fmt.Sprintf("mean %s by %s", valueAttribute, bucketAttribute),
		XLabel: bucketAttribute,
		YLabel: fmt.Sprintf("mean %s", valueAttribute),
	}
	if maxBucket < minBucket {
		return series
	}
	buckets := make([][]float64, maxBucket-minBucket+1)
	for _, cell := range cells {
		for _, entity := range cell.Members() {
			raw, ok := entity.Attribute(bucketAttribute)
			if !ok {
				continue
			}
			bucket := int(math.Floor(raw))
			if bucket < minBucket || bucket > maxBucket {
				continue
			}
			buckets[bucket-minBucket] = append(buckets[bucket-minBucket], entity.AttributeOr(valueAttribute, 0))
		}
	}
	series.Points = make([]Point, 0, len(buckets))
	for i, values := range buckets {
		mean := 0.0
		if len(values) > 0 {
			mean = stat.Mean(values, nil)
		}
		series.Points = append(series.Points, Point{X: float64(minBucket + i), Y: mean})
	}
	return series
}
