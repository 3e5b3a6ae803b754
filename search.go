package go_geogrid

import (
	"context"

	"github.com/golang/geo/s2"
	"github.com/oleiade/lane/v2"
)

// SearchNearest streams entities roughly nearest-first to the given
// coordinates. The callback is called once per entity and stops the search
// by returning true; the search also stops when the context is canceled.
//
// Occupied cells are visited in order of center distance and their entities
// re-queued by exact distance, so ordering is approximate across cell
// boundaries but exact within each cell's batch.
func (g *Grid[T]) SearchNearest(ctx context.Context, lat float64, long float64, callback func(*Entity[T]) bool) {
	g.ensureBuilt()
	point := s2.LatLngFromDegrees(lat, long)
	queue := lane.NewMinPriorityQueue[interface{}, float64]()
	for _, cell := range g.cells {
		if cell.Population() == 0 {
			continue
		}
		queue.Push(cell, float64(point.Distance(cell.Center().LatLng())))
	}
	for {
		if ctx.Err() != nil {
			return
		}
		popped, _, ok := queue.Pop()
		if !ok {
			return
		}
		switch item := popped.(type) {
		case *Cell[T]:
			for _, entity := range item.Members() {
				queue.Push(entity, float64(point.Distance(entity.Coordinate().LatLng())))
			}
		case *Entity[T]:
			if callback(item) {
				return
			}
		}
	}
}
