package geogrid

import (
	"runtime"
	"sort"
	"sync"
)

// BuildGrid computes, for every item, the set of one-degree cells its
// geometry intersects (a bounding-box reject followed by the exact
// polygon/rectangle test), and returns the dense CellCount-length
// candidate-list array (spec §4.4). Each column of longitude is handled
// independently by a worker pool, mirroring the source model's per-column
// parallel sweep; a sync.Map of per-cell, mutex-guarded buckets collects
// partial results before the final flatten into a dense slice.
func BuildGrid[A Attributes](items []Item[A]) [][]uint32 {
	var collected sync.Map // CellKey -> *bucket, each protected by its own mutex

	type bucket struct {
		mu  sync.Mutex
		ids []uint32
	}
	bucketFor := func(key CellKey) *bucket {
		b := &bucket{}
		actual, _ := collected.LoadOrStore(key, b)
		return actual.(*bucket)
	}

	columns := make(chan int, gridWidth)
	for x := gridMinX; x < gridMaxX; x++ {
		columns <- x
	}
	close(columns)

	workers := runtime.GOMAXPROCS(0)
	if workers > gridWidth {
		workers = gridWidth
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for x := range columns {
				for y := gridMinY; y < gridMaxY; y++ {
					cellRect := Rect{
						MinX: Float(x), MinY: Float(y),
						MaxX: Float(x + 1), MaxY: Float(y + 1),
					}
					for _, item := range items {
						if !item.Geometry.Envelope().Intersects(cellRect) {
							continue
						}
						if !item.Geometry.IntersectsRect(cellRect) {
							continue
						}
						key := CellKey{X: RoundInt(x), Y: RoundInt(y)}
						b := bucketFor(key)
						b.mu.Lock()
						b.ids = append(b.ids, item.ID)
						b.mu.Unlock()
					}
				}
			}
		}()
	}
	wg.Wait()

	grid := make([][]uint32, CellCount)
	collected.Range(func(k, v any) bool {
		key := k.(CellKey)
		b := v.(*bucket)
		idx, ok := cellIndex(key.X, key.Y)
		if !ok {
			return true
		}
		ids := b.ids
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		grid[idx] = ids
		return true
	})
	for i := range grid {
		if grid[i] == nil {
			grid[i] = []uint32{}
		}
	}
	return grid
}
