package veloxcore

import (
	"github.com/brigantine-data/veloxcore/internal/parallel"
)

// ParallelBuildColumns builds n columns concurrently via the package-wide
// work-stealing runtime (internal/parallel), one grain per column since
// each column's build is independent of its neighbors and typically does
// enough work (a full gather/argsort/materialize) to be worth its own
// leaf rather than being batched with others.
func ParallelBuildColumns(n int, builder func(colIdx int) *Column) []*Column {
	cols := make([]*Column, n)
	if n <= 1 {
		for i := 0; i < n; i++ {
			cols[i] = builder(i)
		}
		return cols
	}
	parallel.ParallelFor(parallel.Global(), n, 1, func(start, end int) {
		for i := start; i < end; i++ {
			cols[i] = builder(i)
		}
	})
	return cols
}
