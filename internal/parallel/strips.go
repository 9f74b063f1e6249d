package parallel

import (
	"errors"
	"fmt"

	"github.com/gogpu/mandel/internal/trace"
)

// ErrInvalidStripCount is returned when a grid cannot be split into the
// requested number of strips.
var ErrInvalidStripCount = errors.New("parallel: strip count must be between 1 and the grid height")

// Partition splits height rows into count strips of height/count rows each.
// Strip k covers rows [k*h, (k+1)*h-1]. The height%count rows at the bottom
// belong to no strip.
func Partition(height, count int) ([]trace.Strip, error) {
	if count < 1 || count > height {
		return nil, fmt.Errorf("%w: %d strips for %d rows", ErrInvalidStripCount, count, height)
	}

	rows := height / count
	strips := make([]trace.Strip, count)
	for k := range strips {
		strips[k] = trace.Strip{First: k * rows, Last: (k+1)*rows - 1}
	}
	mustBeDisjoint(strips)
	return strips, nil
}

// Covered returns the number of rows the strips cover.
func Covered(strips []trace.Strip) int {
	n := 0
	for _, s := range strips {
		n += s.Rows()
	}
	return n
}

// mustBeDisjoint panics if the strips are unordered or overlap. Concurrent
// tracers rely on it to write without locks.
func mustBeDisjoint(strips []trace.Strip) {
	for k, s := range strips {
		if s.Last < s.First {
			panic(fmt.Sprintf("parallel: empty strip %v", s))
		}
		if k > 0 && s.First <= strips[k-1].Last {
			panic(fmt.Sprintf("parallel: strip %v overlaps %v", s, strips[k-1]))
		}
	}
}
