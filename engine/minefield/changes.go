package minefield

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/ferdynandzaposki-spec/globesweeper2/types"
)

// changeSet collects the positions touched by one operation. A chord runs
// several reveals and a loss exposes every mine, so the same position can be
// reported more than once; only the first report is kept.
type changeSet struct {
	seen  mapset.Set[types.Coord]
	order []types.Coord
}

func newChangeSet() *changeSet {
	return &changeSet{seen: mapset.New[types.Coord]()}
}

func (c *changeSet) add(positions ...types.Coord) {
	for _, pos := range positions {
		if c.seen.Has(pos) {
			continue
		}
		c.seen.Put(pos)
		c.order = append(c.order, pos)
	}
}

func (c *changeSet) len() int {
	return len(c.order)
}
