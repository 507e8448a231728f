package wfc

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Domain is the set of tiles still possible for one output cell.
// The zero value is unconstrained: every trained tile is possible and the
// set is only materialized the first time it has to be narrowed or read.
type Domain struct {
	materialized bool
	candidates   mapset.Set[TileID]
	collapsed    bool
}

// Unconstrained reports whether no tile has been ruled out yet.
func (d *Domain) Unconstrained() bool {
	return !d.materialized
}

// Collapsed reports whether the cell has been observed.
// A collapsed domain never changes again.
func (d *Domain) Collapsed() bool {
	return d.collapsed
}

// Size returns the number of candidates, counting an unconstrained domain
// as the whole universe.
func (d *Domain) Size(universe int) int {
	if !d.materialized {
		return universe
	}
	return d.candidates.Size()
}

// Has reports whether id is still a candidate.
func (d *Domain) Has(id TileID) bool {
	if !d.materialized {
		return true
	}
	return d.candidates.Has(id)
}

// Candidates returns the materialized candidates in ascending order,
// or nil for an unconstrained domain.
func (d *Domain) Candidates() []TileID {
	if !d.materialized {
		return nil
	}
	ids := make([]TileID, 0, d.candidates.Size())
	d.candidates.Each(func(id TileID) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// materialize expands an unconstrained domain into the full universe.
func (d *Domain) materialize(universe []TileID) {
	if d.materialized {
		return
	}
	d.candidates = mapset.New[TileID]()
	for _, id := range universe {
		d.candidates.Put(id)
	}
	d.materialized = true
}

// restrict intersects the domain with allowed, materializing it first.
// The result may be empty.
func (d *Domain) restrict(universe, allowed []TileID) {
	d.materialize(universe)
	keep := mapset.New[TileID]()
	for _, id := range allowed {
		if d.candidates.Has(id) {
			keep.Put(id)
		}
	}
	d.candidates = keep
}

// fix collapses the domain to the single tile id.
func (d *Domain) fix(id TileID) {
	d.candidates = mapset.New[TileID]()
	d.candidates.Put(id)
	d.materialized = true
	d.collapsed = true
}

// exhaust marks a contradicted cell as collapsed with no candidates.
func (d *Domain) exhaust() {
	d.candidates = mapset.New[TileID]()
	d.materialized = true
	d.collapsed = true
}
