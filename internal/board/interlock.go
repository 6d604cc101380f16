package board

import "slices"

// CompoundGroup is a set of blobs that must fall as one rigid body during
// phase 1 of a gravity solve. Members are blob IDs in ascending order.
type CompoundGroup struct {
	Members []int
}

// Contains reports whether the blob with the given ID is a member.
func (g CompoundGroup) Contains(id int) bool {
	_, found := slices.BinarySearch(g.Members, id)
	return found
}

// Interlocked reports whether two blobs are mechanically coupled: in some
// shared column one wraps the other, or their vertical extents overlap or
// touch.
func Interlocked(a, b *Blob) bool {
	for x, ra := range a.ranges {
		rb, ok := b.ranges[x]
		if !ok {
			continue
		}
		if ra.minY < rb.minY && ra.maxY > rb.maxY {
			return true
		}
		if rb.minY < ra.minY && rb.maxY > ra.maxY {
			return true
		}
		// >= 0 is a literal overlap, -1 means vertically adjacent.
		if min(ra.maxY, rb.maxY)-max(ra.minY, rb.minY) >= -1 {
			return true
		}
	}
	return false
}

// DetectInterlocks unions pairwise-interlocked blobs and returns every group
// with at least two members, ordered by smallest member ID. blobs[i].ID must
// equal i, which BuildBlobs guarantees.
func DetectInterlocks(blobs []*Blob) []CompoundGroup {
	uf := newUnionFind(len(blobs))
	for i := 0; i < len(blobs); i++ {
		for j := i + 1; j < len(blobs); j++ {
			if Interlocked(blobs[i], blobs[j]) {
				uf.union(i, j)
			}
		}
	}

	byRoot := make(map[int][]int)
	for i := range blobs {
		r := uf.find(i)
		byRoot[r] = append(byRoot[r], i)
	}

	var groups []CompoundGroup
	for _, members := range byRoot {
		if len(members) < 2 {
			continue
		}
		slices.Sort(members)
		groups = append(groups, CompoundGroup{Members: members})
	}
	slices.SortFunc(groups, func(a, b CompoundGroup) int {
		return a.Members[0] - b.Members[0]
	})
	return groups
}

// unionFind is a disjoint-set forest with path halving and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
