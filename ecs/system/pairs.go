package system

import (
	"sort"

	"github.com/milk9111/collide/ecs"
)

// pairKey is an unordered entity pair stored lower id first, so (a,b) and
// (b,a) always hit the same entry.
type pairKey struct {
	lo ecs.Entity
	hi ecs.Entity
}

func makePairKey(a, b ecs.Entity) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

type pairSet map[pairKey]struct{}

func (s pairSet) has(k pairKey) bool {
	_, ok := s[k]
	return ok
}

func (s pairSet) add(k pairKey) {
	s[k] = struct{}{}
}

// missingFrom returns the keys of s not present in other, sorted so exit
// callbacks fire in a stable order.
func (s pairSet) missingFrom(other pairSet) []pairKey {
	var out []pairKey
	for k := range s {
		if !other.has(k) {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].lo != out[j].lo {
			return out[i].lo < out[j].lo
		}
		return out[i].hi < out[j].hi
	})
	return out
}
