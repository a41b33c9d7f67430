package branchjoin

import "github.com/speakeasy-api/openapi/sequencedmap"

// JoinMaps implements component C: the keyed union of m1 and m2, computing
// each key's joined value via the caller-supplied reconciler f. The result
// preserves first-seen insertion order — m1's keys in m1's order, then any
// key appearing only in m2 in m2's order — backed by the same
// insertion-ordered map type the teacher uses for schema properties
// (schemaexec/schemaops.go's MergeObjects). Pure and total; commutative
// only when f is.
func JoinMaps[K comparable, V any](
	m1, m2 *sequencedmap.Map[K, V],
	f func(key K, v1 V, ok1 bool, v2 V, ok2 bool) V,
) *sequencedmap.Map[K, V] {
	out := sequencedmap.New[K, V]()

	if m1 != nil {
		for k, v1 := range m1.All() {
			v2, ok2 := lookup(m2, k)
			out.Set(k, f(k, v1, true, v2, ok2))
		}
	}
	if m2 != nil {
		for k, v2 := range m2.All() {
			if m1 != nil {
				if _, ok1 := lookup(m1, k); ok1 {
					continue
				}
			}
			var zero V
			out.Set(k, f(k, zero, false, v2, true))
		}
	}
	return out
}

func lookup[K comparable, V any](m *sequencedmap.Map[K, V], k K) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	return m.Get(k)
}
