package branchjoin

import "github.com/speakeasy-api/openapi/sequencedmap"

// PropertyBinding identifies one property slot: an object identity plus a
// property key (itself a Value, since keys may be symbolic).
type PropertyBinding struct {
	Object Object
	Key    Value
}

// PropertyMap is the insertion-ordered property-delta map threaded through
// Effects. A present entry mapped to a nil *Descriptor records a deletion.
type PropertyMap = *sequencedmap.Map[PropertyBinding, *Descriptor]

// JoinPropertyBindings implements component E (spec.md 4.E): for each
// property binding appearing in either delta, resolve the missing side
// against the created-objects sets and the realm's pre-branch descriptor,
// then delegate to JoinDescriptor (component B) — except when the object
// was created only on the other branch, in which case that branch's
// descriptor is the join result verbatim (there is no pre-branch slot to
// reconcile against).
func JoinPropertyBindings(
	realm Realm,
	cond Value,
	m1, m2 PropertyMap,
	c1, c2 ObjectSet,
	factory ConditionalFactory,
) PropertyMap {
	return JoinMaps(m1, m2, func(pb PropertyBinding, d1 *Descriptor, ok1 bool, d2 *Descriptor, ok2 bool) *Descriptor {
		if !ok1 {
			if _, createdOnRight := c2[pb.Object]; createdOnRight {
				return d2
			}
		}
		if !ok2 {
			if _, createdOnLeft := c1[pb.Object]; createdOnLeft {
				return d1
			}
		}

		effD1 := resolveSide(realm, pb, d1, ok1)
		effD2 := resolveSide(realm, pb, d2, ok2)
		return JoinDescriptor(realm, effD1, effD2, cond, factory)
	})
}

// resolveSide computes the effective per-side descriptor to feed into
// JoinDescriptor, for the non-verbatim cases of spec.md 4.E:
//   - present (ok && d != nil): the branch wrote this descriptor; use it.
//   - deleted (ok && d == nil): the branch deleted the property; use a
//     clone of the pre-branch descriptor with its value replaced by Empty.
//   - untouched (!ok): the branch never wrote this property; use the
//     pre-branch descriptor unchanged (or nil if there was none).
func resolveSide(realm Realm, pb PropertyBinding, d *Descriptor, ok bool) *Descriptor {
	if ok && d != nil {
		return d
	}
	current, hasCurrent := realm.CurrentDescriptor(pb)
	if ok && d == nil {
		if !hasCurrent {
			return nil
		}
		return withValueReplacedByEmpty(realm, current)
	}
	if !hasCurrent {
		return nil
	}
	return current
}

func withValueReplacedByEmpty(realm Realm, orig *Descriptor) *Descriptor {
	clone := CloneDescriptor(orig)
	if !clone.IsAccessor {
		clone.Value = realm.Intrinsics().Empty()
	}
	return clone
}
