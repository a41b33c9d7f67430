package branchjoin

// Descriptor is property-slot metadata: either a data descriptor (Value +
// writable/enumerable/configurable flags) or an accessor descriptor
// (Get/Set). A descriptor produced by JoinDescriptor when a direct merge
// is impossible additionally carries JoinCondition/Descriptor1/Descriptor2,
// preserving the unjoined originals (spec.md section 3).
type Descriptor struct {
	IsAccessor bool

	// Data descriptor fields.
	Value        Value
	Writable     *bool
	Enumerable   *bool
	Configurable *bool

	// Accessor descriptor fields.
	Get Value
	Set Value

	// Set only on an opaque (unmerged) join result.
	JoinCondition Value
	Descriptor1   *Descriptor
	Descriptor2   *Descriptor
}

// IsDataDescriptor reports whether d is a data (as opposed to accessor)
// descriptor. A nil descriptor is neither.
func IsDataDescriptor(d *Descriptor) bool {
	return d != nil && !d.IsAccessor
}

// CloneDescriptor returns a shallow copy of d, so callers can mutate the
// copy's Value/flags without disturbing a descriptor that may be shared
// with other branches (spec.md section 5's "descriptors are cloned before
// mutation").
func CloneDescriptor(d *Descriptor) *Descriptor {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

// EqualDescriptors reports whether d1 and d2 have the same shape (both
// data or both accessor, with equal writable/enumerable/configurable
// flags) — it does
// not compare the Value/Get/Set payloads themselves, which is the caller's
// (component A's) job once shape-equality licenses a direct merge.
func EqualDescriptors(d1, d2 *Descriptor) bool {
	if d1 == nil || d2 == nil {
		return d1 == d2
	}
	if d1.IsAccessor != d2.IsAccessor {
		return false
	}
	if d1.IsAccessor {
		return boolPtrEqual(d1.Writable, d2.Writable) &&
			boolPtrEqual(d1.Enumerable, d2.Enumerable) &&
			boolPtrEqual(d1.Configurable, d2.Configurable)
	}
	return boolPtrEqual(d1.Writable, d2.Writable) &&
		boolPtrEqual(d1.Enumerable, d2.Enumerable) &&
		boolPtrEqual(d1.Configurable, d2.Configurable)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// JoinDescriptor implements component B's case table (spec.md 4.B).
func JoinDescriptor(realm Realm, d1, d2 *Descriptor, cond Value, factory ConditionalFactory) *Descriptor {
	switch {
	case d1 == nil && d2 == nil:
		return nil
	case d1 == nil:
		return materializeAgainstEmpty(realm, d2, cond, factory, false)
	case d2 == nil:
		return materializeAgainstEmpty(realm, d1, cond, factory, true)
	case EqualDescriptors(d1, d2) && IsDataDescriptor(d1) && IsDataDescriptor(d2):
		result := CloneDescriptor(d1)
		result.Value = JoinValue(realm, d1.Value, d2.Value, cond, factory)
		return result
	default:
		return &Descriptor{
			JoinCondition: cond,
			Descriptor1:   d1,
			Descriptor2:   d2,
		}
	}
}

// materializeAgainstEmpty handles the "present in only one branch" cases
// of spec.md 4.B: the slot becomes conditionally present, its value the
// branch value when cond matches its side and Empty otherwise. present is
// true when orig is the true-branch (first) descriptor.
func materializeAgainstEmpty(realm Realm, orig *Descriptor, cond Value, factory ConditionalFactory, present bool) *Descriptor {
	if orig.IsAccessor {
		// An accessor can't be materialized against Empty at the value
		// level; preserve both originals opaquely, mapping present/absent
		// onto descriptor1/descriptor2's conventional ordering.
		if present {
			return &Descriptor{JoinCondition: cond, Descriptor1: orig, Descriptor2: nil}
		}
		return &Descriptor{JoinCondition: cond, Descriptor1: nil, Descriptor2: orig}
	}

	result := CloneDescriptor(orig)
	empty := realm.Intrinsics().Empty()
	if present {
		result.Value = JoinValue(realm, orig.Value, empty, cond, factory)
	} else {
		result.Value = JoinValue(realm, empty, orig.Value, cond, factory)
	}
	return result
}
