package branchjoin

import "github.com/speakeasy-api/openapi/sequencedmap"

// Binding is a named mutable storage slot (spec.md section 3). Two
// Bindings are the same slot iff they are the same pointer.
type Binding struct {
	Name string
}

// BindingEntry records the value and leak flag observed at the end of a
// branch for a given Binding.
type BindingEntry struct {
	Value     Value
	HasLeaked bool
}

// BindingMap is the insertion-ordered binding-delta map threaded through
// Effects.
type BindingMap = *sequencedmap.Map[*Binding, BindingEntry]

// JoinBindings implements component D. It returns the (possibly rewritten)
// per-branch generators and the joined bindings map; see spec.md 4.D.
func JoinBindings(
	realm Realm,
	cond Value,
	g1 Generator, m1 BindingMap,
	g2 Generator, m2 BindingMap,
	factory BindingConditionalFactory,
) (Generator, Generator, BindingMap) {
	ops := realm.Generators()
	g1Wrapped, g2Wrapped := false, false

	joined := JoinMaps(m1, m2, func(b *Binding, e1 BindingEntry, ok1 bool, e2 BindingEntry, ok2 bool) BindingEntry {
		if !ok1 {
			e1 = currentOrZero(realm, b)
		}
		if !ok2 {
			e2 = currentOrZero(realm, b)
		}

		leaked := e1.HasLeaked || e2.HasLeaked
		if e1.HasLeaked != e2.HasLeaked {
			// Exactly one side leaked: the un-leaked side's value must be
			// written into the slot on the leaked side's path, so later
			// reads through the leaked reference observe it.
			if e2.HasLeaked {
				// side 1 is the un-leaked side; compensate on side 2.
				if !g2Wrapped {
					g2 = ops.AppendGenerator(ops.Empty(), g2, "join")
					g2Wrapped = true
				}
				g2 = ops.EmitBindingAssignment(g2, b, e1.Value)
			} else {
				// side 2 is the un-leaked side; compensate on side 1.
				if !g1Wrapped {
					g1 = ops.AppendGenerator(ops.Empty(), g1, "join")
					g1Wrapped = true
				}
				g1 = ops.EmitBindingAssignment(g1, b, e2.Value)
			}
		}

		var value Value
		if leaked {
			value = realm.Intrinsics().Undefined()
		} else {
			value = JoinValue(realm, e1.Value, e2.Value, cond, func(c, a, bv Value) Value {
				return factory(c, a, bv, e1.HasLeaked, e2.HasLeaked)
			})
		}
		return BindingEntry{Value: value, HasLeaked: leaked}
	})

	return g1, g2, joined
}

func currentOrZero(realm Realm, b *Binding) BindingEntry {
	if e, ok := realm.CurrentBinding(b); ok {
		return e
	}
	return BindingEntry{}
}

// BindingConditionalFactory is the binding joiner's variant of
// ConditionalFactory: collaborators may need the per-side leak flags when
// constructing a binding's joined value. Their meaning is collaborator-
// defined (spec.md's open question); this core forwards them verbatim.
type BindingConditionalFactory func(cond Value, a, b Value, leakedA, leakedB bool) Value
