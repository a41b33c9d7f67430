// Package testrealm is a minimal, concrete implementation of the
// branchjoin.Realm collaborator surface, used only to drive this module's
// own tests. It is grounded on the teacher's newExecState (schemaexec/
// multistate.go) — a small, concrete, test-only environment constructor —
// and is explicitly not a general-purpose object/expression model: it
// implements exactly the interfaces branchjoin/realm.go declares, nothing
// more.
package testrealm

import (
	"context"
	"fmt"

	"github.com/neamatmim/prepack/branchjoin"
)

// Concrete wraps a single comparable Go datum as a branchjoin.Value.
type Concrete struct {
	Datum any
}

func (c Concrete) Kind() branchjoin.Kind        { return branchjoin.KindConcrete }
func (c Concrete) MightNotBeTrue() bool         { return !truthy(c.Datum) }
func (c Concrete) MightNotBeFalse() bool        { return truthy(c.Datum) }
func (c Concrete) String() string               { return fmt.Sprintf("%v", c.Datum) }

func truthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// V is a convenience constructor for a Concrete value.
func V(datum any) Concrete { return Concrete{Datum: datum} }

// emptyValue / undefinedValue are the realm's two fixed intrinsics.
type emptyValue struct{}

func (emptyValue) Kind() branchjoin.Kind { return branchjoin.KindEmpty }
func (emptyValue) MightNotBeTrue() bool  { return true }
func (emptyValue) MightNotBeFalse() bool { return true }
func (emptyValue) String() string        { return "Empty" }

type undefinedMarker struct{}

func (undefinedMarker) Kind() branchjoin.Kind { return branchjoin.KindConcrete }
func (undefinedMarker) MightNotBeTrue() bool  { return true }
func (undefinedMarker) MightNotBeFalse() bool { return false }
func (undefinedMarker) String() string        { return "undefined" }

// Empty and Undefined are this realm's singleton intrinsics.
var (
	Empty     branchjoin.Value = emptyValue{}
	Undefined branchjoin.Value = undefinedMarker{}
)

// Abstract is a symbolic value: either a free variable (Name) or an
// abstract conditional built by ConditionalOf.
type Abstract struct {
	Name string
	Cond branchjoin.Value
	A, B branchjoin.Value

	// NotTrue / NotFalse back MightNotBeTrue / MightNotBeFalse. Unknown and
	// ConditionalOf set both to true ("totally unknown"); a test builds an
	// Abstract literal with other values when it needs a condition that is
	// known one-sided. The zero value (both false) is must-be-true.
	NotTrue, NotFalse bool
}

func (a Abstract) Kind() branchjoin.Kind { return branchjoin.KindAbstract }
func (a Abstract) MightNotBeTrue() bool  { return a.NotTrue }
func (a Abstract) MightNotBeFalse() bool { return a.NotFalse }

func (a Abstract) String() string {
	if a.Cond != nil {
		return fmt.Sprintf("(%v ? %v : %v)", a.Cond, a.A, a.B)
	}
	return a.Name
}

// Unknown is an abstract value about which nothing is known (the common
// case for a guarding path condition in tests).
func Unknown(name string) Abstract {
	return Abstract{Name: name, NotTrue: true, NotFalse: true}
}

// intrinsics implements branchjoin.Intrinsics.
type intrinsics struct{}

func (intrinsics) Empty() branchjoin.Value     { return Empty }
func (intrinsics) Undefined() branchjoin.Value { return Undefined }

// entry is one step of a Generator's log: a label and, for binding
// assignments, the binding/value written.
type entry struct {
	kind    string // "label" or "assign"
	label   string
	binding *branchjoin.Binding
	value   branchjoin.Value
}

// Gen is an immutable, slice-backed Generator.
type Gen struct {
	entries []entry
}

func (g *Gen) IsEmpty() bool { return g == nil || len(g.entries) == 0 }

// Entries exposes the recorded log for assertions in tests.
func (g *Gen) Entries() []string {
	if g == nil {
		return nil
	}
	out := make([]string, 0, len(g.entries))
	for _, e := range g.entries {
		switch e.kind {
		case "assign":
			out = append(out, fmt.Sprintf("assign(%s=%v)", e.binding.Name, e.value))
		default:
			out = append(out, e.label)
		}
	}
	return out
}

// generatorOps implements branchjoin.GeneratorOps.
type generatorOps struct{}

func (generatorOps) Empty() branchjoin.Generator { return &Gen{} }

func (generatorOps) JoinGenerators(cond branchjoin.Value, g1, g2 branchjoin.Generator) branchjoin.Generator {
	a, _ := g1.(*Gen)
	b, _ := g2.(*Gen)
	out := &Gen{entries: []entry{{kind: "label", label: "join-begin"}}}
	out.entries = append(out.entries, a.entries...)
	out.entries = append(out.entries, entry{kind: "label", label: "join-mid"})
	out.entries = append(out.entries, b.entries...)
	return out
}

func (generatorOps) AppendGenerator(outer, inner branchjoin.Generator, label string) branchjoin.Generator {
	o, _ := outer.(*Gen)
	i, _ := inner.(*Gen)
	out := &Gen{}
	if o != nil {
		out.entries = append(out.entries, o.entries...)
	}
	out.entries = append(out.entries, entry{kind: "label", label: label + "-begin"})
	if i != nil {
		out.entries = append(out.entries, i.entries...)
	}
	return out
}

func (generatorOps) EmitBindingAssignment(g branchjoin.Generator, binding *branchjoin.Binding, value branchjoin.Value) branchjoin.Generator {
	src, _ := g.(*Gen)
	out := &Gen{}
	if src != nil {
		out.entries = append(out.entries, src.entries...)
	}
	out.entries = append(out.entries, entry{kind: "assign", binding: binding, value: value})
	return out
}

// Realm is the concrete test collaborator.
type Realm struct {
	paths       []branchjoin.Value
	bindings    map[*branchjoin.Binding]branchjoin.BindingEntry
	descriptors map[branchjoin.PropertyBinding]*branchjoin.Descriptor
}

// New returns an empty test realm.
func New() *Realm {
	return &Realm{
		bindings:    make(map[*branchjoin.Binding]branchjoin.BindingEntry),
		descriptors: make(map[branchjoin.PropertyBinding]*branchjoin.Descriptor),
	}
}

func (r *Realm) Intrinsics() branchjoin.Intrinsics { return intrinsics{} }

func (r *Realm) PathConditions() []branchjoin.Value { return r.paths }

func (r *Realm) StrictEquals(a, b branchjoin.Value) bool {
	ca, okA := a.(Concrete)
	cb, okB := b.(Concrete)
	if !okA || !okB {
		return a == b
	}
	return ca.Datum == cb.Datum
}

func (r *Realm) ConditionalOf(cond, a, b branchjoin.Value) branchjoin.Value {
	return Abstract{Cond: cond, A: a, B: b, NotTrue: true, NotFalse: true}
}

func (r *Realm) JoinConditionForSelectedCompletions(sel branchjoin.Selector, composedWith *branchjoin.Completion) branchjoin.Value {
	if composedWith != nil {
		return composedWith.Cond
	}
	return Undefined
}

func (r *Realm) Generators() branchjoin.GeneratorOps { return generatorOps{} }

func (r *Realm) CurrentBinding(b *branchjoin.Binding) (branchjoin.BindingEntry, bool) {
	e, ok := r.bindings[b]
	return e, ok
}

// SetCurrentBinding seeds the realm's pre-branch state for a binding; used
// by tests to set up the "current value" a branch's delta omits.
func (r *Realm) SetCurrentBinding(b *branchjoin.Binding, e branchjoin.BindingEntry) {
	r.bindings[b] = e
}

func (r *Realm) CurrentDescriptor(pb branchjoin.PropertyBinding) (*branchjoin.Descriptor, bool) {
	d, ok := r.descriptors[pb]
	return d, ok
}

// SetCurrentDescriptor seeds the realm's pre-branch property state.
func (r *Realm) SetCurrentDescriptor(pb branchjoin.PropertyBinding, d *branchjoin.Descriptor) {
	r.descriptors[pb] = d
}

func (r *Realm) EvaluateForEffects(ctx context.Context, cond branchjoin.Value, thunk func(context.Context) (*branchjoin.Completion, error), label string) (*branchjoin.Effects, error) {
	r.paths = append(r.paths, cond)
	defer func() { r.paths = r.paths[:len(r.paths)-1] }()

	c, err := thunk(ctx)
	if err != nil {
		return nil, err
	}
	return &branchjoin.Effects{
		Result:         c,
		Generator:      &Gen{},
		Bindings:       nil,
		Properties:     nil,
		CreatedObjects: nil,
		CanBeApplied:   true,
	}, nil
}

func (r *Realm) ApplyEffects(e *branchjoin.Effects) error {
	if e.Bindings != nil {
		for b, entry := range e.Bindings.All() {
			r.bindings[b] = entry
		}
	}
	if e.Properties != nil {
		for pb, d := range e.Properties.All() {
			r.descriptors[pb] = d
		}
	}
	return nil
}

func (r *Realm) ReturnOrThrowCompletion(c *branchjoin.Completion) (branchjoin.Value, error) {
	switch c.Kind {
	case branchjoin.CThrow:
		return nil, fmt.Errorf("thrown: %v", c.Value)
	case branchjoin.CReturn, branchjoin.CNormal:
		return c.Value, nil
	default:
		return nil, fmt.Errorf("unexpected terminal completion kind %s", c.Kind)
	}
}

// Factory, BindingFactory and ThrowFactory are convenience ConditionalFactory/
// BindingConditionalFactory/ThrowConditionalFactory values wired to this
// realm's ConditionalOf, for tests that don't need to vary them.
func (r *Realm) Factory() branchjoin.ConditionalFactory {
	return func(cond, a, b branchjoin.Value) branchjoin.Value { return r.ConditionalOf(cond, a, b) }
}

func (r *Realm) ThrowFactory() branchjoin.ThrowConditionalFactory {
	return func(cond, a, b branchjoin.Value) branchjoin.Value { return r.ConditionalOf(cond, a, b) }
}

func (r *Realm) BindingFactory() branchjoin.BindingConditionalFactory {
	return func(cond, a, b branchjoin.Value, leakedA, leakedB bool) branchjoin.Value {
		return r.ConditionalOf(cond, a, b)
	}
}
