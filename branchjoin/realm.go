package branchjoin

import "context"

// Object is the opaque identity of a heap object. The core never looks
// inside an Object; it only compares identities (map keys, set membership),
// so callers must hand back values comparable with ==  — in practice a
// pointer into the realm's object table.
type Object any

// ObjectSet is the created-objects set threaded through Effects.
type ObjectSet map[Object]struct{}

// UnionObjectSets returns the union of two created-objects sets.
func UnionObjectSets(a, b ObjectSet) ObjectSet {
	out := make(ObjectSet, len(a)+len(b))
	for o := range a {
		out[o] = struct{}{}
	}
	for o := range b {
		out[o] = struct{}{}
	}
	return out
}

// Target is the opaque identity of a break/continue label, comparable
// with == (in practice a pointer to the label's AST node).
type Target any

// Intrinsics exposes the realm constants the core needs: the sentinel for
// "no value at all" and the concrete undefined value used to pad a missing
// optional side before handing it to a ConditionalFactory.
type Intrinsics interface {
	Empty() Value
	Undefined() Value
}

// Selector picks which leaves of a Completion tree contribute a value to
// JoinValuesOfSelectedCompletions; see spec.md 4.H.
type Selector func(c *Completion) bool

// Realm bundles the collaborators the core reads — intrinsics, path
// conditions, concrete equality, pre-branch bindings and descriptors, the
// abstract-value factory — plus effect application, the one call that
// writes to the realm (made by MapAndJoin). It is supplied by
// the interpreter; this package never constructs one for production use
// (internal/testrealm exists only to drive this package's own tests).
type Realm interface {
	Intrinsics() Intrinsics

	// PathConditions returns the abstract predicates accumulated along the
	// realm's current branch, most-recent last.
	PathConditions() []Value

	// StrictEquals implements the concrete-equality primitive spec.md
	// section 6 lists as an external collaborator.
	StrictEquals(a, b Value) bool

	// ConditionalOf is the single abstract-value factory spec.md section 1
	// says the core is restricted to: AbstractValue.conditionalOf(cond, a, b).
	ConditionalOf(cond, a, b Value) Value

	// JoinConditionForSelectedCompletions derives the join condition used
	// to re-apply a selector under a JoinedNormalAndAbrupt's composedWith,
	// per spec.md 4.H.
	JoinConditionForSelectedCompletions(sel Selector, composedWith *Completion) Value

	// Generators returns the Generator collaborator namespace (spec.md
	// section 6: empty, joinGenerators, appendGenerator, emitBindingAssignment).
	Generators() GeneratorOps

	// CurrentBinding returns the binding's value/leak state as of just
	// before the branch began, used when a branch's delta has no entry
	// for a binding that the other branch's delta does mention.
	CurrentBinding(b *Binding) (BindingEntry, bool)

	// CurrentDescriptor returns the property's descriptor as of just
	// before the branch began (spec.md 4.E).
	CurrentDescriptor(pb PropertyBinding) (*Descriptor, bool)

	// EvaluateForEffects runs thunk under path condition cond (pushed via
	// Path.withCondition) and captures it as an Effects record.
	EvaluateForEffects(ctx context.Context, cond Value, thunk func(context.Context) (*Completion, error), label string) (*Effects, error)

	// ApplyEffects writes an accumulated Effects record back onto the realm.
	ApplyEffects(e *Effects) error

	// ReturnOrThrowCompletion converts a terminal Completion into a Go
	// value-or-error pair, i.e. unwraps Normal/Return into a Value and
	// Throw into an error.
	ReturnOrThrowCompletion(c *Completion) (Value, error)
}

// GeneratorOps is the Generator collaborator's operation set. Generators
// are treated as immutable by this package: every method here returns a
// new Generator rather than mutating its arguments (spec.md section 5).
type GeneratorOps interface {
	// Empty returns the canonical empty generator.
	Empty() Generator

	// JoinGenerators builds a new generator that branches between g1
	// (taken when cond holds) and g2 (taken when it does not).
	JoinGenerators(cond Value, g1, g2 Generator) Generator

	// AppendGenerator returns a new generator that replays outer's entries
	// followed by inner's, inner's entries tagged with label.
	AppendGenerator(outer, inner Generator, label string) Generator

	// EmitBindingAssignment returns a new generator that replays g's
	// entries followed by a single binding-assignment entry for
	// (binding, value).
	EmitBindingAssignment(g Generator, binding *Binding, value Value) Generator
}

// Generator is the append-only log of observable effects a branch produced.
// Its contents are opaque to this package beyond IsEmpty.
type Generator interface {
	IsEmpty() bool
}
