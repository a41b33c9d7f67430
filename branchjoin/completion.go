package branchjoin

// CompletionKind tags the variant of a Completion, following the
// teacher's enum-with-exhaustive-switch idiom (code.go's opcode).
type CompletionKind uint8

const (
	CNormal CompletionKind = iota
	CThrow
	CReturn
	CBreak
	CContinue
	CJoinedAbrupt
	CJoinedNormalAndAbrupt
)

func (k CompletionKind) String() string {
	switch k {
	case CNormal:
		return "Normal"
	case CThrow:
		return "Throw"
	case CReturn:
		return "Return"
	case CBreak:
		return "Break"
	case CContinue:
		return "Continue"
	case CJoinedAbrupt:
		return "JoinedAbrupt"
	case CJoinedNormalAndAbrupt:
		return "JoinedNormalAndAbrupt"
	default:
		panic(k)
	}
}

// Completion is the outcome of evaluating a program fragment (spec.md
// section 3). Only the fields relevant to Kind are meaningful; e.g.
// Location is set only for CThrow, Target only for CBreak/CContinue.
type Completion struct {
	Kind CompletionKind

	Value    Value // Normal, Throw, Return, Break, Continue
	Location Value // Throw's source location, opaque to this package
	Target   Target // Break, Continue

	// JoinedAbrupt / JoinedNormalAndAbrupt.
	Cond        Value
	Consequent  *Completion
	Alternate   *Completion

	// JoinedNormalAndAbrupt-only; mutated exactly once, by the Composer,
	// on a freshly allocated node never published before that mutation
	// (spec.md section 5).
	ComposedWith             *Completion
	PathConditionsAtCreation []Value
	SavedEffects             *Effects
}

// IsAbrupt reports whether c is an abrupt completion: any leaf other than
// Normal, or a JoinedAbrupt. JoinedNormalAndAbrupt is NOT abrupt — it is a
// mix (spec.md GLOSSARY).
func (c *Completion) IsAbrupt() bool {
	return c.Kind != CNormal && c.Kind != CJoinedNormalAndAbrupt
}

// NormalCompletion, ThrowCompletion, ReturnCompletion, BreakCompletion,
// and ContinueCompletion are the leaf constructors.
func NormalCompletion(v Value) *Completion { return &Completion{Kind: CNormal, Value: v} }

func ThrowCompletion(v Value, loc Value) *Completion {
	return &Completion{Kind: CThrow, Value: v, Location: loc}
}

func ReturnCompletion(v Value) *Completion { return &Completion{Kind: CReturn, Value: v} }

func BreakCompletion(v Value, target Target) *Completion {
	return &Completion{Kind: CBreak, Value: v, Target: target}
}

func ContinueCompletion(target Target) *Completion {
	return &Completion{Kind: CContinue, Target: target}
}

// ThrowConditionalFactory is the distinct factory variant spec.md's Design
// Notes call for: the Throw-collapse case of JoinCompletions must not
// prefer the non-empty side the way ConditionalFactory's missing-side
// substitution otherwise implies, because a thrown value is always
// genuinely present on its side (never an omitted property standing in
// for Empty). Kept as its own type rather than an inline redefinition of
// ConditionalFactory, per the Design Notes.
type ThrowConditionalFactory func(cond Value, a, b Value) Value

// JoinCompletions implements component F (spec.md 4.F). factory builds the
// conditional for Normal/Return/Break collapse; throwFactory is the
// distinct variant used only for the Throw/Throw collapse case.
func JoinCompletions(cond Value, c1, c2 *Completion, factory ConditionalFactory, throwFactory ThrowConditionalFactory) *Completion {
	if MustBeTrue(cond) {
		return c1
	}
	if MustBeFalse(cond) {
		return c2
	}

	if c1.Kind == c2.Kind {
		switch c1.Kind {
		case CBreak:
			if c1.Target == c2.Target {
				return BreakCompletion(factory(cond, c1.Value, c2.Value), c1.Target)
			}
		case CContinue:
			if c1.Target == c2.Target {
				return ContinueCompletion(c1.Target)
			}
		case CReturn:
			return ReturnCompletion(factory(cond, c1.Value, c2.Value))
		case CThrow:
			return ThrowCompletion(ConditionalFactory(throwFactory)(cond, c1.Value, c2.Value), c1.Location)
		case CNormal:
			return NormalCompletion(factory(cond, c1.Value, c2.Value))
		}
	}

	if c1.IsAbrupt() && c2.IsAbrupt() {
		return &Completion{Kind: CJoinedAbrupt, Cond: cond, Consequent: c1, Alternate: c2}
	}
	return &Completion{Kind: CJoinedNormalAndAbrupt, Cond: cond, Consequent: c1, Alternate: c2}
}
