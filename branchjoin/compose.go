package branchjoin

// ComposeCompletions implements component H's composeCompletions (spec.md
// 4.H): glues a possibly-pending completion (left) onto a newly observed
// one (right). A nil left is "absent" — the dynamic language's "plain
// value" case collapses to this in a statically typed port, since a bare
// Value can't reach this function's *Completion-typed parameter; callers
// wrap a bare value with NormalCompletion before calling.
func ComposeCompletions(left, right *Completion, factory ConditionalFactory, throwFactory ThrowConditionalFactory) *Completion {
	if left == nil {
		return right
	}
	if left.IsAbrupt() {
		// left is an abrupt leaf (or JoinedAbrupt): it dominates, right is
		// discarded (spec.md property 8).
		return left
	}
	if left.Kind != CJoinedNormalAndAbrupt {
		// left is Normal: right wins outright (nothing pending to splice).
		return right
	}

	if right.Kind == CJoinedNormalAndAbrupt {
		// Splice: build a new node carrying right's branches with
		// composedWith/pathConditionsAtCreation taken from left — never
		// mutate right, which may already be published (spec.md section 5,
		// Design Notes "reframe as immutable rebuild").
		spliced := *right
		spliced.ComposedWith = left
		spliced.PathConditionsAtCreation = left.PathConditionsAtCreation
		return &spliced
	}

	newConsequent := ComposeCompletions(left.Consequent, right, factory, throwFactory)
	newAlternate := ComposeCompletions(left.Alternate, right, factory, throwFactory)
	rebuilt := JoinCompletions(left.Cond, newConsequent, newAlternate, factory, throwFactory)
	if rebuilt.Kind == CJoinedNormalAndAbrupt {
		rebuilt.ComposedWith = left.ComposedWith
		rebuilt.PathConditionsAtCreation = left.PathConditionsAtCreation
		rebuilt.SavedEffects = left.SavedEffects
	}
	return rebuilt
}

// ComposeWithEffects implements composeWithEffects (spec.md 4.H):
// distributes a completion tree over freshly observed effects e.
func ComposeWithEffects(
	realm Realm,
	opts JoinOptions,
	logger Logger,
	completion *Completion,
	e *Effects,
	factory ConditionalFactory,
	throwFactory ThrowConditionalFactory,
	bindingFactory BindingConditionalFactory,
) *Effects {
	switch {
	case completion.Kind != CJoinedNormalAndAbrupt && completion.IsAbrupt():
		return emptyEffects(realm, completion)
	case completion.Kind == CNormal:
		return e.ShallowCloneWithResult(NormalCompletion(completion.Value))
	case completion.Kind == CJoinedNormalAndAbrupt:
		e1 := ComposeWithEffects(realm, opts, logger, completion.Consequent, e, factory, throwFactory, bindingFactory)
		e2 := ComposeWithEffects(realm, opts, logger, completion.Alternate, e, factory, throwFactory, bindingFactory)
		return JoinEffects(realm, opts, logger, completion.Cond, e1, e2, factory, throwFactory, bindingFactory)
	default:
		// Not reached by any current kind: JoinedAbrupt reports IsAbrupt and
		// takes the first case, which likewise treats it as an abrupt leaf —
		// it has no embedded normal branch to distribute e over.
		return emptyEffects(realm, completion)
	}
}

func emptyEffects(realm Realm, completion *Completion) *Effects {
	ops := realm.Generators()
	return &Effects{
		Result:         completion,
		Generator:      ops.Empty(),
		Bindings:       nil,
		Properties:     nil,
		CreatedObjects: nil,
		CanBeApplied:   true,
	}
}

// JoinValuesOfSelectedCompletions implements spec.md 4.H's
// joinValuesOfSelectedCompletions: folds over a completion tree, taking a
// selected leaf's value and Empty for every unselected leaf, joining the
// results together. On a JoinedNormalAndAbrupt whose composedWith is set,
// the selector is reapplied to composedWith under a freshly derived join
// condition and the result re-joined, so a value contributed by the
// spliced-in prior completion is not lost.
func JoinValuesOfSelectedCompletions(realm Realm, sel Selector, c *Completion, factory ConditionalFactory) Value {
	switch c.Kind {
	case CJoinedAbrupt, CJoinedNormalAndAbrupt:
		left := JoinValuesOfSelectedCompletions(realm, sel, c.Consequent, factory)
		right := JoinValuesOfSelectedCompletions(realm, sel, c.Alternate, factory)
		val := JoinValue(realm, left, right, c.Cond, factory)

		if c.Kind == CJoinedNormalAndAbrupt && c.ComposedWith != nil {
			joinCond := realm.JoinConditionForSelectedCompletions(sel, c.ComposedWith)
			composedVal := JoinValuesOfSelectedCompletions(realm, sel, c.ComposedWith, factory)
			val = JoinValue(realm, val, composedVal, joinCond, factory)
		}
		return val
	default:
		if sel(c) {
			return c.Value
		}
		return realm.Intrinsics().Empty()
	}
}
