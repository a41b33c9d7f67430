package branchjoin

// Effects is the five-tuple spec.md section 3 defines: a completion, a
// generator, a bindings delta, a property-bindings delta, and a
// created-objects set, plus a CanBeApplied flag. An Effects instance is
// logically consumed once it has been joined or applied.
type Effects struct {
	Result         *Completion
	Generator      Generator
	Bindings       BindingMap
	Properties     PropertyMap
	CreatedObjects ObjectSet
	CanBeApplied   bool
}

// ShallowCloneWithResult returns a copy of e whose completion is replaced
// by r; every other field is shared with e (spec.md section 3).
func (e *Effects) ShallowCloneWithResult(r *Completion) *Effects {
	clone := *e
	clone.Result = r
	return &clone
}

// JoinEffects implements component G (spec.md 4.G). Both inputs must be
// applicable (CanBeApplied); violating that is a structural precondition
// error (spec.md section 7).
func JoinEffects(
	realm Realm,
	opts JoinOptions,
	logger Logger,
	cond Value,
	e1, e2 *Effects,
	factory ConditionalFactory,
	throwFactory ThrowConditionalFactory,
	bindingFactory BindingConditionalFactory,
) *Effects {
	assertf(e1.CanBeApplied && e2.CanBeApplied, "JoinEffects: both inputs must have CanBeApplied set")

	if logger == nil {
		logger = NewNoopLogger()
	}
	logger = logger.With(map[string]any{"op": "joinEffects"})

	if MustBeTrue(cond) {
		logger.Debugf("short-circuit: cond must be true, returning e1")
		return e1
	}
	if MustBeFalse(cond) {
		logger.Debugf("short-circuit: cond must be false, returning e2")
		return e2
	}

	result := JoinCompletions(cond, e1.Result, e2.Result, factory, throwFactory)

	g1, g2, bindings := JoinBindings(realm, cond, e1.Generator, e1.Bindings, e2.Generator, e2.Bindings, bindingFactory)

	ops := realm.Generators()
	var generator Generator
	if g1.IsEmpty() && g2.IsEmpty() {
		generator = ops.Empty()
	} else {
		generator = ops.JoinGenerators(cond, g1, g2)
	}

	properties := JoinPropertyBindings(realm, cond, e1.Properties, e2.Properties, e1.CreatedObjects, e2.CreatedObjects, factory)

	createdObjects := UnionObjectSets(e1.CreatedObjects, e2.CreatedObjects)

	merged := &Effects{
		Result:         result,
		Generator:      generator,
		Bindings:       bindings,
		Properties:     properties,
		CreatedObjects: createdObjects,
		CanBeApplied:   true,
	}

	logger.Debugf("joined %s", effectSummary(merged))
	return merged
}
