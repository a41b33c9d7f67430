package branchjoin

import "context"

// EffectsThunk evaluates one branch of a mapAndJoin fold under the path
// condition already pushed by the driver, returning the branch's
// completion; the realm's EvaluateForEffects captures it as an Effects.
type EffectsThunk func(ctx context.Context) (*Completion, error)

// MapAndJoin implements component I (spec.md 4.I): for each concrete value
// in values, derive a guarding condition via condFactory, evaluate f under
// that condition via the realm's effect-capturing facility, and right-fold
// the resulting effects through JoinEffects. Precondition: len(values) > 1
// (spec.md section 7); violating it is a structural precondition error.
//
// The fold is right-associative with respect to the iteration order of
// values — the spec does not otherwise constrain this order, but (per
// spec.md 4.I's ordering note, grounded on the teacher's worklist
// comment "pop from end (LIFO) ... critical for array construction") a
// caller may rely on it being stable and the same as values' order.
func MapAndJoin(
	ctx context.Context,
	realm Realm,
	opts JoinOptions,
	logger Logger,
	values []Value,
	condFactory func(Value) Value,
	f func(ctx context.Context, v Value) (*Completion, error),
	factory ConditionalFactory,
	throwFactory ThrowConditionalFactory,
	bindingFactory BindingConditionalFactory,
) (Value, error) {
	if err := assertOrError(opts, len(values) > 1, "MapAndJoin: requires more than one value, got %d", len(values)); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = NewNoopLogger()
	}
	logger = logger.With(map[string]any{"op": "mapAndJoin", "values": len(values)})
	logger.Infof("starting n-ary join")

	var acc *Effects
	for i, v := range values {
		cond := condFactory(v)
		assertf(cond != nil && cond.Kind() == KindAbstract, "MapAndJoin: condFactory must yield an Abstract value")

		label := "mapAndJoin"
		eff, err := realm.EvaluateForEffects(ctx, cond, func(ctx context.Context) (*Completion, error) {
			return f(ctx, v)
		}, label)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			acc = eff
			logger.Debugf("seeded accumulator from value %d: %s", i, effectSummary(acc))
			continue
		}
		acc = JoinEffects(realm, opts, logger, cond, eff, acc, factory, throwFactory, bindingFactory)
		logger.Debugf("folded value %d: %s", i, effectSummary(acc))
	}

	if err := realm.ApplyEffects(acc); err != nil {
		return nil, err
	}

	result, err := realm.ReturnOrThrowCompletion(acc.Result)
	if err != nil {
		logger.Infof("n-ary join completed with thrown error")
		return nil, err
	}
	logger.Infof("n-ary join completed")
	return result, nil
}
