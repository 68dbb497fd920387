package pipeline

// If runs cond; if it yields ConditionTrue, runs then against the original
// stage value; if ConditionFalse and els is non-empty, runs els instead.
// Any other stage (plain Value or Invalid) passes through unchanged.
func If(cond Pipeline, then Pipeline, els ...Pipeline) Modifier {
	return &ModifierFunc{FuncName: "if", Fn: func(ctx *Context) *Context {
		branched := cond.Process(ctx)
		if branched.Stage.IsInvalid() {
			return branched
		}
		switch {
		case branched.Stage.IsTrue():
			return then.Process(branched.With(Val(ctx.Stage.Value)))
		case branched.Stage.IsFalse() && len(els) > 0:
			return els[0].Process(branched.With(Val(ctx.Stage.Value)))
		default:
			return branched
		}
	}}
}

// All runs every modifier in the list against the original stage and
// succeeds (ConditionTrue) only if none of them produce ConditionFalse or
// Invalid.
func All(modifiers ...Modifier) Modifier {
	return &ModifierFunc{FuncName: "all", Fn: func(ctx *Context) *Context {
		original := ctx.Stage.Value
		for _, m := range modifiers {
			res := m.Call(ctx.With(Val(original)))
			if res.Stage.IsInvalid() || res.Stage.IsFalse() {
				return ctx.With(False(original))
			}
		}
		return ctx.With(True(original))
	}}
}

// Any runs every modifier in the list against the original stage and
// succeeds (ConditionTrue) if at least one produces ConditionTrue.
func Any(modifiers ...Modifier) Modifier {
	return &ModifierFunc{FuncName: "any", Fn: func(ctx *Context) *Context {
		original := ctx.Stage.Value
		for _, m := range modifiers {
			res := m.Call(ctx.With(Val(original)))
			if res.Stage.IsTrue() {
				return ctx.With(True(original))
			}
		}
		return ctx.With(False(original))
	}}
}
