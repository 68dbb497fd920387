package pipeline

import (
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/Crackersssss/teo/value"
)

// IsEmail validates that the carried string is a well-formed email address,
// grounded in coal/model.go's use of govalidator.
func IsEmail() Modifier {
	return &ModifierFunc{FuncName: "is_email", Fn: func(ctx *Context) *Context {
		if ctx.Stage.Value.Kind() != value.String {
			return ctx.With(Invalid("is_email: expected a string value"))
		}
		if !govalidator.IsEmail(ctx.Stage.Value.Str()) {
			return ctx.With(Invalid("Value is not a valid email address."))
		}
		return ctx
	}}
}

// IsURL validates that the carried string is a well-formed URL.
func IsURL() Modifier {
	return &ModifierFunc{FuncName: "is_url", Fn: func(ctx *Context) *Context {
		if ctx.Stage.Value.Kind() != value.String {
			return ctx.With(Invalid("is_url: expected a string value"))
		}
		if !govalidator.IsURL(ctx.Stage.Value.Str()) {
			return ctx.With(Invalid("Value is not a valid URL."))
		}
		return ctx
	}}
}

// IsPrefixOf validates that the carried string is a prefix of other.
func IsPrefixOf(other string) Modifier {
	return &ModifierFunc{FuncName: "is_prefix_of", Fn: func(ctx *Context) *Context {
		if ctx.Stage.Value.Kind() != value.String {
			return ctx.With(Invalid("is_prefix_of: expected a string value"))
		}
		if !strings.HasPrefix(other, ctx.Stage.Value.Str()) {
			return ctx.With(Invalid("Value is not a prefix of the expected string."))
		}
		return ctx
	}}
}

// Match validates that the carried string matches the given regular
// expression.
func Match(pattern string) Modifier {
	re := regexp.MustCompile(pattern)
	return &ModifierFunc{FuncName: "match", Fn: func(ctx *Context) *Context {
		if ctx.Stage.Value.Kind() != value.String {
			return ctx.With(Invalid("match: expected a string value"))
		}
		if !re.MatchString(ctx.Stage.Value.Str()) {
			return ctx.With(Invalid("Value does not match the expected pattern."))
		}
		return ctx
	}}
}

// Required validates that the carried value is not null.
func Required() Modifier {
	return &ModifierFunc{FuncName: "required", Fn: func(ctx *Context) *Context {
		if ctx.Stage.Value.IsNull() {
			return ctx.With(Invalid("Value is required."))
		}
		return ctx
	}}
}

// Range validates that the carried numeric value falls within [min, max].
func Range(min, max float64) Modifier {
	return &ModifierFunc{FuncName: "range", Fn: func(ctx *Context) *Context {
		f, ok := asFloat(ctx.Stage.Value)
		if !ok {
			return ctx.With(Invalid("range: expected a numeric value"))
		}
		if f < min || f > max {
			return ctx.With(Invalid("Value is out of range."))
		}
		return ctx
	}}
}

func asFloat(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.F32:
		return float64(v.F32()), true
	case value.F64:
		return v.F64(), true
	case value.I8, value.I16, value.I32, value.I64:
		return float64(v.Int()), true
	case value.U8, value.U16, value.U32, value.U64:
		return float64(v.Uint()), true
	case value.Decimal:
		f, _ := v.DecimalValue().Float64()
		return f, true
	default:
		return 0, false
	}
}
