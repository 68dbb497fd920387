package pipeline

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Crackersssss/teo/value"
)

func stringTransform(name string, fn func(string) string) Modifier {
	return &ModifierFunc{FuncName: name, Fn: func(ctx *Context) *Context {
		if ctx.Stage.Value.Kind() != value.String {
			return ctx.With(Invalid(name + ": expected a string value"))
		}
		return ctx.With(Val(value.Of.String(fn(ctx.Stage.Value.Str()))))
	}}
}

// Upper uppercases the carried string.
func Upper() Modifier { return stringTransform("upper", strings.ToUpper) }

// Lower lowercases the carried string.
func Lower() Modifier { return stringTransform("lower", strings.ToLower) }

// Trim trims leading/trailing whitespace from the carried string.
func Trim() Modifier { return stringTransform("trim", strings.TrimSpace) }

// PadStart left-pads the carried string with pad up to length.
func PadStart(length int, pad string) Modifier {
	return stringTransform("pad_start", func(s string) string {
		for len(s) < length {
			s = pad + s
		}
		return s
	})
}

// PadEnd right-pads the carried string with pad up to length.
func PadEnd(length int, pad string) Modifier {
	return stringTransform("pad_end", func(s string) string {
		for len(s) < length {
			s = s + pad
		}
		return s
	})
}

// RegexReplace replaces every match of pattern in the carried string with
// replacement.
func RegexReplace(pattern, replacement string) Modifier {
	re := regexp.MustCompile(pattern)
	return stringTransform("regex_replace", func(s string) string {
		return re.ReplaceAllString(s, replacement)
	})
}

func numberTransform(name string, fn func(float64) float64) Modifier {
	return &ModifierFunc{FuncName: name, Fn: func(ctx *Context) *Context {
		v := ctx.Stage.Value
		switch v.Kind() {
		case value.F32:
			return ctx.With(Val(value.Of.F32(float32(fn(float64(v.F32()))))))
		case value.F64:
			return ctx.With(Val(value.Of.F64(fn(v.F64()))))
		default:
			return ctx.With(Invalid(name + ": expected a float value"))
		}
	}}
}

// Abs returns the absolute value of the carried float.
func Abs() Modifier { return numberTransform("abs", math.Abs) }

// Ceil rounds the carried float up to the nearest integer.
func Ceil() Modifier { return numberTransform("ceil", math.Ceil) }

// Floor rounds the carried float down to the nearest integer.
func Floor() Modifier { return numberTransform("floor", math.Floor) }

// Round rounds the carried float to the nearest integer.
func Round() Modifier { return numberTransform("round", math.Round) }

// Push appends an item to the carried Vec.
func Push(item value.Value) Modifier {
	return &ModifierFunc{FuncName: "push", Fn: func(ctx *Context) *Context {
		v := ctx.Stage.Value
		if v.Kind() != value.Vec {
			return ctx.With(Invalid("push: expected a vec value"))
		}
		next := append(append([]value.Value{}, v.List()...), item)
		return ctx.With(Val(value.Of.Vec(next)))
	}}
}

// Reverse replaces the carried Vec with a new Vec holding its items in
// reverse order.
func Reverse() Modifier {
	return &ModifierFunc{FuncName: "reverse", Fn: func(ctx *Context) *Context {
		v := ctx.Stage.Value
		if v.Kind() != value.Vec {
			return ctx.With(Invalid("reverse: expected a vec value"))
		}
		list := v.List()
		out := make([]value.Value, len(list))
		for i, item := range list {
			out[len(list)-1-i] = item
		}
		return ctx.With(Val(value.Of.Vec(out)))
	}}
}

// Sort sorts the carried Vec using value.Less.
func Sort() Modifier {
	return &ModifierFunc{FuncName: "sort", Fn: func(ctx *Context) *Context {
		v := ctx.Stage.Value
		if v.Kind() != value.Vec {
			return ctx.With(Invalid("sort: expected a vec value"))
		}
		out := append([]value.Value{}, v.List()...)
		sort.Slice(out, func(i, j int) bool { return value.Less(out[i], out[j]) })
		return ctx.With(Val(value.Of.Vec(out)))
	}}
}

// BcryptHash replaces the carried string with its bcrypt hash, grounded in
// heat/bcrypt.go.
func BcryptHash() Modifier {
	return &ModifierFunc{FuncName: "bcrypt_hash", Fn: func(ctx *Context) *Context {
		if ctx.Stage.Value.Kind() != value.String {
			return ctx.With(Invalid("bcrypt_hash: expected a string value"))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(ctx.Stage.Value.Str()), bcrypt.DefaultCost)
		if err != nil {
			return ctx.With(Invalid(err.Error()))
		}
		return ctx.With(Val(value.Of.String(string(hash))))
	}}
}

// BcryptVerify compares the carried string against a stored hash read from
// the named field, setting ConditionTrue/ConditionFalse rather than
// altering the value.
func BcryptVerify(hashField string) Modifier {
	return &ModifierFunc{FuncName: "bcrypt_verify", Fn: func(ctx *Context) *Context {
		if ctx.Object == nil {
			return ctx.With(Invalid("bcrypt_verify: no object in context"))
		}
		stored, ok := ctx.Object.Field(hashField)
		if !ok || stored.Kind() != value.String {
			return ctx.With(Invalid("bcrypt_verify: missing hash field " + hashField))
		}
		err := bcrypt.CompareHashAndPassword([]byte(stored.Str()), []byte(ctx.Stage.Value.Str()))
		if err != nil {
			return ctx.With(False(ctx.Stage.Value))
		}
		return ctx.With(True(ctx.Stage.Value))
	}}
}
