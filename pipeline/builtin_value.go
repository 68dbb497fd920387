package pipeline

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/Crackersssss/teo/value"
)

// Literal returns a modifier that replaces the stage with a fixed value,
// ignoring whatever was carried before.
func Literal(v value.Value) Modifier {
	return &ModifierFunc{FuncName: "literal", Fn: func(ctx *Context) *Context {
		return ctx.With(Val(v))
	}}
}

// ObjectField returns a modifier that replaces the stage with the value of
// the named field read from ctx.Object.
func ObjectField(name string) Modifier {
	return &ModifierFunc{FuncName: "object_field", Fn: func(ctx *Context) *Context {
		if ctx.Object == nil {
			return ctx.With(Invalid(fmt.Sprintf("no object in context to read field %q from", name)))
		}
		v, ok := ctx.Object.Field(name)
		if !ok {
			return ctx.With(Invalid(fmt.Sprintf("unknown field %q", name)))
		}
		return ctx.With(Val(v))
	}}
}

// RandomUUID returns a modifier that replaces the stage with a new random
// (v4) UUID string.
func RandomUUID() Modifier {
	return &ModifierFunc{FuncName: "random_uuid", Fn: func(ctx *Context) *Context {
		return ctx.With(Val(value.Of.String(uuid.New().String())))
	}}
}

// RandomCUID returns a modifier that replaces the stage with a new sortable
// compact id string. The pack carries no cuid implementation; xid is used
// as the closest existing "sortable compact id" generator, see SPEC_FULL.md.
func RandomCUID() Modifier {
	return &ModifierFunc{FuncName: "random_cuid", Fn: func(ctx *Context) *Context {
		return ctx.With(Val(value.Of.String(xid.New().String())))
	}}
}

// RandomString returns a modifier that replaces the stage with a random
// string of the given length, drawn from alphanum.
func RandomString(length int) Modifier {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	return &ModifierFunc{FuncName: "random_string", Fn: func(ctx *Context) *Context {
		out := make([]byte, length)
		for i := range out {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
			if err != nil {
				return ctx.With(Invalid(err.Error()))
			}
			out[i] = alphabet[n.Int64()]
		}
		return ctx.With(Val(value.Of.String(string(out))))
	}}
}

// RandomNumber returns a modifier that replaces the stage with a random
// integer in [min, max).
func RandomNumber(min, max int64) Modifier {
	return &ModifierFunc{FuncName: "random_number", Fn: func(ctx *Context) *Context {
		if max <= min {
			return ctx.With(Invalid("random_number: max must be greater than min"))
		}
		n, err := rand.Int(rand.Reader, big.NewInt(max-min))
		if err != nil {
			return ctx.With(Invalid(err.Error()))
		}
		return ctx.With(Val(value.Of.Int(value.I64, min+n.Int64())))
	}}
}

// Now returns a modifier that replaces the stage with the current UTC
// timestamp.
func Now() Modifier {
	return &ModifierFunc{FuncName: "now", Fn: func(ctx *Context) *Context {
		return ctx.With(Val(value.Of.DateTime(time.Now())))
	}}
}

// Today returns a modifier that replaces the stage with today's date in UTC.
func Today() Modifier {
	return &ModifierFunc{FuncName: "today", Fn: func(ctx *Context) *Context {
		return ctx.With(Val(value.Of.Date(civil.DateOf(time.Now().UTC()))))
	}}
}
