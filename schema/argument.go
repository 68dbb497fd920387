package schema

import (
	"github.com/Crackersssss/teo/pipeline"
	"github.com/Crackersssss/teo/value"
)

// ArgumentKind identifies which of the three Argument variants is set.
type ArgumentKind uint8

const (
	ValueArgumentKind ArgumentKind = iota
	PipelineArgumentKind
	FunctionArgumentKind
)

// ArgumentFunc is the callable variant of Argument, given the full pipeline
// Context so it can read the object being saved or the request Env.
type ArgumentFunc func(ctx *pipeline.Context) (value.Value, error)

// Argument unifies the three ways a default value provider can be declared:
// a fixed literal, a pipeline to run, or an arbitrary Go function.
type Argument struct {
	Kind     ArgumentKind
	Value    value.Value
	Pipeline pipeline.Pipeline
	Func     ArgumentFunc
}

// ValueArgument builds a literal default.
func ValueArgument(v value.Value) *Argument {
	return &Argument{Kind: ValueArgumentKind, Value: v}
}

// PipelineArgument builds a pipeline-evaluated default.
func PipelineArgument(p pipeline.Pipeline) *Argument {
	return &Argument{Kind: PipelineArgumentKind, Pipeline: p}
}

// FunctionArgument builds a callable default.
func FunctionArgument(fn ArgumentFunc) *Argument {
	return &Argument{Kind: FunctionArgumentKind, Func: fn}
}

// Evaluate resolves the argument to a value given a pipeline context,
// uniform across the three variants from the object's perspective.
func (a *Argument) Evaluate(ctx *pipeline.Context) (value.Value, error) {
	switch a.Kind {
	case ValueArgumentKind:
		return a.Value, nil
	case PipelineArgumentKind:
		result := a.Pipeline.Process(ctx)
		if result.Stage.IsInvalid() {
			return value.Value{}, &InvalidDefaultError{Reason: result.Stage.Reason}
		}
		return result.Stage.Value, nil
	case FunctionArgumentKind:
		return a.Func(ctx)
	default:
		return value.Value{}, nil
	}
}

// InvalidDefaultError is returned when a PipelineArgument default produces
// an Invalid stage.
type InvalidDefaultError struct {
	Reason string
}

func (e *InvalidDefaultError) Error() string { return e.Reason }
