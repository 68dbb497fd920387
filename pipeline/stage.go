package pipeline

import "github.com/Crackersssss/teo/value"

// StageKind identifies which of the four Stage variants is carried by a
// Context at a given point in a pipeline.
type StageKind uint8

// The closed set of stage variants. Control modifiers (if/then/else/all/any)
// pattern-match on these.
const (
	// StageValue carries a plain value with no control disposition.
	StageValue StageKind = iota
	// StageConditionTrue carries a value alongside a positive predicate
	// result, consumed by a following "then" branch.
	StageConditionTrue
	// StageConditionFalse carries a value alongside a negative predicate
	// result, consumed by a following "else" branch.
	StageConditionFalse
	// StageInvalid short-circuits the remaining modifiers in the pipeline.
	StageInvalid
)

// Stage is the carrier threaded between modifiers: the current value plus a
// control disposition.
type Stage struct {
	Kind   StageKind
	Value  value.Value
	Reason string
}

// Val builds a plain StageValue.
func Val(v value.Value) Stage { return Stage{Kind: StageValue, Value: v} }

// True builds a StageConditionTrue carrying the same value.
func True(v value.Value) Stage { return Stage{Kind: StageConditionTrue, Value: v} }

// False builds a StageConditionFalse carrying the same value.
func False(v value.Value) Stage { return Stage{Kind: StageConditionFalse, Value: v} }

// Invalid builds a StageInvalid carrying the validation failure reason.
func Invalid(reason string) Stage { return Stage{Kind: StageInvalid, Reason: reason} }

// IsInvalid reports whether the stage short-circuits its pipeline.
func (s Stage) IsInvalid() bool { return s.Kind == StageInvalid }

// IsTrue reports whether the stage is a positive predicate result.
func (s Stage) IsTrue() bool { return s.Kind == StageConditionTrue }

// IsFalse reports whether the stage is a negative predicate result.
func (s Stage) IsFalse() bool { return s.Kind == StageConditionFalse }
