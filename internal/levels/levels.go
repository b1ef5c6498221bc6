// Package levels maps a continuous skill level onto concrete generation
// parameters for each game domain, and onto the display tier shown to the
// player.
//
// Every mapping clamps its input to [MinLevel, MaxLevel], is deterministic,
// and is monotonic per field over that range.
package levels

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinLevel = 1.0
	MaxLevel = 50.0
)

// Clamp restricts level to [MinLevel, MaxLevel]. NaN maps to MinLevel.
func Clamp(level float64) float64 {
	if math.IsNaN(level) {
		return MinLevel
	}
	return math.Max(MinLevel, math.Min(MaxLevel, level))
}

// Round returns the nearest whole level within range.
func Round(level float64) int {
	return int(math.Round(Clamp(level)))
}

// Operation is an arithmetic operator a domain can enable.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Symbol returns the operator as shown in question text.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "x"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// Field is one named knob in a params record, rendered for display.
type Field struct {
	Name  string
	Value string
}

// Params is implemented by every domain params record.
type Params interface {
	Fields() []Field
	DisplayTier() Tier
}

// lerp interpolates linearly between (x0, y0) and (x1, y1), holding the end
// values outside the segment.
func lerp(x, x0, x1, y0, y1 float64) float64 {
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// segment is one piece of a piecewise-linear curve.
type segment struct {
	from, to   float64
	fromV, toV float64
}

// piecewise evaluates consecutive segments; segments must be ordered and
// contiguous.
func piecewise(x float64, segs ...segment) float64 {
	for _, s := range segs {
		if x <= s.to {
			return lerp(x, s.from, s.to, s.fromV, s.toV)
		}
	}
	last := segs[len(segs)-1]
	return last.toV
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func enabledOps(level float64, unlocks []opUnlock) []Operation {
	ops := make([]Operation, 0, len(unlocks))
	for _, u := range unlocks {
		if level >= u.at {
			ops = append(ops, u.op)
		}
	}
	return ops
}

type opUnlock struct {
	op Operation
	at float64
}

func joinOps(ops []Operation) string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = string(o)
	}
	return strings.Join(parts, ",")
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
