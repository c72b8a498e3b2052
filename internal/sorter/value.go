package sorter

import "github.com/tessro/uampc/internal/core"

// Kind is the comparison class of a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindDuration
	KindList
)

// Value is a sortable attribute. The zero Value is the number 0.
//
// Strings compare by collation ignoring case and accents, durations by
// total nanoseconds, lists by length and numbers numerically. Missing
// attributes should be reported as the zero value of their kind, which
// sorts first.
type Value struct {
	kind Kind
	str  string
	num  float64
	dur  core.Duration
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int returns a numeric value.
func Int(n int) Value {
	return Value{kind: KindNumber, num: float64(n)}
}

// Float returns a numeric value.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Duration returns a duration value.
func Duration(d core.Duration) Value {
	return Value{kind: KindDuration, dur: d}
}

// List returns a value comparing by the number of entries in l.
func List[E any](l []E) Value {
	return Value{kind: KindList, num: float64(len(l))}
}

// Kind returns the value's comparison class.
func (v Value) Kind() Kind {
	return v.kind
}
