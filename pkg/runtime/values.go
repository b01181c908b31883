package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNone
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNone:
		return "None"
	case KindClass:
		return "class"
	case KindInstance:
		return "class instance"
	default:
		return "unknown"
	}
}

// Value is implemented by every Mython runtime value.
type Value interface {
	Kind() Kind
}

// NumberValue is an integer (spec: only integer arithmetic).
type NumberValue struct{ Val int }

func (NumberValue) Kind() Kind { return KindNumber }

// StringValue is an immutable string.
type StringValue struct{ Val string }

func (StringValue) Kind() Kind { return KindString }

// BoolValue is a boolean.
type BoolValue struct{ Val bool }

func (BoolValue) Kind() Kind { return KindBool }

// Holder is a shared-ownership reference cell. An empty Holder (zero
// value, Val == nil) is the sole representation of None: Go's garbage
// collector already keeps any Value referenced by a live Holder alive, so
// Holder itself only needs to carry the "is this None" distinction.
type Holder struct {
	Val Value
}

// NewHolder wraps v in a non-empty Holder.
func NewHolder(v Value) Holder { return Holder{Val: v} }

// None returns an empty Holder.
func None() Holder { return Holder{} }

// IsNone reports whether h carries no value.
func (h Holder) IsNone() bool { return h.Val == nil }

// IsTrue reports the truthiness of h: numbers are true iff nonzero,
// strings iff non-empty, None is always false, and classes and class
// instances are always false.
func IsTrue(h Holder) bool {
	switch v := h.Val.(type) {
	case BoolValue:
		return v.Val
	case NumberValue:
		return v.Val != 0
	case StringValue:
		return v.Val != ""
	default:
		return false
	}
}

// Stringify renders h the way Print would, without dispatching to a
// __str__ method — callers needing that dispatch (Print, the `str`
// builtin) go through the interpreter package instead, which has access
// to Call. This function only handles the primitive and "no dunder
// available" cases.
func Stringify(h Holder) string {
	if h.IsNone() {
		return "None"
	}
	switch v := h.Val.(type) {
	case NumberValue:
		return fmt.Sprintf("%d", v.Val)
	case StringValue:
		return v.Val
	case BoolValue:
		if v.Val {
			return "True"
		}
		return "False"
	case *Class:
		return "Class " + v.Name
	case *Instance:
		return "<instance of " + v.Class.Name + ">"
	default:
		return fmt.Sprintf("%v", v)
	}
}
