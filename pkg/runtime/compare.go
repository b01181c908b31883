package runtime

// Caller dispatches a call to method on instance with the given actual
// arguments — the interpreter package implements this and passes itself
// into Equal/Less so runtime stays free of any dependency on ast/eval.
type Caller interface {
	Call(instance *Instance, method string, args []Holder) (Holder, error)
}

const (
	eqMethod   = "__eq__"
	lessMethod = "__lt__"
)

// Equal compares two Holders: primitive-vs-primitive compares payloads,
// an instance lhs dispatches to __eq__, two Nones are equal, anything
// else is a RuntimeError.
func Equal(caller Caller, lhs, rhs Holder) (bool, error) {
	if eq, matched := comparePrimitivesEqual(lhs, rhs); matched {
		return eq, nil
	}
	if inst, ok := lhs.Val.(*Instance); ok {
		if inst.Class.HasMethod(eqMethod, 1) {
			result, err := caller.Call(inst, eqMethod, []Holder{rhs})
			if err != nil {
				return false, err
			}
			return IsTrue(result), nil
		}
	}
	if lhs.IsNone() && rhs.IsNone() {
		return true, nil
	}
	return false, Errorf("cannot compare objects")
}

// Less compares two Holders: primitive-vs-primitive compares payloads, an
// instance lhs dispatches to __lt__, None is unordered.
func Less(caller Caller, lhs, rhs Holder) (bool, error) {
	if lt, matched := comparePrimitivesLess(lhs, rhs); matched {
		return lt, nil
	}
	if inst, ok := lhs.Val.(*Instance); ok {
		if inst.Class.HasMethod(lessMethod, 1) {
			result, err := caller.Call(inst, lessMethod, []Holder{rhs})
			if err != nil {
				return false, err
			}
			return IsTrue(result), nil
		}
	}
	return false, Errorf("cannot compare objects")
}

// NotEqual, Greater, LessOrEqual and GreaterOrEqual derive from Equal and
// Less by standard boolean algebra.

func NotEqual(caller Caller, lhs, rhs Holder) (bool, error) {
	eq, err := Equal(caller, lhs, rhs)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func Greater(caller Caller, lhs, rhs Holder) (bool, error) {
	lt, err := Less(caller, lhs, rhs)
	if err != nil {
		return false, err
	}
	eq, err := Equal(caller, lhs, rhs)
	if err != nil {
		return false, err
	}
	return !(lt || eq), nil
}

func LessOrEqual(caller Caller, lhs, rhs Holder) (bool, error) {
	gt, err := Greater(caller, lhs, rhs)
	if err != nil {
		return false, err
	}
	return !gt, nil
}

func GreaterOrEqual(caller Caller, lhs, rhs Holder) (bool, error) {
	lt, err := Less(caller, lhs, rhs)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

// comparePrimitivesEqual handles the homogeneous Bool/Number/String case
// for equality; matched reports whether both sides were the same
// primitive kind (leaving the caller to fall through to dunder dispatch
// otherwise).
func comparePrimitivesEqual(lhs, rhs Holder) (eq bool, matched bool) {
	switch l := lhs.Val.(type) {
	case BoolValue:
		if r, isBool := rhs.Val.(BoolValue); isBool {
			return l.Val == r.Val, true
		}
	case NumberValue:
		if r, isNum := rhs.Val.(NumberValue); isNum {
			return l.Val == r.Val, true
		}
	case StringValue:
		if r, isStr := rhs.Val.(StringValue); isStr {
			return l.Val == r.Val, true
		}
	}
	return false, false
}

func comparePrimitivesLess(lhs, rhs Holder) (lt bool, matched bool) {
	switch l := lhs.Val.(type) {
	case BoolValue:
		if r, isBool := rhs.Val.(BoolValue); isBool {
			return boolLess(l.Val, r.Val), true
		}
	case NumberValue:
		if r, isNum := rhs.Val.(NumberValue); isNum {
			return l.Val < r.Val, true
		}
	case StringValue:
		if r, isStr := rhs.Val.(StringValue); isStr {
			return l.Val < r.Val, true
		}
	}
	return false, false
}

func boolLess(a, b bool) bool {
	return !a && b
}
