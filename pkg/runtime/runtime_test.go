package runtime

import "testing"

func TestIsTrueTable(t *testing.T) {
	cases := []struct {
		name string
		h    Holder
		want bool
	}{
		{"zero number", NewHolder(NumberValue{0}), false},
		{"nonzero number", NewHolder(NumberValue{7}), true},
		{"empty string", NewHolder(StringValue{""}), false},
		{"nonempty string", NewHolder(StringValue{"x"}), true},
		{"false bool", NewHolder(BoolValue{false}), false},
		{"true bool", NewHolder(BoolValue{true}), true},
		{"none", None(), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsTrue(c.h); got != c.want {
				t.Fatalf("IsTrue(%v) = %v, want %v", c.h, got, c.want)
			}
		})
	}
}

func TestClassMethodLookupWalksParents(t *testing.T) {
	a := &Class{Name: "A", Methods: []*Method{{Name: "m", Params: nil}}}
	b := &Class{Name: "B", Parent: a}
	c := &Class{Name: "C", Parent: b}

	m := c.Lookup("m")
	if m == nil {
		t.Fatal("expected to find method m via parent chain")
	}
	if !c.HasMethod("m", 0) {
		t.Fatal("expected HasMethod to walk the parent chain")
	}
	if c.HasMethod("m", 1) {
		t.Fatal("arity mismatch should not match")
	}
	if c.HasMethod("nope", 0) {
		t.Fatal("unknown method should not match")
	}
}

func TestScopeIsFlat(t *testing.T) {
	s := NewScope()
	s.Set("x", NewHolder(NumberValue{1}))
	if _, ok := s.Get("x"); !ok {
		t.Fatal("expected x to be bound")
	}
	if _, ok := s.Get("y"); ok {
		t.Fatal("y should be unbound")
	}
}

type stubCaller struct {
	result Holder
	err    error
}

func (s stubCaller) Call(instance *Instance, method string, args []Holder) (Holder, error) {
	return s.result, s.err
}

func TestEqualPrimitives(t *testing.T) {
	caller := stubCaller{}
	eq, err := Equal(caller, NewHolder(NumberValue{5}), NewHolder(NumberValue{5}))
	if err != nil || !eq {
		t.Fatalf("expected 5 == 5, got %v, %v", eq, err)
	}
	eq, err = Equal(caller, NewHolder(StringValue{"a"}), NewHolder(StringValue{"b"}))
	if err != nil || eq {
		t.Fatalf("expected a != b, got %v, %v", eq, err)
	}
	eq, err = Equal(caller, None(), None())
	if err != nil || !eq {
		t.Fatalf("expected None == None, got %v, %v", eq, err)
	}
}

func TestEqualDispatchesToDunder(t *testing.T) {
	class := &Class{Name: "Point", Methods: []*Method{{Name: "__eq__", Params: []string{"other"}}}}
	inst := NewInstance(class)
	caller := stubCaller{result: NewHolder(BoolValue{true})}
	eq, err := Equal(caller, NewHolder(inst), NewHolder(inst))
	if err != nil || !eq {
		t.Fatalf("expected dunder dispatch to report equal, got %v, %v", eq, err)
	}
}

func TestLessUnorderedTypesError(t *testing.T) {
	caller := stubCaller{}
	_, err := Less(caller, NewHolder(NumberValue{1}), NewHolder(StringValue{"a"}))
	if err == nil {
		t.Fatal("expected an error comparing incompatible types")
	}
}

func TestComparisonConsistency(t *testing.T) {
	caller := stubCaller{}
	pairs := [][2]Holder{
		{NewHolder(NumberValue{1}), NewHolder(NumberValue{2})},
		{NewHolder(NumberValue{2}), NewHolder(NumberValue{2})},
		{NewHolder(NumberValue{3}), NewHolder(NumberValue{2})},
	}
	for _, p := range pairs {
		eq, _ := Equal(caller, p[0], p[1])
		lt, _ := Less(caller, p[0], p[1])
		gt, _ := Less(caller, p[1], p[0])
		count := 0
		for _, b := range []bool{eq, lt, gt} {
			if b {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("exactly one of Equal/Less/Greater must hold for %v, %v: eq=%v lt=%v gt=%v", p[0], p[1], eq, lt, gt)
		}
	}
}

func TestStringifyPrimitivesAndInstance(t *testing.T) {
	if got := Stringify(NewHolder(NumberValue{42})); got != "42" {
		t.Fatalf("got %q", got)
	}
	if got := Stringify(NewHolder(BoolValue{true})); got != "True" {
		t.Fatalf("got %q", got)
	}
	if got := Stringify(None()); got != "None" {
		t.Fatalf("got %q", got)
	}
	class := &Class{Name: "Rect"}
	if got := Stringify(NewHolder(class)); got != "Class Rect" {
		t.Fatalf("got %q", got)
	}
	inst := NewInstance(class)
	if got := Stringify(NewHolder(inst)); got != "<instance of Rect>" {
		t.Fatalf("got %q", got)
	}
}
