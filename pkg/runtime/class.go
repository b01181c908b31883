package runtime

// Method is a class method: a name, its formal parameter names, and an
// owned executable body (an *ast.MethodBody, kept as `any` here so that
// pkg/runtime does not depend on pkg/ast — the interpreter package casts
// it back when it invokes the method).
type Method struct {
	Name    string
	Params  []string
	Body    any
}

// Class holds an ordered method list and an optional parent class.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

func (*Class) Kind() Kind { return KindClass }

// Lookup returns the first method named name found by searching this
// class's own method list, then its parent's, and so on.
func (c *Class) Lookup(name string) *Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	if c.Parent != nil {
		return c.Parent.Lookup(name)
	}
	return nil
}

// HasMethod reports whether Lookup(name) finds a method taking exactly
// arity arguments.
func (c *Class) HasMethod(name string, arity int) bool {
	m := c.Lookup(name)
	return m != nil && len(m.Params) == arity
}

// Instance is a live object bound to a Class, with a mutable field map.
type Instance struct {
	Class  *Class
	Fields map[string]Holder
}

func (*Instance) Kind() Kind { return KindInstance }

// NewInstance allocates an instance with an empty field map.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Holder)}
}
