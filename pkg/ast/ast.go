// Package ast defines the Mython statement/expression tree. Nodes are
// plain data; evaluation lives in pkg/interpreter, which dispatches over
// these types by their concrete Go type.
package ast

// Node is implemented by every statement/expression node.
type Node interface {
	nodeType() string
}

type base struct{ typ string }

func (b base) nodeType() string { return b.typ }

// BinaryOpKind enumerates the binary operators.
type BinaryOpKind int

const (
	OpAdd BinaryOpKind = iota
	OpSub
	OpMult
	OpDiv
	OpOr
	OpAnd
	OpEq
	OpNotEq
	OpLess
	OpGreater
	OpLessOrEq
	OpGreaterOrEq
)

// UnaryOpKind enumerates the unary operators.
type UnaryOpKind int

const (
	OpStringify UnaryOpKind = iota
	OpNot
	OpNeg
)

// ValueConstant is a literal Number, String, or Bool.
type ValueConstant struct {
	base
	Kind  string // "number" | "string" | "bool"
	Num   int
	Str   string
	Bool  bool
}

func NewNumberConstant(n int) *ValueConstant   { return &ValueConstant{base{"ValueConstant"}, "number", n, "", false} }
func NewStringConstant(s string) *ValueConstant { return &ValueConstant{base{"ValueConstant"}, "string", 0, s, false} }
func NewBoolConstant(b bool) *ValueConstant    { return &ValueConstant{base{"ValueConstant"}, "bool", 0, "", b} }

// NoneLiteral is the `None` expression.
type NoneLiteral struct{ base }

func NewNoneLiteral() *NoneLiteral { return &NoneLiteral{base{"NoneLiteral"}} }

// VariableValue is a dotted-name reference: Head[.Tail...].
type VariableValue struct {
	base
	Head string
	Tail []string
}

func NewVariableValue(names []string) *VariableValue {
	return &VariableValue{base{"VariableValue"}, names[0], names[1:]}
}

// Assignment binds Name to Rhs in the current scope.
type Assignment struct {
	base
	Name string
	Rhs  Node
}

func NewAssignment(name string, rhs Node) *Assignment {
	return &Assignment{base{"Assignment"}, name, rhs}
}

// FieldAssignment stores Rhs into Object's Field.
type FieldAssignment struct {
	base
	Object *VariableValue
	Field  string
	Rhs    Node
}

func NewFieldAssignment(object *VariableValue, field string, rhs Node) *FieldAssignment {
	return &FieldAssignment{base{"FieldAssignment"}, object, field, rhs}
}

// Print evaluates Args left-to-right, space-joined, newline-terminated.
type Print struct {
	base
	Args []Node
}

func NewPrint(args []Node) *Print { return &Print{base{"Print"}, args} }

// MethodCall invokes Name on Object with Args.
type MethodCall struct {
	base
	Object Node
	Name   string
	Args   []Node
}

func NewMethodCall(object Node, name string, args []Node) *MethodCall {
	return &MethodCall{base{"MethodCall"}, object, name, args}
}

// NewInstance allocates an instance of the class named ClassName.
type NewInstance struct {
	base
	ClassName string
	Args      []Node
}

func NewNewInstance(className string, args []Node) *NewInstance {
	return &NewInstance{base{"NewInstance"}, className, args}
}

// UnaryOp applies Op to Arg.
type UnaryOp struct {
	base
	Op  UnaryOpKind
	Arg Node
}

func NewUnaryOp(op UnaryOpKind, arg Node) *UnaryOp {
	return &UnaryOp{base{"UnaryOp"}, op, arg}
}

// BinaryOp applies Op to Lhs and Rhs.
type BinaryOp struct {
	base
	Op  BinaryOpKind
	Lhs Node
	Rhs Node
}

func NewBinaryOp(op BinaryOpKind, lhs, rhs Node) *BinaryOp {
	return &BinaryOp{base{"BinaryOp"}, op, lhs, rhs}
}

// Compound evaluates its Statements in order and yields None.
type Compound struct {
	base
	Statements []Node
}

func NewCompound(stmts ...Node) *Compound { return &Compound{base{"Compound"}, stmts} }

func (c *Compound) Add(stmt Node) { c.Statements = append(c.Statements, stmt) }

// MethodBody wraps a method's Compound and converts a non-local return
// back into an ordinary value.
type MethodBody struct {
	base
	Body Node
}

func NewMethodBody(body Node) *MethodBody { return &MethodBody{base{"MethodBody"}, body} }

// Return exits the enclosing MethodBody with the value of Expr.
type Return struct {
	base
	Expr Node
}

func NewReturn(expr Node) *Return { return &Return{base{"Return"}, expr} }

// MethodDecl is one `def` inside a class body.
type MethodDecl struct {
	Name   string
	Params []string
	Body   *MethodBody
}

// ClassDefinition binds a new class named Name, with the given methods and
// an optional Parent class name, into the current scope.
type ClassDefinition struct {
	base
	Name    string
	Parent  string // "" if no parent
	Methods []*MethodDecl
}

func NewClassDefinition(name, parent string, methods []*MethodDecl) *ClassDefinition {
	return &ClassDefinition{base{"ClassDefinition"}, name, parent, methods}
}

// IfElse branches on Condition; Else may be nil.
type IfElse struct {
	base
	Condition Node
	Then      Node
	Else      Node
}

func NewIfElse(condition, then, els Node) *IfElse {
	return &IfElse{base{"IfElse"}, condition, then, els}
}
