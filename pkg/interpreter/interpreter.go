// Package interpreter walks an ast.Node tree and evaluates it against a
// runtime.Scope.
package interpreter

import (
	"fmt"
	"io"
	"strings"

	"mython/pkg/ast"
	"mython/pkg/parser"
	"mython/pkg/runtime"
)

// returnSignal unwinds the call stack up to the enclosing MethodBody by
// implementing error, so it travels the same call-return channel as a
// fatal error rather than needing a separate panic/recover pair.
type returnSignal struct {
	value runtime.Holder
}

func (r *returnSignal) Error() string { return "return outside a method body" }

// Interpreter executes a parsed program against a global scope. It
// implements runtime.Caller so runtime.Equal/Less can dispatch to
// user-defined __eq__/__lt__ without runtime importing this package.
type Interpreter struct {
	global *runtime.Scope
	ctx    *runtime.Context
	Trace  func(stmt ast.Node)
}

// New returns an Interpreter whose Print output goes to w.
func New(w io.Writer) *Interpreter {
	return &Interpreter{global: runtime.NewScope(), ctx: runtime.NewContext(w)}
}

// Global exposes the interpreter's global scope, so a REPL can keep it
// alive across separately-parsed submissions.
func (interp *Interpreter) Global() *runtime.Scope { return interp.global }

// SetOutput redirects where Print writes, so a REPL can capture one
// submission's output at a time while reusing the same global scope.
func (interp *Interpreter) SetOutput(w io.Writer) { interp.ctx.Output = w }

// Run parses src and executes it to completion.
func Run(src string, w io.Writer) error {
	interp := New(w)
	return interp.RunProgram(src)
}

// RunProgram parses src and executes it against interp's global scope.
func (interp *Interpreter) RunProgram(src string) error {
	prog, err := parser.Parse(src)
	if err != nil {
		return err
	}
	_, err = interp.Execute(prog, interp.global)
	if _, isReturn := err.(*returnSignal); isReturn {
		return runtime.Errorf("return outside a method body")
	}
	return err
}

// Execute dispatches on the dynamic type of node, evaluating it in scope.
func (interp *Interpreter) Execute(node ast.Node, scope *runtime.Scope) (runtime.Holder, error) {
	switch n := node.(type) {
	case *ast.ValueConstant:
		return interp.execValueConstant(n)
	case *ast.NoneLiteral:
		return runtime.None(), nil
	case *ast.VariableValue:
		return interp.execVariableValue(n, scope)
	case *ast.Assignment:
		return interp.execAssignment(n, scope)
	case *ast.FieldAssignment:
		return interp.execFieldAssignment(n, scope)
	case *ast.Print:
		return interp.execPrint(n, scope)
	case *ast.MethodCall:
		return interp.execMethodCall(n, scope)
	case *ast.NewInstance:
		return interp.execNewInstance(n, scope)
	case *ast.UnaryOp:
		return interp.execUnaryOp(n, scope)
	case *ast.BinaryOp:
		return interp.execBinaryOp(n, scope)
	case *ast.Compound:
		return interp.execCompound(n, scope)
	case *ast.MethodBody:
		return interp.execMethodBody(n, scope)
	case *ast.Return:
		return interp.execReturn(n, scope)
	case *ast.ClassDefinition:
		return interp.execClassDefinition(n, scope)
	case *ast.IfElse:
		return interp.execIfElse(n, scope)
	default:
		return runtime.None(), runtime.Errorf("cannot execute node of type %T", node)
	}
}

func (interp *Interpreter) execValueConstant(n *ast.ValueConstant) (runtime.Holder, error) {
	switch n.Kind {
	case "number":
		return runtime.NewHolder(runtime.NumberValue{Val: n.Num}), nil
	case "string":
		return runtime.NewHolder(runtime.StringValue{Val: n.Str}), nil
	case "bool":
		return runtime.NewHolder(runtime.BoolValue{Val: n.Bool}), nil
	default:
		return runtime.None(), runtime.Errorf("unknown constant kind %q", n.Kind)
	}
}

func (interp *Interpreter) execVariableValue(n *ast.VariableValue, scope *runtime.Scope) (runtime.Holder, error) {
	holder, ok := scope.Get(n.Head)
	if !ok {
		return runtime.None(), runtime.Errorf("name '%s' is not defined", n.Head)
	}
	for _, field := range n.Tail {
		inst, ok := holder.Val.(*runtime.Instance)
		if !ok {
			return runtime.None(), runtime.Errorf("'%s' has no field '%s'", n.Head, field)
		}
		holder, ok = inst.Fields[field]
		if !ok {
			return runtime.None(), runtime.Errorf("instance of %s has no field '%s'", inst.Class.Name, field)
		}
	}
	return holder, nil
}

func (interp *Interpreter) execAssignment(n *ast.Assignment, scope *runtime.Scope) (runtime.Holder, error) {
	val, err := interp.Execute(n.Rhs, scope)
	if err != nil {
		return runtime.None(), err
	}
	scope.Set(n.Name, val)
	return val, nil
}

func (interp *Interpreter) execFieldAssignment(n *ast.FieldAssignment, scope *runtime.Scope) (runtime.Holder, error) {
	objHolder, err := interp.execVariableValue(n.Object, scope)
	if err != nil {
		return runtime.None(), err
	}
	inst, ok := objHolder.Val.(*runtime.Instance)
	if !ok {
		return runtime.None(), runtime.Errorf("cannot assign field '%s' on a non-instance value", n.Field)
	}
	val, err := interp.Execute(n.Rhs, scope)
	if err != nil {
		return runtime.None(), err
	}
	inst.Fields[n.Field] = val
	return val, nil
}

func (interp *Interpreter) execPrint(n *ast.Print, scope *runtime.Scope) (runtime.Holder, error) {
	parts := make([]string, 0, len(n.Args))
	for _, arg := range n.Args {
		val, err := interp.Execute(arg, scope)
		if err != nil {
			return runtime.None(), err
		}
		s, err := interp.stringify(val)
		if err != nil {
			return runtime.None(), err
		}
		parts = append(parts, s)
	}
	if _, err := fmt.Fprintf(interp.ctx.Output, "%s\n", strings.Join(parts, " ")); err != nil {
		return runtime.None(), runtime.Errorf("write failed: %v", err)
	}
	return runtime.None(), nil
}

// stringify resolves a __str__ dunder before falling back to
// runtime.Stringify, since the runtime package cannot dispatch to
// user-defined methods without importing this package.
func (interp *Interpreter) stringify(h runtime.Holder) (string, error) {
	if inst, ok := h.Val.(*runtime.Instance); ok && inst.Class.HasMethod("__str__", 0) {
		result, err := interp.Call(inst, "__str__", nil)
		if err != nil {
			return "", err
		}
		return runtime.Stringify(result), nil
	}
	return runtime.Stringify(h), nil
}

func (interp *Interpreter) execMethodCall(n *ast.MethodCall, scope *runtime.Scope) (runtime.Holder, error) {
	objHolder, err := interp.Execute(n.Object, scope)
	if err != nil {
		return runtime.None(), err
	}
	inst, ok := objHolder.Val.(*runtime.Instance)
	if !ok {
		return runtime.None(), runtime.Errorf("cannot call method '%s' on a non-instance value", n.Name)
	}
	args, err := interp.evalArgs(n.Args, scope)
	if err != nil {
		return runtime.None(), err
	}
	return interp.Call(inst, n.Name, args)
}

func (interp *Interpreter) execNewInstance(n *ast.NewInstance, scope *runtime.Scope) (runtime.Holder, error) {
	classHolder, ok := scope.Get(n.ClassName)
	if !ok {
		return runtime.None(), runtime.Errorf("class '%s' is not defined", n.ClassName)
	}
	class, ok := classHolder.Val.(*runtime.Class)
	if !ok {
		return runtime.None(), runtime.Errorf("'%s' is not a class", n.ClassName)
	}
	args, err := interp.evalArgs(n.Args, scope)
	if err != nil {
		return runtime.None(), err
	}
	inst := runtime.NewInstance(class)
	instHolder := runtime.NewHolder(inst)
	if class.HasMethod("__init__", len(args)) {
		if _, err := interp.Call(inst, "__init__", args); err != nil {
			return runtime.None(), err
		}
	}
	return instHolder, nil
}

func (interp *Interpreter) evalArgs(nodes []ast.Node, scope *runtime.Scope) ([]runtime.Holder, error) {
	args := make([]runtime.Holder, 0, len(nodes))
	for _, node := range nodes {
		val, err := interp.Execute(node, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

func (interp *Interpreter) execUnaryOp(n *ast.UnaryOp, scope *runtime.Scope) (runtime.Holder, error) {
	arg, err := interp.Execute(n.Arg, scope)
	if err != nil {
		return runtime.None(), err
	}
	switch n.Op {
	case ast.OpNeg:
		num, ok := arg.Val.(runtime.NumberValue)
		if !ok {
			return runtime.None(), runtime.Errorf("unary '-' requires a number")
		}
		return runtime.NewHolder(runtime.NumberValue{Val: -num.Val}), nil
	case ast.OpNot:
		return runtime.NewHolder(runtime.BoolValue{Val: !runtime.IsTrue(arg)}), nil
	case ast.OpStringify:
		s, err := interp.stringify(arg)
		if err != nil {
			return runtime.None(), err
		}
		return runtime.NewHolder(runtime.StringValue{Val: s}), nil
	default:
		return runtime.None(), runtime.Errorf("unknown unary operator")
	}
}

func (interp *Interpreter) execBinaryOp(n *ast.BinaryOp, scope *runtime.Scope) (runtime.Holder, error) {
	switch n.Op {
	case ast.OpOr:
		lhs, err := interp.Execute(n.Lhs, scope)
		if err != nil {
			return runtime.None(), err
		}
		if runtime.IsTrue(lhs) {
			return runtime.NewHolder(runtime.BoolValue{Val: true}), nil
		}
		rhs, err := interp.Execute(n.Rhs, scope)
		if err != nil {
			return runtime.None(), err
		}
		return runtime.NewHolder(runtime.BoolValue{Val: runtime.IsTrue(rhs)}), nil
	case ast.OpAnd:
		lhs, err := interp.Execute(n.Lhs, scope)
		if err != nil {
			return runtime.None(), err
		}
		if !runtime.IsTrue(lhs) {
			return runtime.NewHolder(runtime.BoolValue{Val: false}), nil
		}
		rhs, err := interp.Execute(n.Rhs, scope)
		if err != nil {
			return runtime.None(), err
		}
		return runtime.NewHolder(runtime.BoolValue{Val: runtime.IsTrue(rhs)}), nil
	}

	lhs, err := interp.Execute(n.Lhs, scope)
	if err != nil {
		return runtime.None(), err
	}
	rhs, err := interp.Execute(n.Rhs, scope)
	if err != nil {
		return runtime.None(), err
	}

	switch n.Op {
	case ast.OpAdd:
		return interp.evalAdd(lhs, rhs)
	case ast.OpSub, ast.OpMult, ast.OpDiv:
		return interp.evalArith(n.Op, lhs, rhs)
	case ast.OpEq:
		return boolResult(runtime.Equal(interp, lhs, rhs))
	case ast.OpNotEq:
		return boolResult(runtime.NotEqual(interp, lhs, rhs))
	case ast.OpLess:
		return boolResult(runtime.Less(interp, lhs, rhs))
	case ast.OpGreater:
		return boolResult(runtime.Greater(interp, lhs, rhs))
	case ast.OpLessOrEq:
		return boolResult(runtime.LessOrEqual(interp, lhs, rhs))
	case ast.OpGreaterOrEq:
		return boolResult(runtime.GreaterOrEqual(interp, lhs, rhs))
	default:
		return runtime.None(), runtime.Errorf("unknown binary operator")
	}
}

func boolResult(b bool, err error) (runtime.Holder, error) {
	if err != nil {
		return runtime.None(), err
	}
	return runtime.NewHolder(runtime.BoolValue{Val: b}), nil
}

func (interp *Interpreter) evalAdd(lhs, rhs runtime.Holder) (runtime.Holder, error) {
	if l, ok := lhs.Val.(runtime.NumberValue); ok {
		if r, ok := rhs.Val.(runtime.NumberValue); ok {
			return runtime.NewHolder(runtime.NumberValue{Val: l.Val + r.Val}), nil
		}
	}
	if l, ok := lhs.Val.(runtime.StringValue); ok {
		if r, ok := rhs.Val.(runtime.StringValue); ok {
			return runtime.NewHolder(runtime.StringValue{Val: l.Val + r.Val}), nil
		}
	}
	if inst, ok := lhs.Val.(*runtime.Instance); ok && inst.Class.HasMethod("__add__", 1) {
		return interp.Call(inst, "__add__", []runtime.Holder{rhs})
	}
	return runtime.None(), runtime.Errorf("cannot add %s and %s", lhs.Val.Kind(), rhs.Val.Kind())
}

func (interp *Interpreter) evalArith(op ast.BinaryOpKind, lhs, rhs runtime.Holder) (runtime.Holder, error) {
	l, lok := lhs.Val.(runtime.NumberValue)
	r, rok := rhs.Val.(runtime.NumberValue)
	if !lok || !rok {
		return runtime.None(), runtime.Errorf("arithmetic requires numbers")
	}
	switch op {
	case ast.OpSub:
		return runtime.NewHolder(runtime.NumberValue{Val: l.Val - r.Val}), nil
	case ast.OpMult:
		return runtime.NewHolder(runtime.NumberValue{Val: l.Val * r.Val}), nil
	case ast.OpDiv:
		if r.Val == 0 {
			return runtime.None(), runtime.Errorf("division by zero")
		}
		return runtime.NewHolder(runtime.NumberValue{Val: l.Val / r.Val}), nil
	default:
		return runtime.None(), runtime.Errorf("unknown arithmetic operator")
	}
}

func (interp *Interpreter) execCompound(n *ast.Compound, scope *runtime.Scope) (runtime.Holder, error) {
	for _, stmt := range n.Statements {
		if interp.Trace != nil {
			interp.Trace(stmt)
		}
		if _, err := interp.Execute(stmt, scope); err != nil {
			return runtime.None(), err
		}
	}
	return runtime.None(), nil
}

func (interp *Interpreter) execMethodBody(n *ast.MethodBody, scope *runtime.Scope) (runtime.Holder, error) {
	_, err := interp.Execute(n.Body, scope)
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return runtime.None(), err
	}
	return runtime.None(), nil
}

func (interp *Interpreter) execReturn(n *ast.Return, scope *runtime.Scope) (runtime.Holder, error) {
	val, err := interp.Execute(n.Expr, scope)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.None(), &returnSignal{value: val}
}

func (interp *Interpreter) execClassDefinition(n *ast.ClassDefinition, scope *runtime.Scope) (runtime.Holder, error) {
	var parent *runtime.Class
	if n.Parent != "" {
		parentHolder, ok := scope.Get(n.Parent)
		if !ok {
			return runtime.None(), runtime.Errorf("base class '%s' is not defined", n.Parent)
		}
		parent, ok = parentHolder.Val.(*runtime.Class)
		if !ok {
			return runtime.None(), runtime.Errorf("'%s' is not a class", n.Parent)
		}
	}
	methods := make([]*runtime.Method, 0, len(n.Methods))
	for _, decl := range n.Methods {
		methods = append(methods, &runtime.Method{Name: decl.Name, Params: decl.Params, Body: decl.Body})
	}
	class := &runtime.Class{Name: n.Name, Methods: methods, Parent: parent}
	holder := runtime.NewHolder(class)
	scope.Set(n.Name, holder)
	return holder, nil
}

func (interp *Interpreter) execIfElse(n *ast.IfElse, scope *runtime.Scope) (runtime.Holder, error) {
	cond, err := interp.Execute(n.Condition, scope)
	if err != nil {
		return runtime.None(), err
	}
	if runtime.IsTrue(cond) {
		return interp.Execute(n.Then, scope)
	}
	if n.Else != nil {
		return interp.Execute(n.Else, scope)
	}
	return runtime.None(), nil
}

// Call implements runtime.Caller: it looks up method on instance's class
// (walking Parent), binds a fresh flat scope with self and the positional
// arguments, and executes the method body.
func (interp *Interpreter) Call(instance *runtime.Instance, method string, args []runtime.Holder) (runtime.Holder, error) {
	m := instance.Class.Lookup(method)
	if m == nil {
		return runtime.None(), runtime.Errorf("instance of %s has no method '%s'", instance.Class.Name, method)
	}
	if len(m.Params) != len(args) {
		return runtime.None(), runtime.Errorf("method '%s' expects %d argument(s), got %d", method, len(m.Params), len(args))
	}
	body, ok := m.Body.(*ast.MethodBody)
	if !ok {
		return runtime.None(), runtime.Errorf("method '%s' has no body", method)
	}
	scope := runtime.NewScope()
	scope.Set("self", runtime.NewHolder(instance))
	for i, param := range m.Params {
		scope.Set(param, args[i])
	}
	return interp.Execute(body, scope)
}
