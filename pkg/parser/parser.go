// Package parser is a recursive-descent parser from lexer.Token to the
// ast.Node tree.
package parser

import (
	"fmt"

	"mython/pkg/ast"
	"mython/pkg/lexer"
)

// Error reports a parse failure: an unexpected token at a deterministic
// position.
type Error struct {
	Message string
	Line    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error: %s (line %d)", e.Message, e.Line)
}

// Parser drives a lexer.Lexer through the grammar.
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token
}

// Parse lexes and parses src, returning the root Compound statement.
func Parse(src string) (*ast.Compound, error) {
	lx, err := lexer.New(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{lex: lx, cur: lx.CurrentToken()}
	body, err := p.parseStatementList(func(k lexer.Kind) bool { return k == lexer.KindEof })
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.KindEof {
		return nil, p.errorf("expected end of file, got %s", p.cur)
	}
	return ast.NewCompound(body...), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Line: p.cur.Line}
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expectChar(ch byte) error {
	if p.cur.Kind != lexer.KindChar || p.cur.Ch != ch {
		return p.errorf("expected %q, got %s", string(ch), p.cur)
	}
	return p.advance()
}

func (p *Parser) atChar(ch byte) bool {
	return p.cur.Kind == lexer.KindChar && p.cur.Ch == ch
}

func (p *Parser) expectId() (string, error) {
	if p.cur.Kind != lexer.KindId {
		return "", p.errorf("expected identifier, got %s", p.cur)
	}
	name := p.cur.Text
	if err := p.advance(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *Parser) expectKind(k lexer.Kind) error {
	if p.cur.Kind != k {
		return p.errorf("expected %s, got %s", k, p.cur)
	}
	return p.advance()
}

// parseStatementList parses (stmt NEWLINE)* until stop(currentKind) holds.
func (p *Parser) parseStatementList(stop func(lexer.Kind) bool) ([]ast.Node, error) {
	var stmts []ast.Node
	for !stop(p.cur.Kind) {
		stmt, compound, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if !compound {
			if err := p.expectKind(lexer.KindNewline); err != nil {
				return nil, err
			}
		}
	}
	return stmts, nil
}

// parseStatement returns the parsed node and whether it is a compound
// statement (class/if) that has already consumed its own trailing suite
// structure, so the caller should not additionally expect a NEWLINE.
func (p *Parser) parseStatement() (ast.Node, bool, error) {
	switch p.cur.Kind {
	case lexer.KindClass:
		n, err := p.parseClassDef()
		return n, true, err
	case lexer.KindIf:
		n, err := p.parseIfStmt()
		return n, true, err
	case lexer.KindReturn:
		n, err := p.parseReturnStmt()
		return n, false, err
	case lexer.KindPrint:
		n, err := p.parsePrintStmt()
		return n, false, err
	default:
		n, err := p.parseSimpleStmt()
		return n, false, err
	}
}

// parseSuite parses NEWLINE INDENT stmt_list DEDENT.
func (p *Parser) parseSuite() (*ast.Compound, error) {
	if err := p.expectKind(lexer.KindNewline); err != nil {
		return nil, err
	}
	if err := p.expectKind(lexer.KindIndent); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList(func(k lexer.Kind) bool { return k == lexer.KindDedent })
	if err != nil {
		return nil, err
	}
	if err := p.expectKind(lexer.KindDedent); err != nil {
		return nil, err
	}
	return ast.NewCompound(stmts...), nil
}

func (p *Parser) parseClassDef() (ast.Node, error) {
	if err := p.advance(); err != nil { // consume 'class'
		return nil, err
	}
	name, err := p.expectId()
	if err != nil {
		return nil, err
	}
	parent := ""
	if p.atChar('(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		parent, err = p.expectId()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectKind(lexer.KindNewline); err != nil {
		return nil, err
	}
	if err := p.expectKind(lexer.KindIndent); err != nil {
		return nil, err
	}
	var methods []*ast.MethodDecl
	for p.cur.Kind == lexer.KindDef {
		m, err := p.parseMethodDecl()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if err := p.expectKind(lexer.KindDedent); err != nil {
		return nil, err
	}
	return ast.NewClassDefinition(name, parent, methods), nil
}

func (p *Parser) parseMethodDecl() (*ast.MethodDecl, error) {
	if err := p.advance(); err != nil { // consume 'def'
		return nil, err
	}
	name, err := p.expectId()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var params []string
	for !p.atChar(')') {
		param, err := p.expectId()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.atChar(',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &ast.MethodDecl{Name: name, Params: params, Body: ast.NewMethodBody(body)}, nil
}

func (p *Parser) parseIfStmt() (ast.Node, error) {
	if err := p.advance(); err != nil { // consume 'if'
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	thenSuite, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var elseSuite ast.Node
	if p.cur.Kind == lexer.KindElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectChar(':'); err != nil {
			return nil, err
		}
		elseSuite, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfElse(cond, thenSuite, elseSuite), nil
}

func (p *Parser) parseReturnStmt() (ast.Node, error) {
	if err := p.advance(); err != nil { // consume 'return'
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewReturn(expr), nil
}

func (p *Parser) parsePrintStmt() (ast.Node, error) {
	if err := p.advance(); err != nil { // consume 'print'
		return nil, err
	}
	if p.cur.Kind == lexer.KindNewline {
		return ast.NewPrint(nil), nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args := []ast.Node{first}
	for p.atChar(',') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return ast.NewPrint(args), nil
}

// parseSimpleStmt parses either an assignment or a bare expression
// statement. Both start by parsing a full expression; if a bare '=' token
// follows and the expression is a simple dotted-name reference, it is
// re-interpreted as an Assignment or FieldAssignment target rather than
// requiring a separate `dotted_id '=' expr` assignment production.
func (p *Parser) parseSimpleStmt() (ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atChar('=') {
		return expr, nil
	}
	target, ok := expr.(*ast.VariableValue)
	if !ok {
		return nil, p.errorf("invalid assignment target")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if len(target.Tail) == 0 {
		return ast.NewAssignment(target.Head, rhs), nil
	}
	objectNames := append([]string{target.Head}, target.Tail[:len(target.Tail)-1]...)
	field := target.Tail[len(target.Tail)-1]
	return ast.NewFieldAssignment(ast.NewVariableValue(objectNames), field, rhs), nil
}

func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Node, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.KindOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinaryOp(ast.OpOr, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == lexer.KindAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinaryOp(ast.OpAnd, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseNot() (ast.Node, error) {
	if p.cur.Kind == lexer.KindNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(ast.OpNot, arg), nil
	}
	return p.parseCompare()
}

func (p *Parser) parseCompare() (ast.Node, error) {
	lhs, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	var op ast.BinaryOpKind
	switch {
	case p.cur.Kind == lexer.KindEq:
		op = ast.OpEq
	case p.cur.Kind == lexer.KindNotEq:
		op = ast.OpNotEq
	case p.cur.Kind == lexer.KindLessOrEq:
		op = ast.OpLessOrEq
	case p.cur.Kind == lexer.KindGreaterOrEq:
		op = ast.OpGreaterOrEq
	case p.atChar('<'):
		op = ast.OpLess
	case p.atChar('>'):
		op = ast.OpGreater
	default:
		return lhs, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOp(op, lhs, rhs), nil
}

func (p *Parser) parseAdd() (ast.Node, error) {
	lhs, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.atChar('+') || p.atChar('-') {
		op := ast.OpAdd
		if p.cur.Ch == '-' {
			op = ast.OpSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinaryOp(op, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseMul() (ast.Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atChar('*') || p.atChar('/') {
		op := ast.OpMult
		if p.cur.Ch == '/' {
			op = ast.OpDiv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinaryOp(op, lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if p.atChar('-') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(ast.OpNeg, arg), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	switch p.cur.Kind {
	case lexer.KindNumber:
		n := p.cur.Num
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewNumberConstant(n), nil
	case lexer.KindString:
		s := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewStringConstant(s), nil
	case lexer.KindTrue:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolConstant(true), nil
	case lexer.KindFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolConstant(false), nil
	case lexer.KindNone:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewNoneLiteral(), nil
	case lexer.KindId:
		return p.parseIdentifierChain()
	}
	if p.atChar('(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf("unexpected token %s", p.cur)
}

// parseIdentifierChain parses the `str(...)` stringify form, dotted-name
// references, class instantiation, and method-call chains, generalizing
// the single-call `dotted_id ['(' arg_list ')']` production to allow
// trailing calls after an already-called expression (e.g. `F().calc(4)`).
func (p *Parser) parseIdentifierChain() (ast.Node, error) {
	first := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if first == "str" && p.atChar('(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(ast.OpStringify, arg), nil
	}

	segments := []string{first}
	var node ast.Node

	for {
		if p.atChar('.') && node == nil {
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, err := p.expectId()
			if err != nil {
				return nil, err
			}
			segments = append(segments, name)
			continue
		}
		if p.atChar('.') && node != nil {
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, err := p.expectId()
			if err != nil {
				return nil, err
			}
			if !p.atChar('(') {
				return nil, p.errorf("expected '(' after %s", name)
			}
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			node = ast.NewMethodCall(node, name, args)
			continue
		}
		if p.atChar('(') {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			if node != nil {
				return nil, p.errorf("unexpected '(' ")
			}
			if len(segments) == 1 {
				node = ast.NewNewInstance(segments[0], args)
			} else {
				object := ast.NewVariableValue(segments[:len(segments)-1])
				node = ast.NewMethodCall(object, segments[len(segments)-1], args)
			}
			segments = nil
			continue
		}
		break
	}

	if node == nil {
		node = ast.NewVariableValue(segments)
	}
	return node, nil
}

// parseArgList assumes the current token is '(' and consumes through the
// matching ')'.
func (p *Parser) parseArgList() ([]ast.Node, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	if p.atChar(')') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	var args []ast.Node
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.atChar(',') {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}
