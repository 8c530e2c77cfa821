package memory

import (
	"bella/ast"
	"bella/internals"
	"bella/lexer"
	"fmt"
	"strings"
)

// AllocFunction is the builtin a declaration has to call to allocate
const AllocFunction = "alloc"

type Options struct {
	FilePath string
	// check function bodies for reads of freed identifiers where they are declared
	CheckFunctionBodies bool
}

type Option func(*Options)

func WithFilePath(path string) Option {
	return func(o *Options) {
		o.FilePath = path
	}
}

func WithFunctionBodies(enabled bool) Option {
	return func(o *Options) {
		o.CheckFunctionBodies = enabled
	}
}

// Verifier walks a parsed program along its single textual path, pairing
// every alloc with a free and rejecting reads of freed identifiers.
type Verifier struct {
	opts  Options
	table *AllocationTable
}

func NewVerifier(opts ...Option) *Verifier {
	o := Options{CheckFunctionBodies: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &Verifier{opts: o}
}

// Verify runs a fresh verification of program, stopping at the first failure
func Verify(program *ast.Program, opts ...Option) error {
	return NewVerifier(opts...).Verify(program)
}

func (v *Verifier) Verify(program *ast.Program) error {
	v.table = NewAllocationTable()
	return v.verifyStatements(program.Statements)
}

// verifyStatements checks a statement list in the current frame, then the
// frame's own leaks. nested blocks get a child frame that is closed first.
func (v *Verifier) verifyStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := v.verifyStatement(stmt); err != nil {
			return err
		}
	}
	return v.checkLeaks()
}

func (v *Verifier) verifyStatement(stmt ast.Statement) error {
	switch st := stmt.(type) {
	case *ast.LetStatement:
		if call, ok := isAllocation(st.Value); ok {
			for _, arg := range call.Args {
				if err := v.checkNullReference(arg); err != nil {
					return err
				}
			}
			return v.at(st.Token, v.table.Allocate(st.Name.Value, st.Token))
		}
		return v.checkNullReference(st.Value)

	case *ast.FreeStatement:
		return v.at(st.Target.Token, v.table.Free(st.Target.Value))

	case *ast.PrintStatement:
		return v.checkNullReference(st.Value)

	case *ast.WhileStatement:
		if err := v.checkNullReference(st.Condition); err != nil {
			return err
		}
		return v.verifyBlock(st.Body)

	case *ast.IfStatement:
		if err := v.checkNullReference(st.Condition); err != nil {
			return err
		}
		if err := v.verifyBlock(st.Consequence); err != nil {
			return err
		}
		if st.Alternative != nil {
			return v.verifyBlock(st.Alternative)
		}
		return nil

	case *ast.FunctionStatement:
		if !v.opts.CheckFunctionBodies {
			return nil
		}
		return v.verifyFunctionBody(st)
	}

	return nil
}

func (v *Verifier) verifyBlock(block *ast.BlockStatement) error {
	v.table.EnterScope()
	if err := v.verifyStatements(block.Body); err != nil {
		return err
	}
	return v.table.ExitScope()
}

// the body only sees the parameters and what is visible where it's declared
func (v *Verifier) verifyFunctionBody(fn *ast.FunctionStatement) error {
	v.table.EnterScope()
	for _, param := range fn.Params {
		v.table.Shadow(param.Value)
	}
	if err := v.checkNullReference(fn.Body); err != nil {
		return err
	}
	return v.table.ExitScope()
}

func (v *Verifier) checkLeaks() error {
	leaks := v.table.Leaks()
	if len(leaks) == 0 {
		return nil
	}

	names := make([]string, 0, len(leaks))
	first := leaks[0].Token
	for _, leak := range leaks {
		names = append(names, leak.Name)
		if before(leak.Token, first) {
			first = leak.Token
		}
	}

	return internals.NewError(
		internals.LeakError, v.opts.FilePath, first.Row, first.Col,
		fmt.Sprintf("memory leak: not all allocated variables are freed (%s)", strings.Join(names, ", ")),
	)
}

// checkNullReference fails at the first identifier read in expr whose nearest
// binding is freed. callee names aren't reads, their arguments are.
func (v *Verifier) checkNullReference(expr ast.Expression) error {
	stack := []ast.Expression{expr}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch ep := node.(type) {
		case *ast.Identifier:
			if v.table.IsNull(ep.Value) {
				return internals.NewError(
					internals.NullReferenceError, v.opts.FilePath, ep.Token.Row, ep.Token.Col,
					fmt.Sprintf("null pointer reference: identifier %q has already been freed", ep.Value),
				)
			}
		case *ast.CallExpression:
			// pushed backwards so arguments are visited left to right
			for idx := len(ep.Args) - 1; idx >= 0; idx-- {
				stack = append(stack, ep.Args[idx])
			}
		case *ast.UnaryExpression:
			stack = append(stack, ep.Right)
		case *ast.BinaryExpression:
			stack = append(stack, ep.Right, ep.Left)
		case *ast.TernaryExpression:
			stack = append(stack, ep.Alternative, ep.Consequence, ep.Condition)
		}
	}

	return nil
}

func (v *Verifier) at(tok lexer.Token, err error) error {
	if err == nil {
		return nil
	}
	return internals.At(err, v.opts.FilePath, tok.Row, tok.Col)
}

// isAllocation reports whether a declaration initializer is a call to alloc
func isAllocation(expr ast.Expression) (*ast.CallExpression, bool) {
	call, ok := expr.(*ast.CallExpression)
	if !ok || call.Function.Value != AllocFunction {
		return nil, false
	}
	return call, true
}

func before(a, b lexer.Token) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
