package semantics

import (
	"bella/ast"
	"bella/internals"
	"bella/lexer"
	"fmt"
)

// TypeChecker holds no state, every answer comes from the expression and the table it's given
type TypeChecker struct{}

func NewTypeChecker() *TypeChecker {
	return &TypeChecker{}
}

// Resolve returns the result type of expr under the bindings visible in symbols
func (tc *TypeChecker) Resolve(expr ast.Expression, symbols *SymbolTable) (Type, error) {
	switch ep := expr.(type) {
	case *ast.IntegerLiteral:
		return IntegerType, nil
	case *ast.FloatLiteral:
		return FloatType, nil
	case *ast.BooleanLiteral:
		return BooleanType, nil
	case *ast.Identifier:
		return tc.lookup(ep, ep.Value, symbols)
	case *ast.CallExpression:
		// a call has the type its callee was registered with
		return tc.lookup(ep, ep.Function.Value, symbols)
	case *ast.TernaryExpression:
		return AnyType, nil
	case *ast.UnaryExpression:
		return tc.resolveUnary(ep, symbols)
	case *ast.BinaryExpression:
		return tc.resolveBinary(ep, symbols)
	}

	return "", internals.NewError(internals.TypeError, "", 0, 0, fmt.Sprintf("can't resolve the type of %T", expr))
}

func (tc *TypeChecker) lookup(node ast.Node, name string, symbols *SymbolTable) (Type, error) {
	tp, err := symbols.Lookup(name)
	if err != nil {
		tok := node.GetToken()
		return "", internals.At(err, "", tok.Row, tok.Col)
	}
	return tp, nil
}

func (tc *TypeChecker) resolveUnary(expr *ast.UnaryExpression, symbols *SymbolTable) (Type, error) {
	operand, err := tc.Resolve(expr.Right, symbols)
	if err != nil {
		return "", err
	}
	return tc.ResultTypeOfUnary(expr, operand)
}

// ResultTypeOfUnary applies the operand rule of a unary node: - takes an
// INTEGER or a FLOAT, ! takes a BOOLEAN, ANY passes through both.
func (tc *TypeChecker) ResultTypeOfUnary(expr *ast.UnaryExpression, operand Type) (Type, error) {
	if operand == AnyType {
		return AnyType, nil
	}

	switch expr.Operator {
	case lexer.TokenMinus:
		if operand == IntegerType || operand == FloatType {
			return operand, nil
		}
	case lexer.TokenExclamation:
		if operand == BooleanType {
			return operand, nil
		}
	default:
		return "", tc.unknownOperator(expr, expr.Operator)
	}

	return "", internals.NewError(
		internals.TypeError, "", expr.Token.Row, expr.Token.Col,
		fmt.Sprintf("incompatible type for operation: %v%v", expr.Operator, operand),
	)
}

func (tc *TypeChecker) resolveBinary(expr *ast.BinaryExpression, symbols *SymbolTable) (Type, error) {
	left, err := tc.Resolve(expr.Left, symbols)
	if err != nil {
		return "", err
	}
	right, err := tc.Resolve(expr.Right, symbols)
	if err != nil {
		return "", err
	}

	return tc.ResultTypeOfOp(expr, left, right)
}

// ResultTypeOfOp applies the operand rule of a binary node: ANY defers to the
// other side, equal types keep their type under arithmetic and become BOOLEAN
// under comparisons and logic, anything else is incompatible.
func (tc *TypeChecker) ResultTypeOfOp(expr *ast.BinaryExpression, left, right Type) (Type, error) {
	op := expr.Operator

	if left == AnyType {
		return right, nil
	}
	if right == AnyType {
		return left, nil
	}

	if left != right {
		return "", internals.NewError(
			internals.TypeError, "", expr.Token.Row, expr.Token.Col,
			fmt.Sprintf("incompatible types for operation: %v %v %v", left, op, right),
		)
	}

	if _, ok := lexer.ArithmeticOperators[op]; ok {
		return left, nil
	}
	if _, ok := lexer.BooleanOperators[op]; ok {
		return BooleanType, nil
	}

	return "", tc.unknownOperator(expr, op)
}

func (tc *TypeChecker) unknownOperator(node ast.Node, op string) error {
	tok := node.GetToken()
	return internals.NewError(internals.TypeError, "", tok.Row, tok.Col, fmt.Sprintf("unknown operator %q", op))
}
