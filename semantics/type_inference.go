package semantics

import (
	"bella/ast"
)

type TypeInference struct {
	checker *TypeChecker
	symbols *SymbolTable
}

func NewTypeInference(checker *TypeChecker, symbols *SymbolTable) *TypeInference {
	return &TypeInference{
		checker: checker,
		symbols: symbols,
	}
}

// InferAssociatedValueType gives the type a declaration takes from its initializer
func (ti *TypeInference) InferAssociatedValueType(expr ast.Expression) (Type, error) {
	switch expr.(type) {
	// atomic types
	case *ast.IntegerLiteral:
		return IntegerType, nil
	case *ast.FloatLiteral:
		return FloatType, nil
	case *ast.BooleanLiteral:
		return BooleanType, nil

	// ternaries are never resolved statically
	case *ast.TernaryExpression:
		return AnyType, nil
	}

	// identifiers, calls, unary and binary operations
	return ti.checker.Resolve(expr, ti.symbols)
}
