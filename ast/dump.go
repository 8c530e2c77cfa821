package ast

import (
	"fmt"
	"strings"
)

// Dump renders node as the trace listing: one "<kind>: <value>" line per node,
// each descendant indented with one more "|\t" than its parent.
func Dump(node Node) string {
	var out strings.Builder
	dump(&out, node, 0)
	return out.String()
}

func line(out *strings.Builder, level int, kind, value string) {
	out.WriteString(strings.Repeat("|\t", level))
	fmt.Fprintf(out, "%s: %s\n", kind, value)
}

func dump(out *strings.Builder, node Node, level int) {
	switch nd := node.(type) {
	case *Program:
		line(out, level, "Program", "program")
		for _, stmt := range nd.Statements {
			dump(out, stmt, level+1)
		}
	case *BlockStatement:
		line(out, level, "Block", "block")
		for _, stmt := range nd.Body {
			dump(out, stmt, level+1)
		}
	case *LetStatement:
		line(out, level, "Declaration", nd.TokenLiteral())
		dump(out, nd.Name, level+1)
		dump(out, nd.Value, level+1)
	case *FunctionStatement:
		line(out, level, "Function", nd.Name.Value)
		line(out, level+1, "Parameters", fmt.Sprint(len(nd.Params)))
		for _, param := range nd.Params {
			dump(out, param, level+2)
		}
		dump(out, nd.Body, level+1)
	case *WhileStatement:
		line(out, level, "While", nd.TokenLiteral())
		dump(out, nd.Condition, level+1)
		dump(out, nd.Body, level+1)
	case *IfStatement:
		line(out, level, "Branch", nd.TokenLiteral())
		dump(out, nd.Condition, level+1)
		dump(out, nd.Consequence, level+1)
		if nd.Alternative != nil {
			dump(out, nd.Alternative, level+1)
		}
	case *PrintStatement:
		line(out, level, "Print", nd.TokenLiteral())
		dump(out, nd.Value, level+1)
	case *FreeStatement:
		line(out, level, "Free", nd.TokenLiteral())
		dump(out, nd.Target, level+1)
	case *Identifier:
		line(out, level, "Id", nd.Value)
	case *IntegerLiteral:
		line(out, level, "Int", nd.TokenLiteral())
	case *FloatLiteral:
		line(out, level, "Float", nd.TokenLiteral())
	case *BooleanLiteral:
		line(out, level, "Keyword", nd.TokenLiteral())
	case *CallExpression:
		line(out, level, "Call", nd.Function.Value)
		line(out, level+1, "Arguments", fmt.Sprint(len(nd.Args)))
		for _, arg := range nd.Args {
			dump(out, arg, level+2)
		}
	case *UnaryExpression:
		line(out, level, "Operator", nd.Operator)
		dump(out, nd.Right, level+1)
	case *BinaryExpression:
		line(out, level, "Operator", nd.Operator)
		dump(out, nd.Left, level+1)
		dump(out, nd.Right, level+1)
	case *TernaryExpression:
		line(out, level, "Operator", nd.TokenLiteral())
		dump(out, nd.Condition, level+1)
		dump(out, nd.Consequence, level+1)
		dump(out, nd.Alternative, level+1)
	default:
		line(out, level, "Unknown", fmt.Sprintf("%T", node))
	}
}
