package parser

import (
	"minic/internal/ast"
	"minic/internal/token"
)

// Binding strength of operators; a higher number binds tighter.
const (
	precAssignment     = 1 // =
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * /
	precUnary          = 8 // - !
)

// getBinaryOperatorPrec returns the precedence of kind and whether it is
// right-associative; -1 means kind is not a binary operator.
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:   ast.ExprBinaryAdd,
	token.Minus:  ast.ExprBinarySub,
	token.Star:   ast.ExprBinaryMul,
	token.Slash:  ast.ExprBinaryDiv,
	token.EqEq:   ast.ExprBinaryEq,
	token.BangEq: ast.ExprBinaryNotEq,
	token.Lt:     ast.ExprBinaryLess,
	token.LtEq:   ast.ExprBinaryLessEq,
	token.Gt:     ast.ExprBinaryGreater,
	token.GtEq:   ast.ExprBinaryGreaterEq,
	token.AndAnd: ast.ExprBinaryLogicalAnd,
	token.OrOr:   ast.ExprBinaryLogicalOr,
}

var literalKinds = map[token.Kind]ast.ExprLitKind{
	token.IntLit:    ast.ExprLitInt,
	token.FloatLit:  ast.ExprLitFloat,
	token.CharLit:   ast.ExprLitChar,
	token.StringLit: ast.ExprLitString,
}
