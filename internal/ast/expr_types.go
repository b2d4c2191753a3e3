package ast

import (
	"minic/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent represents an identifier expression.
	ExprIdent ExprKind = iota
	// ExprLit represents a literal expression.
	ExprLit
	// ExprCall represents a function call expression.
	ExprCall
	// ExprBinary represents a binary expression.
	ExprBinary
	// ExprUnary represents a prefix unary expression.
	ExprUnary
	// ExprAssign represents an assignment to an identifier.
	ExprAssign
)

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv

	ExprBinaryEq
	ExprBinaryNotEq
	ExprBinaryLess
	ExprBinaryLessEq
	ExprBinaryGreater
	ExprBinaryGreaterEq

	ExprBinaryLogicalAnd
	ExprBinaryLogicalOr
)

var binaryOpSymbols = [...]string{
	ExprBinaryAdd:        "+",
	ExprBinarySub:        "-",
	ExprBinaryMul:        "*",
	ExprBinaryDiv:        "/",
	ExprBinaryEq:         "==",
	ExprBinaryNotEq:      "!=",
	ExprBinaryLess:       "<",
	ExprBinaryLessEq:     "<=",
	ExprBinaryGreater:    ">",
	ExprBinaryGreaterEq:  ">=",
	ExprBinaryLogicalAnd: "&&",
	ExprBinaryLogicalOr:  "||",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// ExprUnaryOp enumerates prefix operators.
type ExprUnaryOp uint8

const (
	// ExprUnaryMinus is arithmetic negation (-x).
	ExprUnaryMinus ExprUnaryOp = iota
	// ExprUnaryNot is logical negation (!x).
	ExprUnaryNot
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryNot {
		return "!"
	}
	return "-"
}

// ExprLitKind enumerates literal kinds.
type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitChar
	ExprLitString
)

func (k ExprLitKind) String() string {
	switch k {
	case ExprLitInt:
		return "int"
	case ExprLitFloat:
		return "float"
	case ExprLitChar:
		return "char"
	case ExprLitString:
		return "string"
	}
	return "?"
}

type ExprIdentData struct {
	Name string
}

// ExprLiteralData keeps the lexeme and, for char and string literals, the
// decoded value.
type ExprLiteralData struct {
	Kind  ExprLitKind
	Raw   string
	Value string
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprAssignData struct {
	Target ExprID
	Value  ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}
