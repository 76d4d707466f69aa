package filter

import (
	c "varsift/api/models/constants"
)

// Expression is one node of a parsed filter tree. Trees are immutable after
// parsing and safe to evaluate concurrently against many rows.
type Expression interface {
	filterExpression()
}

type AccessPartKind int

const (
	AccessField AccessPartKind = iota
	AccessIndex
	AccessWildcard
)

// AccessPart is one segment of a field access path such as
// ANN[0].Gene_Name or ANN[*].Annotation_Impact.
type AccessPart struct {
	Kind  AccessPartKind
	Field string // field or subfield name when Kind is AccessField
	Index int    // annotation or element index when Kind is AccessIndex
}

func FieldPart(name string) AccessPart {
	return AccessPart{Kind: AccessField, Field: name}
}

func IndexPart(index int) AccessPart {
	return AccessPart{Kind: AccessIndex, Index: index}
}

func WildcardPart() AccessPart {
	return AccessPart{Kind: AccessWildcard}
}

type NumberLiteral struct {
	Value float64
}

type StringLiteral struct {
	Value string
}

type BoolLiteral struct {
	Value bool
}

// FieldPath is a variable reference with its access chain, e.g.
// QUAL, INFO.DP, ANN[0].Gene_Name.
type FieldPath struct {
	Parts []AccessPart
}

type ComparisonExpression struct {
	Left  Expression
	Op    c.ComparisonOperator
	Right Expression
}

type LogicalExpression struct {
	Left  Expression
	Op    c.LogicalOperator
	Right Expression
}

type NotExpression struct {
	Inner Expression
}

// ExistsExpression is the exists(path) builtin; it is true when the path
// resolves to anything other than Missing.
type ExistsExpression struct {
	Parts []AccessPart
}

func (*NumberLiteral) filterExpression()        {}
func (*StringLiteral) filterExpression()        {}
func (*BoolLiteral) filterExpression()          {}
func (*FieldPath) filterExpression()            {}
func (*ComparisonExpression) filterExpression() {}
func (*LogicalExpression) filterExpression()    {}
func (*NotExpression) filterExpression()        {}
func (*ExistsExpression) filterExpression()     {}
