package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout VarSift and it's
	associated services.
*/
type ValueKind int

type FieldArity int
type FieldType string

type ComparisonOperator string
type LogicalOperator string
