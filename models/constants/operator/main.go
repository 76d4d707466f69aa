package operator

import (
	"varsift/api/models/constants"
)

const (
	Equal            constants.ComparisonOperator = "=="
	NotEqual         constants.ComparisonOperator = "!="
	LessThan         constants.ComparisonOperator = "<"
	GreaterThan      constants.ComparisonOperator = ">"
	LessThanEqual    constants.ComparisonOperator = "<="
	GreaterThanEqual constants.ComparisonOperator = ">="
	Contains         constants.ComparisonOperator = "contains"
)

const (
	And constants.LogicalOperator = "&&"
	Or  constants.LogicalOperator = "||"
)

// IsOrdering reports whether the operator requires ordered operands
// (as opposed to plain equality or substring tests).
func IsOrdering(op constants.ComparisonOperator) bool {
	switch op {
	case LessThan, GreaterThan, LessThanEqual, GreaterThanEqual:
		return true
	default:
		return false
	}
}

func IsValidComparison(text string) bool {
	switch constants.ComparisonOperator(text) {
	case Equal, NotEqual, LessThan, GreaterThan, LessThanEqual, GreaterThanEqual, Contains:
		return true
	default:
		return false
	}
}
