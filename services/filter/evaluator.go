package filter

import (
	"fmt"
	"strings"

	c "varsift/api/models/constants"
	"varsift/api/models/constants/operator"
	"varsift/api/models/schema"
	"varsift/api/models/values"
	"varsift/api/models/vcf"
)

// Evaluate walks one expression against one decoded row and produces a
// value. Callers deciding pass/fail should only trust a Bool result;
// anything else means the expression resolved to data, not a verdict.
func Evaluate(expression Expression, row *vcf.VcfRow, headerSchema *schema.VcfHeaderSchema) (values.Value, error) {
	switch node := expression.(type) {
	case *NumberLiteral:
		return values.Number(node.Value), nil
	case *StringLiteral:
		return values.String(node.Value), nil
	case *BoolLiteral:
		return values.Bool(node.Value), nil
	case *FieldPath:
		return resolvePath(node.Parts, row, headerSchema)
	case *ExistsExpression:
		resolved, err := resolvePath(node.Parts, row, headerSchema)
		if err != nil {
			return values.Missing(), err
		}
		return values.Bool(!resolved.IsMissing()), nil
	case *NotExpression:
		inner, err := Evaluate(node.Inner, row, headerSchema)
		if err != nil {
			return values.Missing(), err
		}
		return values.Bool(!inner.Truthy()), nil
	case *LogicalExpression:
		return evaluateLogical(node, row, headerSchema)
	case *ComparisonExpression:
		return evaluateComparison(node, row, headerSchema)
	}
	return values.Missing(), &EvaluationError{Message: fmt.Sprintf("unsupported expression node %T", expression)}
}

// evaluateLogical short-circuits: the right operand is never touched when
// the left already decides, so a malformed right side cannot fail a row
// the left side settled.
func evaluateLogical(node *LogicalExpression, row *vcf.VcfRow, headerSchema *schema.VcfHeaderSchema) (values.Value, error) {
	left, err := Evaluate(node.Left, row, headerSchema)
	if err != nil {
		return values.Missing(), err
	}

	switch node.Op {
	case operator.And:
		if !left.Truthy() {
			return values.Bool(false), nil
		}
	case operator.Or:
		if left.Truthy() {
			return values.Bool(true), nil
		}
	default:
		return values.Missing(), &EvaluationError{Message: fmt.Sprintf("unsupported logical operator %q", node.Op)}
	}

	right, err := Evaluate(node.Right, row, headerSchema)
	if err != nil {
		return values.Missing(), err
	}
	return values.Bool(right.Truthy()), nil
}

func evaluateComparison(node *ComparisonExpression, row *vcf.VcfRow, headerSchema *schema.VcfHeaderSchema) (values.Value, error) {
	left, err := Evaluate(node.Left, row, headerSchema)
	if err != nil {
		return values.Missing(), err
	}
	right, err := Evaluate(node.Right, row, headerSchema)
	if err != nil {
		return values.Missing(), err
	}

	if items, isArray := left.AsArray(); isArray {
		return foldComparison(items, node.Op, right)
	}

	result, err := compareScalar(left, node.Op, right)
	if err != nil {
		return values.Missing(), err
	}
	return values.Bool(result), nil
}

// foldComparison applies the operator between each element of an array-valued
// left side and the right operand. Equality, contains and the ordering
// operators succeed when any element matches; inequality requires every
// element to differ. Per-element type mismatches under ordering count as a
// non-match rather than failing the whole row.
func foldComparison(items []values.Value, op c.ComparisonOperator, right values.Value) (values.Value, error) {
	switch op {
	case operator.Equal:
		for _, item := range items {
			if values.Equal(item, right) {
				return values.Bool(true), nil
			}
		}
		return values.Bool(false), nil

	case operator.NotEqual:
		for _, item := range items {
			if values.Equal(item, right) {
				return values.Bool(false), nil
			}
		}
		return values.Bool(true), nil

	case operator.Contains:
		for _, item := range items {
			if stringContains(item, right) {
				return values.Bool(true), nil
			}
		}
		return values.Bool(false), nil

	default:
		for _, item := range items {
			if ok, err := orderValues(item, op, right); err == nil && ok {
				return values.Bool(true), nil
			}
		}
		return values.Bool(false), nil
	}
}

func compareScalar(left values.Value, op c.ComparisonOperator, right values.Value) (bool, error) {
	switch op {
	case operator.Equal:
		return values.Equal(left, right), nil
	case operator.NotEqual:
		return !values.Equal(left, right), nil
	case operator.Contains:
		return stringContains(left, right), nil
	case operator.LessThan, operator.GreaterThan, operator.LessThanEqual, operator.GreaterThanEqual:
		return orderValues(left, op, right)
	}
	return false, &EvaluationError{Message: fmt.Sprintf("unsupported comparison operator %q", op)}
}

// stringContains is substring containment, defined for string operands only.
func stringContains(left values.Value, right values.Value) bool {
	haystack, leftOk := left.AsString()
	needle, rightOk := right.AsString()
	return leftOk && rightOk && strings.Contains(haystack, needle)
}

// orderValues applies <, >, <= or >=. A missing operand never orders.
// Numbers win over strings: when both sides coerce numerically the compare
// is numeric, even for string-typed digits; otherwise two strings compare
// lexicographically and anything else is a type mismatch.
func orderValues(left values.Value, op c.ComparisonOperator, right values.Value) (bool, error) {
	if left.IsMissing() || right.IsMissing() {
		return false, nil
	}

	leftNum, leftIsNum := coerceNumber(left)
	rightNum, rightIsNum := coerceNumber(right)
	if leftIsNum && rightIsNum {
		switch op {
		case operator.LessThan:
			return leftNum < rightNum, nil
		case operator.GreaterThan:
			return leftNum > rightNum, nil
		case operator.LessThanEqual:
			return leftNum <= rightNum, nil
		case operator.GreaterThanEqual:
			return leftNum >= rightNum, nil
		}
	}

	leftStr, leftIsStr := left.AsString()
	rightStr, rightIsStr := right.AsString()
	if leftIsStr && rightIsStr {
		switch op {
		case operator.LessThan:
			return leftStr < rightStr, nil
		case operator.GreaterThan:
			return leftStr > rightStr, nil
		case operator.LessThanEqual:
			return leftStr <= rightStr, nil
		case operator.GreaterThanEqual:
			return leftStr >= rightStr, nil
		}
	}

	return false, &TypeMismatchError{
		LeftKind:  strings.ToLower(left.KindName()),
		RightKind: strings.ToLower(right.KindName()),
	}
}

// coerceNumber widens order comparisons: a Number is itself, a String that
// parses as a float participates numerically.
func coerceNumber(value values.Value) (float64, bool) {
	if num, ok := value.AsNumber(); ok {
		return num, true
	}
	if text, ok := value.AsString(); ok {
		return values.ParseFloat(text)
	}
	return 0, false
}

// resolvePath walks an access path against the row. The first part names a
// field; INFO. and FORMAT. prefixes pin the lookup to one namespace, bare
// names try built-in columns first, then INFO, then FORMAT.
func resolvePath(parts []AccessPart, row *vcf.VcfRow, headerSchema *schema.VcfHeaderSchema) (values.Value, error) {
	if len(parts) == 0 || parts[0].Kind != AccessField {
		return values.Missing(), &EvaluationError{Message: "variable must start with a field name"}
	}

	fieldName := parts[0].Field
	rest := parts[1:]

	switch fieldName {
	case "INFO":
		return resolveNamespaced(row.InfoValues, rest, row, headerSchema)
	case "FORMAT":
		return resolveNamespaced(row.FormatValues, rest, row, headerSchema)
	}

	base := row.Get(fieldName)
	return resolveFieldAccess(base, fieldName, rest, row, headerSchema)
}

// resolveNamespaced handles INFO.X / FORMAT.X paths. The prefix alone, or a
// prefix followed by anything but a field name, resolves to nothing.
func resolveNamespaced(namespace map[string]values.Value, rest []AccessPart, row *vcf.VcfRow, headerSchema *schema.VcfHeaderSchema) (values.Value, error) {
	if len(rest) == 0 || rest[0].Kind != AccessField {
		return values.Missing(), nil
	}
	fieldName := rest[0].Field
	base, ok := namespace[fieldName]
	if !ok {
		return values.Missing(), nil
	}
	return resolveFieldAccess(base, fieldName, rest[1:], row, headerSchema)
}

// resolveFieldAccess applies the accessors that follow a field name. A
// later index or subfield overrides an earlier one, and a wildcard stays in
// force once seen, so `CSQ[0][2].gene` reads as index 2, subfield gene.
func resolveFieldAccess(base values.Value, fieldName string, accessors []AccessPart, row *vcf.VcfRow, headerSchema *schema.VcfHeaderSchema) (values.Value, error) {
	index := -1
	wildcard := false
	subfield := ""

	for _, part := range accessors {
		switch part.Kind {
		case AccessIndex:
			index = part.Index
		case AccessWildcard:
			wildcard = true
		case AccessField:
			subfield = part.Field
		}
	}

	if subfield != "" {
		metadata, ok := headerSchema.Field(fieldName)
		if !ok || !metadata.HasSubfieldSchema() {
			return values.Missing(), nil
		}
		position, ok := metadata.SubfieldPosition(subfield)
		if !ok {
			return values.Missing(), nil
		}
		if wildcard {
			return allAnnotationSubfields(row, fieldName, position), nil
		}
		if index >= 0 {
			return annotationSubfield(row, fieldName, index, position), nil
		}
		return values.Missing(), nil
	}

	if wildcard {
		return base, nil
	}

	if index >= 0 {
		items, ok := base.AsArray()
		if !ok || index >= len(items) {
			return values.Missing(), nil
		}
		return items[index], nil
	}

	return base, nil
}

// annotationSubfield picks one positional subfield out of one annotation
// instance, e.g. CSQ[1].gene. Annotation blocks only live in INFO.
func annotationSubfield(row *vcf.VcfRow, fieldName string, index int, position int) values.Value {
	field, ok := row.InfoValues[fieldName]
	if !ok {
		return values.Missing()
	}
	instances, ok := field.AsArray()
	if !ok || index >= len(instances) {
		return values.Missing()
	}
	parts, ok := instances[index].AsArray()
	if !ok || position >= len(parts) {
		return values.Missing()
	}
	return parts[position]
}

// allAnnotationSubfields collects one positional subfield across every
// annotation instance, e.g. CSQ[*].gene.
func allAnnotationSubfields(row *vcf.VcfRow, fieldName string, position int) values.Value {
	field, ok := row.InfoValues[fieldName]
	if !ok {
		return values.Missing()
	}
	instances, ok := field.AsArray()
	if !ok {
		return values.Missing()
	}

	collected := make([]values.Value, 0, len(instances))
	for _, instance := range instances {
		parts, ok := instance.AsArray()
		if !ok {
			continue
		}
		if position < len(parts) {
			collected = append(collected, parts[position])
		} else {
			collected = append(collected, values.Missing())
		}
	}
	return values.Array(collected)
}
