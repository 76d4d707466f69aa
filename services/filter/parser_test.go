package filter

import (
	"testing"

	"varsift/api/models/constants/operator"

	"github.com/stretchr/testify/assert"
)

func TestParsePrecedence(t *testing.T) {
	expr, err := ParseFilterExpression("QUAL > 30 && INFO.DP >= 10 || DB")
	assert.Nil(t, err)

	or, ok := expr.(*LogicalExpression)
	assert.True(t, ok)
	assert.Equal(t, operator.Or, or.Op)

	and, ok := or.Left.(*LogicalExpression)
	assert.True(t, ok)
	assert.Equal(t, operator.And, and.Op)

	cmp, ok := and.Left.(*ComparisonExpression)
	assert.True(t, ok)
	assert.Equal(t, operator.GreaterThan, cmp.Op)

	_, ok = or.Right.(*FieldPath)
	assert.True(t, ok)
}

func TestParseChainedComparisonsFoldLeft(t *testing.T) {
	expr, err := ParseFilterExpression("QUAL == 30 == true")
	assert.Nil(t, err)

	outer, ok := expr.(*ComparisonExpression)
	assert.True(t, ok)
	assert.Equal(t, operator.Equal, outer.Op)

	inner, ok := outer.Left.(*ComparisonExpression)
	assert.True(t, ok)
	_, ok = inner.Left.(*FieldPath)
	assert.True(t, ok)
	_, ok = outer.Right.(*BoolLiteral)
	assert.True(t, ok)
}

func TestParseAccessPaths(t *testing.T) {
	expr, err := ParseFilterExpression("ANN[0].Gene_Name == \"AGT\"")
	assert.Nil(t, err)
	path, ok := expr.(*ComparisonExpression).Left.(*FieldPath)
	assert.True(t, ok)
	assert.Equal(t, []AccessPart{FieldPart("ANN"), IndexPart(0), FieldPart("Gene_Name")}, path.Parts)

	expr, err = ParseFilterExpression("ANN[*].Annotation_Impact == \"HIGH\"")
	assert.Nil(t, err)
	path = expr.(*ComparisonExpression).Left.(*FieldPath)
	assert.Equal(t, []AccessPart{FieldPart("ANN"), WildcardPart(), FieldPart("Annotation_Impact")}, path.Parts)

	expr, err = ParseFilterExpression("INFO.DP")
	assert.Nil(t, err)
	path, ok = expr.(*FieldPath)
	assert.True(t, ok)
	assert.Equal(t, []AccessPart{FieldPart("INFO"), FieldPart("DP")}, path.Parts)
}

func TestParseExists(t *testing.T) {
	expr, err := ParseFilterExpression("exists(INFO.DP)")
	assert.Nil(t, err)
	ex, ok := expr.(*ExistsExpression)
	assert.True(t, ok)
	assert.Equal(t, []AccessPart{FieldPart("INFO"), FieldPart("DP")}, ex.Parts)

	// bare `exists` stays available as a field name
	expr, err = ParseFilterExpression("exists == 1")
	assert.Nil(t, err)
	path := expr.(*ComparisonExpression).Left.(*FieldPath)
	assert.Equal(t, "exists", path.Parts[0].Field)
}

func TestParseContains(t *testing.T) {
	expr, err := ParseFilterExpression("ID contains \"rs\"")
	assert.Nil(t, err)
	cmp, ok := expr.(*ComparisonExpression)
	assert.True(t, ok)
	assert.Equal(t, operator.Contains, cmp.Op)

	// in atom position it is a plain field name
	expr, err = ParseFilterExpression("contains == 1")
	assert.Nil(t, err)
	path := expr.(*ComparisonExpression).Left.(*FieldPath)
	assert.Equal(t, "contains", path.Parts[0].Field)
}

func TestParseLiteralsAndGrouping(t *testing.T) {
	expr, err := ParseFilterExpression("7.25")
	assert.Nil(t, err)
	num, ok := expr.(*NumberLiteral)
	assert.True(t, ok)
	assert.Equal(t, 7.25, num.Value)

	expr, err = ParseFilterExpression("\"missense_variant\"")
	assert.Nil(t, err)
	str, ok := expr.(*StringLiteral)
	assert.True(t, ok)
	assert.Equal(t, "missense_variant", str.Value)

	expr, err = ParseFilterExpression("false")
	assert.Nil(t, err)
	b, ok := expr.(*BoolLiteral)
	assert.True(t, ok)
	assert.False(t, b.Value)

	expr, err = ParseFilterExpression("(QUAL > 30)")
	assert.Nil(t, err)
	_, ok = expr.(*ComparisonExpression)
	assert.True(t, ok)
}

func TestParseNegation(t *testing.T) {
	expr, err := ParseFilterExpression("!DB")
	assert.Nil(t, err)
	not, ok := expr.(*NotExpression)
	assert.True(t, ok)
	_, ok = not.Inner.(*FieldPath)
	assert.True(t, ok)

	expr, err = ParseFilterExpression("!!DB")
	assert.Nil(t, err)
	outer := expr.(*NotExpression)
	_, ok = outer.Inner.(*NotExpression)
	assert.True(t, ok)
}

func TestParseErrors(t *testing.T) {
	t.Run("dangling operator", func(t *testing.T) {
		expr, err := ParseFilterExpression("QUAL >")
		assert.Nil(t, expr)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "Filter parse error: ")
		assert.Contains(t, err.Error(), "unexpected end of expression")
	})

	t.Run("trailing input", func(t *testing.T) {
		expr, err := ParseFilterExpression("QUAL > 30 extra")
		assert.Nil(t, expr)
		assert.NotNil(t, err)
		assert.Equal(t, "Filter parse error: unexpected trailing input starting at \"extra\" (position 10)", err.Error())
	})

	t.Run("unterminated string", func(t *testing.T) {
		_, err := ParseFilterExpression("ID == \"rs373")
		assert.NotNil(t, err)

		parseErr, ok := err.(*FilterParseError)
		assert.True(t, ok)
		assert.Len(t, parseErr.Issues, 1)
		assert.Contains(t, parseErr.Issues[0], "unterminated string literal")
	})

	t.Run("every lexical issue folds into one error", func(t *testing.T) {
		_, err := ParseFilterExpression("QUAL @ 30 # 5")
		assert.NotNil(t, err)

		parseErr, ok := err.(*FilterParseError)
		assert.True(t, ok)
		assert.Len(t, parseErr.Issues, 2)
	})

	t.Run("empty expression", func(t *testing.T) {
		_, err := ParseFilterExpression("")
		assert.NotNil(t, err)
	})

	t.Run("bad array indexes", func(t *testing.T) {
		_, err := ParseFilterExpression("ANN[x].Gene_Name")
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "expected an array index or '*'")

		_, err = ParseFilterExpression("ANN[1.5].Gene_Name")
		assert.NotNil(t, err)

		_, err = ParseFilterExpression("ANN[].Gene_Name")
		assert.NotNil(t, err)
	})

	t.Run("unclosed group", func(t *testing.T) {
		_, err := ParseFilterExpression("(QUAL > 30")
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "expected \")\"")
	})

	t.Run("dangling subfield dot", func(t *testing.T) {
		_, err := ParseFilterExpression("INFO.")
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "expected a subfield name")
	})
}
