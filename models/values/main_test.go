package values

import (
	"testing"

	valueKind "varsift/api/models/constants/value-kind"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsMissing(t *testing.T) {
	var v Value
	assert.True(t, v.IsMissing())
	assert.Equal(t, valueKind.Missing, v.Kind())
	assert.Equal(t, "Missing", v.KindName())
}

func TestConstructorsAndAccessors(t *testing.T) {
	str := String("PASS")
	s, ok := str.AsString()
	assert.True(t, ok)
	assert.Equal(t, "PASS", s)
	_, ok = str.AsNumber()
	assert.False(t, ok)

	num := Number(617.77)
	n, ok := num.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 617.77, n)
	assert.Equal(t, "Number", num.KindName())

	b := Bool(true)
	bv, ok := b.AsBool()
	assert.True(t, ok)
	assert.True(t, bv)

	arr := Array([]Value{Number(1), Number(2)})
	items, ok := arr.AsArray()
	assert.True(t, ok)
	assert.Len(t, items, 2)
	_, ok = arr.AsBool()
	assert.False(t, ok)
}

func TestTruthiness(t *testing.T) {
	assert.True(t, Bool(true).Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, String("PASS").Truthy())
	assert.False(t, String("").Truthy())
	assert.True(t, Number(0.5).Truthy())
	assert.False(t, Number(0).Truthy())
	assert.True(t, Array([]Value{Missing()}).Truthy())
	assert.False(t, Array(nil).Truthy())
	assert.False(t, Missing().Truthy())
}

func TestRendering(t *testing.T) {
	assert.Equal(t, ".", Missing().String())
	assert.Equal(t, "30", Number(30).String())
	assert.Equal(t, "617.77", Number(617.77).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "[1, G]", Array([]Value{Number(1), String("G")}).String())
}

func TestParseFloat(t *testing.T) {
	num, ok := ParseFloat("30")
	assert.True(t, ok)
	assert.Equal(t, 30.0, num)

	num, ok = ParseFloat("6.17e2")
	assert.True(t, ok)
	assert.Equal(t, 617.0, num)

	// no whitespace trimming
	_, ok = ParseFloat("30 ")
	assert.False(t, ok)

	_, ok = ParseFloat("")
	assert.False(t, ok)

	_, ok = ParseFloat("PASS")
	assert.False(t, ok)
}

func TestNumberOrString(t *testing.T) {
	v := NumberOrString("0.5")
	num, ok := v.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 0.5, num)

	v = NumberOrString("missense_variant")
	s, ok := v.AsString()
	assert.True(t, ok)
	assert.Equal(t, "missense_variant", s)
}

func TestEquality(t *testing.T) {
	t.Run("numbers compare within machine epsilon", func(t *testing.T) {
		assert.True(t, Equal(Number(0.3), Number(0.1+0.2)))
		assert.False(t, Equal(Number(1), Number(1.000001)))
	})

	t.Run("numeric strings compare against numbers", func(t *testing.T) {
		assert.True(t, Equal(String("30"), Number(30)))
		assert.True(t, Equal(Number(30), String("30")))
		assert.False(t, Equal(String("PASS"), Number(30)))
	})

	t.Run("strings compare byte for byte", func(t *testing.T) {
		assert.True(t, Equal(String("PASS"), String("PASS")))
		assert.False(t, Equal(String("PASS"), String("pass")))
	})

	t.Run("bools only equal bools", func(t *testing.T) {
		assert.True(t, Equal(Bool(true), Bool(true)))
		assert.False(t, Equal(Bool(true), Bool(false)))
		assert.False(t, Equal(Bool(true), Number(1)))
	})

	t.Run("missing only equals missing", func(t *testing.T) {
		assert.True(t, Equal(Missing(), Missing()))
		assert.False(t, Equal(Missing(), String("")))
		assert.False(t, Equal(Number(0), Missing()))
	})

	t.Run("arrays never compare equal directly", func(t *testing.T) {
		assert.False(t, Equal(Array([]Value{Number(1)}), Array([]Value{Number(1)})))
	})
}
