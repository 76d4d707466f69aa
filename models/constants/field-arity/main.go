package fieldArity

import (
	"strconv"

	"varsift/api/models/constants"
)

const (
	FixedCount constants.FieldArity = iota
	PerAltAllele
	PerGenotype
	PerAllele
	Variable
	Flag
)

// Parse maps a header 'Number' token to an arity. The count return is only
// meaningful for FixedCount. Tokens that match none of the reserved markers
// and do not parse as a non-negative integer fall back to a fixed count of
// one rather than failing (permissive on purpose).
func Parse(token string) (constants.FieldArity, int) {
	switch token {
	case "A":
		return PerAltAllele, 0
	case "G":
		return PerGenotype, 0
	case "R":
		return PerAllele, 0
	case ".":
		return Variable, 0
	case "0":
		return Flag, 0
	}

	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return FixedCount, n
	}

	return FixedCount, 1
}

func ToString(arity constants.FieldArity) string {
	switch arity {
	case PerAltAllele:
		return "A"
	case PerGenotype:
		return "G"
	case PerAllele:
		return "R"
	case Variable:
		return "."
	case Flag:
		return "0"
	default:
		return "FixedCount"
	}
}
