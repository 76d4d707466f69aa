package fieldType

import (
	"varsift/api/models/constants"
)

const (
	Integer   constants.FieldType = "Integer"
	Float     constants.FieldType = "Float"
	Flag      constants.FieldType = "Flag"
	Character constants.FieldType = "Character"
	String    constants.FieldType = "String"
)

// Parse maps a header 'Type' token to a field type, defaulting to String
// for anything unrecognized.
func Parse(token string) constants.FieldType {
	switch token {
	case "Integer":
		return Integer
	case "Float":
		return Float
	case "Flag":
		return Flag
	case "Character":
		return Character
	default:
		return String
	}
}

func IsNumeric(fieldType constants.FieldType) bool {
	return fieldType == Integer || fieldType == Float
}
