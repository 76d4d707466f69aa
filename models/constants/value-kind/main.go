package valueKind

import (
	"varsift/api/models/constants"
)

const (
	// Missing is the zero value so that an unset Value is absent by default
	Missing constants.ValueKind = iota
	String
	Number
	Bool
	Array
)

func ToString(kind constants.ValueKind) string {
	switch kind {
	case String:
		return "String"
	case Number:
		return "Number"
	case Bool:
		return "Bool"
	case Array:
		return "Array"
	default:
		return "Missing"
	}
}
