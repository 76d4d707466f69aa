package headers

import (
	"fmt"
	"strings"

	fieldArity "varsift/api/models/constants/field-arity"
	fieldType "varsift/api/models/constants/field-type"
	"varsift/api/models/schema"
)

const infoDeclarationPrefix = "##INFO="

var subfieldNormalizer = strings.NewReplacer(" ", "_", ".", "_", "/", "_")

// HeaderParseError reports a malformed ##INFO declaration. Only ResolveStrict
// returns it; Resolve skips malformed lines instead.
type HeaderParseError struct {
	Message string
}

func (e *HeaderParseError) Error() string {
	return fmt.Sprintf("Header parse error: %s", e.Message)
}

// Resolve scans header text for ##INFO declarations and builds the field
// schema. Lines that do not match the declaration shape, or that are missing
// any of the required ID/Number/Type attributes, are skipped silently; an
// empty or header-less input resolves to an empty schema without error.
func Resolve(headerText string) *schema.VcfHeaderSchema {
	fields := make(map[string]schema.FieldMetadata)

	for _, line := range strings.Split(headerText, "\n") {
		line = strings.TrimSuffix(line, "\r")

		meta, ok := resolveDeclaration(line)
		if !ok {
			continue
		}
		fields[meta.Id] = meta
	}

	return schema.New(fields)
}

// ResolveStrict behaves like Resolve but rejects the first ##INFO line that
// is not shaped like a declaration or is missing ID, Number or Type. Lines
// that are not ##INFO declarations at all are still ignored.
func ResolveStrict(headerText string) (*schema.VcfHeaderSchema, error) {
	fields := make(map[string]schema.FieldMetadata)

	for _, line := range strings.Split(headerText, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if !strings.HasPrefix(line, infoDeclarationPrefix) {
			continue
		}
		meta, ok := resolveDeclaration(line)
		if !ok {
			return nil, &HeaderParseError{Message: fmt.Sprintf("Malformed INFO declaration: %q", line)}
		}
		fields[meta.Id] = meta
	}

	return schema.New(fields), nil
}

func resolveDeclaration(line string) (schema.FieldMetadata, bool) {
	if !strings.HasPrefix(line, infoDeclarationPrefix) {
		return schema.FieldMetadata{}, false
	}

	openIndex := strings.IndexByte(line, '<')
	closeIndex := strings.LastIndexByte(line, '>')
	if openIndex == -1 || closeIndex == -1 || closeIndex <= openIndex {
		return schema.FieldMetadata{}, false
	}

	attributes := splitAttributes(line[openIndex+1 : closeIndex])

	id, hasId := attributes["ID"]
	numberToken, hasNumber := attributes["Number"]
	typeToken, hasType := attributes["Type"]
	if !hasId || !hasNumber || !hasType {
		return schema.FieldMetadata{}, false
	}

	arity, arityCount := fieldArity.Parse(numberToken)
	description := attributes["Description"]

	return schema.FieldMetadata{
		Id:             id,
		Arity:          arity,
		ArityCount:     arityCount,
		Type:           fieldType.Parse(typeToken),
		Description:    description,
		SubfieldSchema: extractSubfieldSchema(description),
	}, true
}

// splitAttributes walks `key=value` pairs separated by commas. Quoted values
// run to the next closing quote and may embed commas; there is no escape
// processing. Unquoted values terminate at the next comma or end of content.
func splitAttributes(text string) map[string]string {
	attributes := make(map[string]string)

	i := 0
	for i < len(text) {
		eqOffset := strings.IndexByte(text[i:], '=')
		if eqOffset == -1 {
			break
		}
		key := strings.TrimSpace(text[i : i+eqOffset])
		i += eqOffset + 1

		var value string
		if i < len(text) && text[i] == '"' {
			quoteOffset := strings.IndexByte(text[i+1:], '"')
			if quoteOffset == -1 {
				value = text[i+1:]
				i = len(text)
			} else {
				value = text[i+1 : i+1+quoteOffset]
				i += quoteOffset + 2
				if i < len(text) && text[i] == ',' {
					i++
				}
			}
		} else {
			commaOffset := strings.IndexByte(text[i:], ',')
			if commaOffset == -1 {
				value = text[i:]
				i = len(text)
			} else {
				value = text[i : i+commaOffset]
				i += commaOffset + 1
			}
		}

		attributes[key] = value
	}

	return attributes
}

// extractSubfieldSchema pulls the positional subfield names out of the first
// single-quoted span of a description, e.g.
//
//	"Functional annotations: 'Allele | Annotation | Gene_Name'"
//
// Segments are trimmed, spaces/dots/slashes become underscores, and empties
// are dropped; anything short of two surviving segments means no schema.
func extractSubfieldSchema(description string) []string {
	startIndex := strings.IndexByte(description, '\'')
	if startIndex == -1 {
		return nil
	}
	endOffset := strings.IndexByte(description[startIndex+1:], '\'')
	if endOffset == -1 {
		return nil
	}

	span := description[startIndex+1 : startIndex+1+endOffset]
	if !strings.Contains(span, "|") {
		return nil
	}

	var segments []string
	for _, raw := range strings.Split(span, "|") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		segments = append(segments, subfieldNormalizer.Replace(trimmed))
	}

	if len(segments) < 2 {
		return nil
	}
	return segments
}
