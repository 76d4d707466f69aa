package rows

import (
	"fmt"
	"strconv"
	"strings"

	fieldArity "varsift/api/models/constants/field-arity"
	fieldType "varsift/api/models/constants/field-type"
	"varsift/api/models/schema"
	"varsift/api/models/values"
	"varsift/api/models/vcf"
)

// RowParseError reports a data line that cannot be decoded (bad column
// count or an unusable required column). It is fatal for that row only;
// callers streaming many rows decide whether to abort or skip.
type RowParseError struct {
	Message string
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("Row parse error: %s", e.Message)
}

// DecodeVcfRow turns one tab-separated data line into a VcfRow using the
// header schema for INFO typing. The line must carry at least the 8 fixed
// columns (CHROM, POS, ID, REF, ALT, QUAL, FILTER, INFO); FORMAT and a first
// sample column are decoded when both are present.
func DecodeVcfRow(line string, headerSchema *schema.VcfHeaderSchema) (*vcf.VcfRow, error) {
	columns := strings.Split(line, "\t")

	if len(columns) < 8 {
		return nil, &RowParseError{Message: fmt.Sprintf("Expected at least 8 columns, got %d", len(columns))}
	}

	pos, err := strconv.ParseInt(columns[1], 10, 64)
	if err != nil || pos < 0 {
		return nil, &RowParseError{Message: fmt.Sprintf("Invalid POS: %q", columns[1])}
	}

	id := values.Missing()
	if columns[2] != "." {
		id = values.String(columns[2])
	}

	var altAlleles []string
	if columns[4] != "." {
		altAlleles = strings.Split(columns[4], ",")
	}

	// a QUAL that fails to parse degrades to absent instead of failing the row
	qual := values.Missing()
	if columns[5] != "." {
		if num, ok := values.ParseFloat(columns[5]); ok {
			qual = values.Number(num)
		}
	}

	var filterStatuses []string
	if columns[6] != "." {
		filterStatuses = strings.Split(columns[6], ";")
	}

	formatValues := map[string]values.Value{}
	if len(columns) >= 10 {
		formatValues = decodeFormatColumns(columns[8], columns[9])
	}

	return &vcf.VcfRow{
		Chrom:          columns[0],
		Pos:            pos,
		Id:             id,
		Ref:            columns[3],
		Alt:            altAlleles,
		Qual:           qual,
		FilterStatuses: filterStatuses,
		InfoValues:     decodeInfoColumn(columns[7], headerSchema),
		FormatValues:   formatValues,
	}, nil
}

// decodeInfoColumn splits the INFO column on ';' into key=value entries and
// bare flag keys (decoded as Bool true), typing each value through the
// header schema when the key is declared there.
func decodeInfoColumn(infoColumn string, headerSchema *schema.VcfHeaderSchema) map[string]values.Value {
	infoValues := map[string]values.Value{}

	if infoColumn == "." {
		return infoValues
	}

	for _, entry := range strings.Split(infoColumn, ";") {
		if entry == "" {
			continue
		}

		key, rawValue, hasValue := strings.Cut(entry, "=")
		if !hasValue {
			infoValues[entry] = values.Bool(true)
			continue
		}

		if meta, known := headerSchema.Field(key); known {
			infoValues[key] = decodeTypedInfoValue(rawValue, meta)
		} else {
			infoValues[key] = decodeUntypedInfoValue(rawValue)
		}
	}

	return infoValues
}

// decodeTypedInfoValue decodes a declared INFO value. Fields with a subfield
// schema always decode to an array of fixed-length positional arrays, one
// inner array per comma-separated annotation instance; positions an instance
// does not supply are Missing.
func decodeTypedInfoValue(rawValue string, meta schema.FieldMetadata) values.Value {
	if meta.HasSubfieldSchema() {
		instances := strings.Split(rawValue, ",")
		annotations := make([]values.Value, 0, len(instances))
		for _, instance := range instances {
			parts := strings.Split(instance, "|")
			positional := make([]values.Value, len(meta.SubfieldSchema))
			for i := range meta.SubfieldSchema {
				if i < len(parts) {
					positional[i] = values.String(parts[i])
				} else {
					positional[i] = values.Missing()
				}
			}
			annotations = append(annotations, values.Array(positional))
		}
		return values.Array(annotations)
	}

	singleCount := meta.Arity == fieldArity.FixedCount && meta.ArityCount == 1

	switch {
	case singleCount && meta.Type == fieldType.Integer:
		return integerOrString(rawValue)

	case singleCount && meta.Type == fieldType.Float:
		return values.NumberOrString(rawValue)

	case meta.Arity == fieldArity.Flag:
		// a flag is true no matter what payload was attached to it
		return values.Bool(true)

	case meta.Type == fieldType.Integer:
		return collapseSegments(rawValue, integerOrString)

	case meta.Type == fieldType.Float:
		return collapseSegments(rawValue, values.NumberOrString)

	default:
		if strings.Contains(rawValue, ",") && !strings.Contains(rawValue, "|") {
			return splitToStrings(rawValue)
		}
		return values.String(rawValue)
	}
}

// decodeUntypedInfoValue best-effort decodes a value whose key is absent
// from the header: a parseable number, else a comma list of strings, else a
// plain string.
func decodeUntypedInfoValue(rawValue string) values.Value {
	if num, ok := values.ParseFloat(rawValue); ok {
		return values.Number(num)
	}
	if strings.Contains(rawValue, ",") && !strings.Contains(rawValue, "|") {
		return splitToStrings(rawValue)
	}
	return values.String(rawValue)
}

// decodeFormatColumns zips the ':'-separated FORMAT keys against the
// ':'-separated sample values by position. A '.' value is Missing; keys
// without a value are dropped, values without a key are ignored.
func decodeFormatColumns(formatColumn string, sampleColumn string) map[string]values.Value {
	formatValues := map[string]values.Value{}

	formatKeys := strings.Split(formatColumn, ":")
	sampleParts := strings.Split(sampleColumn, ":")

	for i, key := range formatKeys {
		if i >= len(sampleParts) {
			break
		}
		if sampleParts[i] == "." {
			formatValues[key] = values.Missing()
		} else {
			formatValues[key] = values.String(sampleParts[i])
		}
	}

	return formatValues
}

func integerOrString(segment string) values.Value {
	if n, err := strconv.ParseInt(segment, 10, 64); err == nil {
		return values.Number(float64(n))
	}
	return values.String(segment)
}

func collapseSegments(rawValue string, decodeSegment func(string) values.Value) values.Value {
	segments := strings.Split(rawValue, ",")
	decoded := make([]values.Value, 0, len(segments))
	for _, segment := range segments {
		decoded = append(decoded, decodeSegment(segment))
	}
	if len(decoded) == 1 {
		return decoded[0]
	}
	return values.Array(decoded)
}

func splitToStrings(rawValue string) values.Value {
	parts := strings.Split(rawValue, ",")
	items := make([]values.Value, 0, len(parts))
	for _, part := range parts {
		items = append(items, values.String(part))
	}
	return values.Array(items)
}
