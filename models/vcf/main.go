package vcf

import (
	"varsift/api/models/values"
)

// VcfRow is one decoded data line. It is built fresh per line, carries no
// back-reference to the header schema, and is never mutated after decoding.
//
// Id and Qual hold String/Number values or Missing for the `.` sentinel.
// InfoValues and FormatValues are the two distinct lookup namespaces: INFO
// entries are per-record annotations, FORMAT entries are the per-sample
// genotype fields zipped from the FORMAT and sample columns.
type VcfRow struct {
	Chrom          string
	Pos            int64
	Id             values.Value
	Ref            string
	Alt            []string
	Qual           values.Value
	FilterStatuses []string
	InfoValues     map[string]values.Value
	FormatValues   map[string]values.Value
}

// Get resolves a bare field name against the row. The builtin column names
// resolve directly (ALT and FILTER collapse to a bare string when they hold
// exactly one element); any other name checks INFO first and falls back to
// FORMAT, so an INFO entry is never shadowed. Unresolved names are Missing.
func (r *VcfRow) Get(name string) values.Value {
	switch name {
	case "CHROM":
		return values.String(r.Chrom)
	case "POS":
		return values.Number(float64(r.Pos))
	case "ID":
		return r.Id
	case "REF":
		return values.String(r.Ref)
	case "ALT":
		return collapseStrings(r.Alt)
	case "QUAL":
		return r.Qual
	case "FILTER":
		return collapseStrings(r.FilterStatuses)
	}

	if value, ok := r.InfoValues[name]; ok {
		return value
	}
	if value, ok := r.FormatValues[name]; ok {
		return value
	}
	return values.Missing()
}

func collapseStrings(items []string) values.Value {
	if len(items) == 1 {
		return values.String(items[0])
	}
	arr := make([]values.Value, 0, len(items))
	for _, item := range items {
		arr = append(arr, values.String(item))
	}
	return values.Array(arr)
}
