package filter

/*
	Ties header resolution, row decoding, expression parsing and
	evaluation together behind one engine so callers can hold a single
	handle per VCF stream. Each stage stays callable on its own for
	callers that want to compile once and stream many rows.
*/

import (
	"varsift/api/models/schema"
	"varsift/api/models/values"
	"varsift/api/models/vcf"
	"varsift/api/services/headers"
	"varsift/api/services/rows"
)

// FilterEngine binds a resolved VCF header to the row decoder and the
// expression evaluator so both work from the same schema.
type FilterEngine struct {
	headerSchema *schema.VcfHeaderSchema
}

// NewFilterEngine resolves the ##INFO declarations out of a full header
// block (all lines up to and including #CHROM). Malformed declarations are
// skipped rather than rejected, so construction always succeeds.
func NewFilterEngine(headerText string) *FilterEngine {
	return &FilterEngine{headerSchema: headers.Resolve(headerText)}
}

func (e *FilterEngine) HeaderSchema() *schema.VcfHeaderSchema {
	return e.headerSchema
}

// CompiledFilter is a parsed expression ready to be applied to any number
// of rows.
type CompiledFilter struct {
	Expression Expression
	Source     string
}

// CompileExpression parses the expression once up front so a stream of
// rows never pays for reparsing, and so syntax errors surface before any
// data is read.
func (e *FilterEngine) CompileExpression(text string) (*CompiledFilter, error) {
	expression, err := ParseFilterExpression(text)
	if err != nil {
		return nil, err
	}
	return &CompiledFilter{Expression: expression, Source: text}, nil
}

// DecodeRow decodes one tab-separated data line under the engine's header
// schema.
func (e *FilterEngine) DecodeRow(line string) (*vcf.VcfRow, error) {
	return rows.DecodeVcfRow(line, e.headerSchema)
}

// EvaluateRow returns the raw value a compiled filter produces for a row.
func (e *FilterEngine) EvaluateRow(compiled *CompiledFilter, row *vcf.VcfRow) (values.Value, error) {
	return Evaluate(compiled.Expression, row, e.headerSchema)
}

// MatchRow decides whether a row passes the filter. Only a boolean true
// accepts; an expression that resolves to a plain field value rejects the
// row no matter how truthy that value looks.
func (e *FilterEngine) MatchRow(compiled *CompiledFilter, row *vcf.VcfRow) (bool, error) {
	result, err := e.EvaluateRow(compiled, row)
	if err != nil {
		return false, err
	}
	accepted, _ := result.AsBool()
	return accepted, nil
}

// MatchLine decodes and matches in one step.
func (e *FilterEngine) MatchLine(compiled *CompiledFilter, line string) (bool, error) {
	row, err := e.DecodeRow(line)
	if err != nil {
		return false, err
	}
	return e.MatchRow(compiled, row)
}

// Matches compiles and applies an expression in one call, for one-shot
// checks where nothing is reused.
func (e *FilterEngine) Matches(filterText string, row *vcf.VcfRow) (bool, error) {
	compiled, err := e.CompileExpression(filterText)
	if err != nil {
		return false, err
	}
	return e.MatchRow(compiled, row)
}
