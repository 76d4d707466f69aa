package filter

import (
	"testing"

	"varsift/api/models/schema"
	"varsift/api/models/values"
	"varsift/api/models/vcf"
	"varsift/api/services/headers"
	"varsift/api/services/rows"

	"github.com/stretchr/testify/assert"
)

const fullHeader = "##fileformat=VCFv4.2\n" +
	"##INFO=<ID=DP,Number=1,Type=Integer,Description=\"Total Depth\">\n" +
	"##INFO=<ID=AF,Number=A,Type=Float,Description=\"Allele Frequency\">\n" +
	"##INFO=<ID=DB,Number=0,Type=Flag,Description=\"dbSNP membership\">\n" +
	"##INFO=<ID=AC,Number=A,Type=Integer,Description=\"Allele count\">\n" +
	"##INFO=<ID=ANN,Number=.,Type=String,Description=\"Functional annotations: 'Allele | Annotation | Annotation_Impact | Gene_Name'\">\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tNA12878"

const realRow = "1\t230710048\trs3737940\tA\tG\t617.77\tPASS\t" +
	"DP=30;AF=0.5;DB;AC=1,2;ANN=G|missense_variant|MODERATE|AGT,G|downstream_gene_variant|MODIFIER|MTARC2\t" +
	"GT:DP:GQ\t0/1:15:99"

func decodeRealRow(t *testing.T) (*vcf.VcfRow, *schema.VcfHeaderSchema) {
	t.Helper()
	headerSchema := headers.Resolve(fullHeader)
	row, err := rows.DecodeVcfRow(realRow, headerSchema)
	assert.Nil(t, err)
	return row, headerSchema
}

func evaluate(t *testing.T, filterText string, row *vcf.VcfRow, headerSchema *schema.VcfHeaderSchema) values.Value {
	t.Helper()
	expr, err := ParseFilterExpression(filterText)
	assert.Nil(t, err, filterText)
	result, err := Evaluate(expr, row, headerSchema)
	assert.Nil(t, err, filterText)
	return result
}

func assertVerdict(t *testing.T, want bool, result values.Value, filterText string) {
	t.Helper()
	got, ok := result.AsBool()
	assert.True(t, ok, filterText)
	assert.Equal(t, want, got, filterText)
}

func TestEvaluateComparisons(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	cases := map[string]bool{
		"QUAL > 30":          true,
		"QUAL > 617.77":      false,
		"QUAL > 1000":        false,
		"QUAL == 617.77":     true,
		"QUAL >= 617.77":     true,
		"QUAL <= 617.77":     true,
		"QUAL < 617.77":      false,
		"INFO.DP == 30":      true,
		"INFO.DP != 30":      false,
		"POS > 1000000":      true,
		"CHROM == \"1\"":     true,
		"REF == \"A\"":       true,
		"ID contains \"rs\"": true,
		"ID contains \"xx\"": false,

		"(QUAL > 30 && FILTER == \"PASS\") && ANN[0].Annotation_Impact == \"MODERATE\"": true,
	}

	for filterText, want := range cases {
		assertVerdict(t, want, evaluate(t, filterText, row, headerSchema), filterText)
	}
}

func TestEvaluateNumericStringCoercion(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	// the sample namespace decodes to strings, but digits still order
	// numerically ("15" > "9" would fail lexicographically)
	assertVerdict(t, true, evaluate(t, "FORMAT.DP == 15", row, headerSchema), "FORMAT.DP == 15")
	assertVerdict(t, true, evaluate(t, "FORMAT.DP > 9", row, headerSchema), "FORMAT.DP > 9")
	assertVerdict(t, true, evaluate(t, "FORMAT.GQ >= 99", row, headerSchema), "FORMAT.GQ >= 99")
}

func TestEvaluateLogicalShortCircuit(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	// the right side would mismatch, but the left decides first
	assertVerdict(t, false, evaluate(t, "false && (DB < \"x\")", row, headerSchema), "&&")
	assertVerdict(t, true, evaluate(t, "true || (DB < \"x\")", row, headerSchema), "||")

	// when the left does not decide, the mismatch surfaces
	expr, err := ParseFilterExpression("true && (DB < \"x\")")
	assert.Nil(t, err)
	_, evalErr := Evaluate(expr, row, headerSchema)
	assert.NotNil(t, evalErr)
	assert.Equal(t, "Type mismatch: cannot compare bool with string", evalErr.Error())
}

func TestEvaluateLogicalTruthiness(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	// non-boolean operands coerce through truthiness inside logic
	assertVerdict(t, true, evaluate(t, "INFO.DP && QUAL", row, headerSchema), "INFO.DP && QUAL")
	assertVerdict(t, true, evaluate(t, "INFO.NOPE || QUAL", row, headerSchema), "missing || QUAL")
	assertVerdict(t, false, evaluate(t, "INFO.NOPE && QUAL", row, headerSchema), "missing && QUAL")
	assertVerdict(t, true, evaluate(t, "DB", row, headerSchema), "bare flag")
	assertVerdict(t, true, evaluate(t, "!INFO.NOPE", row, headerSchema), "!missing")
}

func TestEvaluateOrderingRules(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	// missing operands never order, and never error
	assertVerdict(t, false, evaluate(t, "INFO.NOPE < 5", row, headerSchema), "missing < 5")
	assertVerdict(t, false, evaluate(t, "INFO.NOPE >= 5", row, headerSchema), "missing >= 5")

	// two strings order lexicographically
	assertVerdict(t, true, evaluate(t, "REF < \"B\"", row, headerSchema), "REF < B")
	assertVerdict(t, false, evaluate(t, "REF > \"B\"", row, headerSchema), "REF > B")

	// incompatible kinds mismatch
	expr, err := ParseFilterExpression("DB > 1")
	assert.Nil(t, err)
	_, evalErr := Evaluate(expr, row, headerSchema)
	assert.NotNil(t, evalErr)
	assert.Equal(t, "Type mismatch: cannot compare bool with number", evalErr.Error())
}

func TestEvaluateMissingSemantics(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	assertVerdict(t, true, evaluate(t, "exists(INFO.DP)", row, headerSchema), "exists INFO.DP")
	assertVerdict(t, false, evaluate(t, "exists(INFO.NOPE)", row, headerSchema), "exists INFO.NOPE")
	assertVerdict(t, true, evaluate(t, "exists(QUAL)", row, headerSchema), "exists QUAL")

	assertVerdict(t, true, evaluate(t, "INFO.NOPE == FORMAT.NOPE", row, headerSchema), "missing == missing")
	assertVerdict(t, false, evaluate(t, "INFO.NOPE == 0", row, headerSchema), "missing == 0")
	assertVerdict(t, true, evaluate(t, "INFO.NOPE != 0", row, headerSchema), "missing != 0")
}

func TestEvaluateNamespaces(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	// the same key resolves differently per namespace
	assertVerdict(t, true, evaluate(t, "INFO.DP == 30", row, headerSchema), "INFO.DP")
	assertVerdict(t, true, evaluate(t, "FORMAT.DP == 15", row, headerSchema), "FORMAT.DP")

	// namespaces are strict: INFO never falls through to FORMAT
	assertVerdict(t, false, evaluate(t, "INFO.GT == \"0/1\"", row, headerSchema), "INFO.GT")
	assertVerdict(t, true, evaluate(t, "FORMAT.GT == \"0/1\"", row, headerSchema), "FORMAT.GT")

	// a bare name checks INFO before FORMAT
	assertVerdict(t, true, evaluate(t, "DP == 30", row, headerSchema), "bare DP")
}

func TestEvaluateAnnotationAccess(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	assertVerdict(t, true, evaluate(t, "ANN[0].Gene_Name == \"AGT\"", row, headerSchema), "ANN[0]")
	assertVerdict(t, true, evaluate(t, "ANN[1].Gene_Name == \"MTARC2\"", row, headerSchema), "ANN[1]")
	assertVerdict(t, false, evaluate(t, "ANN[0].Gene_Name == \"MTARC2\"", row, headerSchema), "ANN[0] wrong gene")

	// a wildcard folds across every annotation instance
	assertVerdict(t, true, evaluate(t, "ANN[*].Gene_Name == \"MTARC2\"", row, headerSchema), "ANN[*] ==")
	assertVerdict(t, true, evaluate(t, "ANN[*].Annotation contains \"missense\"", row, headerSchema), "ANN[*] contains")
	assertVerdict(t, false, evaluate(t, "ANN[*].Annotation_Impact == \"HIGH\"", row, headerSchema), "ANN[*] no match")

	// inequality over a wildcard holds only when no instance matches
	assertVerdict(t, true, evaluate(t, "ANN[*].Gene_Name != \"BRCA1\"", row, headerSchema), "ANN[*] != absent")
	assertVerdict(t, false, evaluate(t, "ANN[*].Gene_Name != \"AGT\"", row, headerSchema), "ANN[*] != present")

	// out of range and undeclared subfields resolve to missing
	assertVerdict(t, false, evaluate(t, "exists(ANN[9].Gene_Name)", row, headerSchema), "ANN[9]")
	assertVerdict(t, false, evaluate(t, "exists(ANN[0].Nope)", row, headerSchema), "ANN[0].Nope")

	// an index on a plain array field picks the element
	assertVerdict(t, true, evaluate(t, "AC[0] == 1", row, headerSchema), "AC[0]")
	assertVerdict(t, true, evaluate(t, "AC[1] == 2", row, headerSchema), "AC[1]")
	assertVerdict(t, false, evaluate(t, "exists(AC[5])", row, headerSchema), "AC[5]")
}

func TestEvaluateArrayFolds(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	// equality passes when any element matches; inequality needs all to differ
	assertVerdict(t, true, evaluate(t, "AC == 2", row, headerSchema), "AC == 2")
	assertVerdict(t, false, evaluate(t, "AC != 2", row, headerSchema), "AC != 2")
	assertVerdict(t, true, evaluate(t, "AC != 7", row, headerSchema), "AC != 7")

	// ordering passes when any element orders
	assertVerdict(t, true, evaluate(t, "AC > 1", row, headerSchema), "AC > 1")
	assertVerdict(t, false, evaluate(t, "AC > 2", row, headerSchema), "AC > 2")

	// a per-element mismatch is a non-match, not an error
	assertVerdict(t, false, evaluate(t, "AC > \"x\"", row, headerSchema), "AC > x")

	// contains scans string elements
	assertVerdict(t, true, evaluate(t, "ANN[*].Gene_Name contains \"TARC\"", row, headerSchema), "fold contains")
}

func TestEvaluateMalformedPath(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	_, err := Evaluate(&FieldPath{Parts: []AccessPart{IndexPart(0)}}, row, headerSchema)
	assert.NotNil(t, err)
	assert.Equal(t, "Evaluation error: variable must start with a field name", err.Error())
}

func TestEvaluateNamespacePrefixAlone(t *testing.T) {
	row, headerSchema := decodeRealRow(t)

	// INFO with no field resolves to nothing rather than erroring
	result := evaluate(t, "exists(INFO)", row, headerSchema)
	assertVerdict(t, false, result, "exists(INFO)")
}

func TestEvaluateFormatFallback(t *testing.T) {
	headerSchema := headers.Resolve(fullHeader)
	row, err := rows.DecodeVcfRow("1\t55\t.\tT\tC\t40\tPASS\tAF=0.5\tGT:DP\t0/1:15", headerSchema)
	assert.Nil(t, err)

	// no INFO DP on this row, so the bare name falls through to FORMAT
	assertVerdict(t, true, evaluate(t, "DP > 12", row, headerSchema), "bare DP via FORMAT")
	assertVerdict(t, false, evaluate(t, "exists(INFO.DP)", row, headerSchema), "exists INFO.DP")
	assertVerdict(t, true, evaluate(t, "exists(FORMAT.DP)", row, headerSchema), "exists FORMAT.DP")

	// FORMAT values are flat; a subfield under one resolves to nothing
	assertVerdict(t, false, evaluate(t, "exists(FORMAT.DP.X)", row, headerSchema), "exists FORMAT.DP.X")
}
