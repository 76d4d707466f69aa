package indexes

import (
	"time"
)

// FilteredVariant is the document indexed for every row that passes the
// filter expression of an ingestion run.
type FilteredVariant struct {
	Chrom  string   `json:"chrom"`
	Pos    int64    `json:"pos"`
	Id     string   `json:"id"`
	Ref    string   `json:"ref"`
	Alt    []string `json:"alt"`
	Qual   float64  `json:"qual"` // -1 = missing (equivalent to a '.')
	Filter []string `json:"filter"`
	Info   []Info   `json:"info"`

	SampleId    string    `json:"sampleId"` // empty for site-only files
	RunId       string    `json:"runId"`
	Filename    string    `json:"filename"`
	FilterUsed  string    `json:"filterUsed"`
	CreatedTime time.Time `json:"createdTime"`
}

type Info struct {
	Id    string `json:"id"`
	Value string `json:"value"`
}

var MAPPING_FIELDS_KEYWORD_IG256 = map[string]interface{}{
	"keyword": map[string]interface{}{
		"type":         "keyword",
		"ignore_above": 256,
	},
}
var MAPPING_TEXT = map[string]interface{}{"type": "text", "fields": MAPPING_FIELDS_KEYWORD_IG256}
var MAPPING_LONG = map[string]interface{}{"type": "long"}
var MAPPING_FLOAT64 = map[string]interface{}{"type": "double"}
var MAPPING_BOOL = map[string]interface{}{"type": "boolean"}
var MAPPING_DATE = map[string]interface{}{"type": "date"}

var FILTERED_VARIANT_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"chrom":  MAPPING_TEXT,
		"pos":    MAPPING_LONG,
		"id":     MAPPING_TEXT,
		"ref":    MAPPING_TEXT,
		"alt":    MAPPING_TEXT,
		"qual":   MAPPING_FLOAT64,
		"filter": MAPPING_TEXT,
		"info": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":    MAPPING_TEXT,
				"value": MAPPING_TEXT,
			},
		},
		"sampleId":    MAPPING_TEXT,
		"runId":       MAPPING_TEXT,
		"filename":    MAPPING_TEXT,
		"filterUsed":  MAPPING_TEXT,
		"createdTime": MAPPING_DATE,
	},
}
