package ingest

import (
	"github.com/google/uuid"
)

type State string

const (
	Queued  State = "Queued"
	Running       = "Running"
	Done          = "Done"
	Error         = "Error"
)

type IngestRequest struct {
	Id        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Filter    string    `json:"filter"`
	State     State     `json:"state"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type IngestResponseDTO struct {
	Id       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Filter   string    `json:"filter"`
	State    State     `json:"state"`
	Message  string    `json:"message"`
}

// IngestionStats tallies one service's lifetime of filtering work. The row
// counters come from the decode and evaluate pipeline; the Num* counters
// are copied off the Elasticsearch bulk indexer.
type IngestionStats struct {
	RowsRead    uint64 `json:"rowsRead"`
	RowsPassed  uint64 `json:"rowsPassed"`
	RowsErrored uint64 `json:"rowsErrored"`

	NumAdded   uint64 `json:"numAdded"`
	NumFlushed uint64 `json:"numFlushed"`
	NumFailed  uint64 `json:"numFailed"`
	NumIndexed uint64 `json:"numIndexed"`
}
