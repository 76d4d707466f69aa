package structs

import (
	"sync"

	"varsift/api/models/indexes"
)

type IngestionQueueStructure struct {
	Variant   *indexes.FilteredVariant
	WaitGroup *sync.WaitGroup
}
