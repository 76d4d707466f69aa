package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"varsift/api/models"
	"varsift/api/models/indexes"

	"github.com/elastic/go-elasticsearch/v7"
)

// FilteredVariantsIndex holds every variant document that passed a filter,
// across all runs. Documents carry their runId.
const FilteredVariantsIndex = "filtered-variants"

func CreateFilteredVariantsIndex(cfg *models.Config, es *elasticsearch.Client) error {

	// overall mapping structure
	var buf bytes.Buffer
	body := map[string]interface{}{
		"mappings": indexes.FILTERED_VARIANT_INDEX_MAPPING,
	}

	// encode the mapping
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		log.Fatalf("Error encoding mapping: %s\n", err)
		return err
	}

	if cfg.Debug {
		// view the outbound elasticsearch mapping
		myString := string(buf.Bytes()[:])
		fmt.Println(myString)
	}

	res, createErr := es.Indices.Create(
		FilteredVariantsIndex,
		es.Indices.Create.WithContext(context.Background()),
		es.Indices.Create.WithBody(&buf),
	)
	if createErr != nil {
		fmt.Printf("Error getting response: %s\n", createErr)
		return createErr
	}

	defer res.Body.Close()

	resultString := res.String()
	if cfg.Debug {
		fmt.Println(resultString)
	}

	// a previous boot may have already created the index
	if res.IsError() && !strings.Contains(resultString, "resource_already_exists_exception") {
		return fmt.Errorf("failed to create index %s : got '%s'", FilteredVariantsIndex, res.Status())
	}

	return nil
}
