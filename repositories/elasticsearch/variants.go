package elasticsearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"varsift/api/models"
	"varsift/api/utils"

	"github.com/Jeffail/gabs"
	"github.com/elastic/go-elasticsearch/v7"
)

func CountDocumentsByRunId(cfg *models.Config, es *elasticsearch.Client, runId string) (int, error) {

	// overall query structure
	var buf bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"runId.keyword": runId,
			},
		},
	}

	// encode the query
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		log.Fatalf("Error encoding query: %s\n", err)
	}

	if cfg.Debug {
		// view the outbound elasticsearch query
		myString := string(buf.Bytes()[:])
		fmt.Println(myString)
	}

	fmt.Printf("Query Start: %s\n", time.Now())

	if cfg.Debug {
		http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	// Perform the count request.
	res, countErr := es.Count(
		es.Count.WithContext(context.Background()),
		es.Count.WithIndex(FilteredVariantsIndex),
		es.Count.WithBody(&buf),
		es.Count.WithPretty(),
	)
	if countErr != nil {
		fmt.Printf("Error getting response: %s\n", countErr)
		return 0, countErr
	}

	defer res.Body.Close()

	resultString := res.String()
	if cfg.Debug {
		fmt.Println(resultString)
	}

	// Known bug: response comes back with a preceding '[200 OK] ' which needs trimming
	bracketString, jsonBodyString := utils.GetLeadingStringInBetweenSquareBrackets(resultString)
	if !strings.Contains(bracketString, "200") {
		return 0, fmt.Errorf("failed to count documents by runId : got '%s'", bracketString)
	}

	jsonParsed, parseErr := gabs.ParseJSON([]byte(jsonBodyString))
	if parseErr != nil {
		fmt.Printf("Error unmarshalling response: %s\n", parseErr)
		return 0, parseErr
	}

	count, ok := jsonParsed.Path("count").Data().(float64)
	if !ok {
		return 0, fmt.Errorf("count missing from response for runId %s", runId)
	}

	fmt.Printf("Query End: %s\n", time.Now())

	return int(count), nil
}

func GetChromosomeDistribution(cfg *models.Config, es *elasticsearch.Client, runId string) (map[string]interface{}, error) {

	// begin building the request body.
	var buf bytes.Buffer
	aggMap := map[string]interface{}{
		"size": "0",
		"aggs": map[string]interface{}{
			"chromosomes": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "chrom.keyword",
					"size":  "10000", // increases the number of buckets returned (default is 10)
				},
			},
		},
	}

	// an empty runId aggregates across every run
	if runId != "" {
		aggMap["query"] = map[string]interface{}{
			"term": map[string]interface{}{
				"runId.keyword": runId,
			},
		}
	}

	// encode the query
	if err := json.NewEncoder(&buf).Encode(aggMap); err != nil {
		log.Fatalf("Error encoding aggMap: %s\n", err)
	}

	if cfg.Debug {
		// view the outbound elasticsearch query
		myString := string(buf.Bytes()[:])
		fmt.Println(myString)
	}

	fmt.Printf("Query Start: %s\n", time.Now())

	if cfg.Debug {
		http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	// Perform the search request.
	res, searchErr := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(FilteredVariantsIndex),
		es.Search.WithBody(&buf),
		es.Search.WithTrackTotalHits(true),
		es.Search.WithPretty(),
	)
	if searchErr != nil {
		fmt.Printf("Error getting response: %s\n", searchErr)
		return nil, searchErr
	}

	defer res.Body.Close()

	resultString := res.String()
	if cfg.Debug {
		fmt.Println(resultString)
	}

	// Declared an empty interface
	result := make(map[string]interface{})

	// Unmarshal or Decode the JSON to the interface.
	// Known bug: response comes back with a preceding '[200 OK] ' which needs trimming
	bracketString, jsonBodyString := utils.GetLeadingStringInBetweenSquareBrackets(resultString)
	if !strings.Contains(bracketString, "200") {
		return nil, fmt.Errorf("failed to get chromosome distribution: got '%s'", bracketString)
	}

	umErr := json.Unmarshal([]byte(jsonBodyString), &result)
	if umErr != nil {
		fmt.Printf("Error unmarshalling response: %s\n", umErr)
		return nil, umErr
	}

	fmt.Printf("Query End: %s\n", time.Now())

	return result, nil
}

func DeleteDocumentsByRunId(cfg *models.Config, es *elasticsearch.Client, runId string) (map[string]interface{}, error) {

	var buf bytes.Buffer
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"runId.keyword": runId,
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		log.Fatalf("Error encoding query: %s\n", query)
	}

	if cfg.Debug {
		// view the outbound elasticsearch query
		myString := string(buf.Bytes()[:])
		fmt.Println(myString)
	}

	// Perform the delete request.
	deleteRes, deleteErr := es.DeleteByQuery(
		[]string{FilteredVariantsIndex},
		bytes.NewReader(buf.Bytes()),
	)
	if deleteErr != nil {
		fmt.Printf("Error getting response: %s\n", deleteErr)
		return nil, deleteErr
	}

	defer deleteRes.Body.Close()

	resultString := deleteRes.String()
	if cfg.Debug {
		fmt.Println(resultString)
	}

	// Prepare an empty interface
	result := make(map[string]interface{})

	// Unmarshal or Decode the JSON to the empty interface.
	// Known bug: response comes back with a preceding '[200 OK] ' which needs trimming
	bracketString, jsonBodyString := utils.GetLeadingStringInBetweenSquareBrackets(resultString)
	if !strings.Contains(bracketString, "200") {
		return nil, fmt.Errorf("failed to delete documents by runId : got '%s'", bracketString)
	}
	umErr := json.Unmarshal([]byte(jsonBodyString), &result)
	if umErr != nil {
		fmt.Printf("Error unmarshalling deletion response: %s\n", umErr)
		return nil, umErr
	}

	return result, nil
}
