package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"varsift/api/models"
	"varsift/api/models/indexes"
	"varsift/api/models/ingest"
	"varsift/api/models/ingest/structs"
	"varsift/api/models/vcf"
	esRepo "varsift/api/repositories/elasticsearch"
	filterService "varsift/api/services/filter"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esutil"
	"github.com/klauspost/compress/gzip"
)

type (
	IngestionService struct {
		Initialized                   bool
		IngestRequestChan             chan *ingest.IngestRequest
		IngestRequestMap              map[string]*ingest.IngestRequest
		IngestRequestMapMux           sync.RWMutex
		IngestionBulkIndexingCapacity int
		IngestionBulkIndexingQueue    chan *structs.IngestionQueueStructure
		IngestionBulkIndexer          esutil.BulkIndexer
		ConcurrentFileIngestionQueue  chan bool
		ElasticsearchClient           *elasticsearch.Client

		rowsRead    uint64
		rowsPassed  uint64
		rowsErrored uint64
	}
)

func NewIngestionService(es *elasticsearch.Client, cfg *models.Config) *IngestionService {

	iz := &IngestionService{
		Initialized:                   false,
		IngestRequestChan:             make(chan *ingest.IngestRequest),
		IngestRequestMap:              map[string]*ingest.IngestRequest{},
		IngestRequestMapMux:           sync.RWMutex{},
		IngestionBulkIndexingCapacity: cfg.Api.BulkIndexingCap,
		IngestionBulkIndexingQueue:    make(chan *structs.IngestionQueueStructure, cfg.Api.BulkIndexingCap),
		ConcurrentFileIngestionQueue:  make(chan bool, cfg.Api.FileProcessingConcurrencyLevel),
		ElasticsearchClient:           es,
	}

	//see: https://www.elastic.co/blog/why-am-i-seeing-bulk-rejections-in-my-elasticsearch-cluster
	var numWorkers = iz.IngestionBulkIndexingCapacity / 100
	//the lower the denominator (the number of documents per bulk upload). the higher
	//the chances of 100% successful upload, though the longer it may take (negligible)

	bi, _ := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      esRepo.FilteredVariantsIndex,
		Client:     iz.ElasticsearchClient,
		NumWorkers: numWorkers,
	})
	iz.IngestionBulkIndexer = bi

	iz.Init()

	return iz
}

func (i *IngestionService) Init() {
	// safeguard to prevent multiple initilizations
	if !i.Initialized {
		// spin up a go routine acting as a listener for filter run request
		// updates and for passing variants to bulk index
		go func() {
			for {
				select {
				case ingestionRequest := <-i.IngestRequestChan:
					if ingestionRequest.State == ingest.Queued {
						fmt.Printf("Queueing a new filter run for %s\n", ingestionRequest.Filename)
					}

					ingestionRequest.UpdatedAt = time.Now().String()
					i.IngestRequestMapMux.Lock()
					i.IngestRequestMap[ingestionRequest.Id.String()] = ingestionRequest
					i.IngestRequestMapMux.Unlock()

				case queuedVariantItem := <-i.IngestionBulkIndexingQueue:

					queuedVariant := queuedVariantItem.Variant
					wg := queuedVariantItem.WaitGroup

					variantData, marshallErr := json.Marshal(queuedVariant)
					if marshallErr != nil {
						log.Fatalf("Cannot encode variant %s: %s\n", queuedVariant.Id, marshallErr)
					}

					marshallErr = i.IngestionBulkIndexer.Add(
						context.Background(),
						esutil.BulkIndexerItem{
							Action: "index",

							// Body is an `io.Reader` with the payload
							Body: bytes.NewReader(variantData),

							OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
								defer wg.Done()
							},

							OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
								defer wg.Done()
								if err != nil {
									fmt.Printf("ERROR: %s", err)
								} else {
									fmt.Printf("ERROR: %s: %s", res.Error.Type, res.Error.Reason)
								}
							},
						},
					)
					if marshallErr != nil {
						fmt.Printf("Unexpected error: %s", marshallErr)
						wg.Done()
					}
				}
			}
		}()

		i.Initialized = true
	}
}

// ProcessVcf streams one bgzipped VCF, compiles the filter expression up
// front, builds the engine once the #CHROM line shows up, and bulk indexes
// every row the filter accepts. Returns the pass/read tally for the file.
func (i *IngestionService) ProcessVcf(
	gzippedFilePath string, runId string, filterText string,
	lineProcessingConcurrencyLevel int) (uint64, uint64, error) {

	// reject a bad expression before touching the file
	expression, parseErr := filterService.ParseFilterExpression(filterText)
	if parseErr != nil {
		return 0, 0, parseErr
	}
	compiled := &filterService.CompiledFilter{Expression: expression, Source: filterText}

	f, err := os.Open(gzippedFilePath)
	if err != nil {
		fmt.Println("Failed to open file - ", err)
		return 0, 0, err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return 0, 0, err
	}
	defer gr.Close()

	scanner := bufio.NewScanner(gr)
	// annotation-heavy rows overflow the default split buffer
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var engine *filterService.FilterEngine
	var headerLines []string
	var sampleId string

	var (
		fileRead   uint64
		filePassed uint64
	)

	var _fileWG sync.WaitGroup

	// "line ingestion queue"
	// - manage # of lines being concurrently processed per file at any given time
	lineProcessingQueue := make(chan bool, lineProcessingConcurrencyLevel)

	fileName := gzippedFilePath

	for scanner.Scan() {
		line := scanner.Text()

		if engine == nil {
			if strings.HasPrefix(line, "#CHROM") {
				headerLines = append(headerLines, line)
				engine = filterService.NewFilterEngine(strings.Join(headerLines, "\n"))
				fmt.Printf("Resolved %d INFO declarations from the header of %s\n", engine.HeaderSchema().Size(), fileName)

				// column 10 of the #CHROM line names the sample
				if columns := strings.Split(line, "\t"); len(columns) >= 10 {
					sampleId = columns[9]
				}
				continue
			}
			if strings.HasPrefix(line, "#") {
				headerLines = append(headerLines, line)
				continue
			}
			// nothing has been queued yet at this point
			return filePassed, fileRead, fmt.Errorf("no VCF header found before data rows in %s", fileName)
		}

		atomic.AddUint64(&fileRead, 1)
		atomic.AddUint64(&i.rowsRead, 1)

		// take a spot in the queue
		lineProcessingQueue <- true
		_fileWG.Add(1)
		go func(line string, fileWg *sync.WaitGroup) {
			// free up a spot in the queue
			defer func() { <-lineProcessingQueue }()

			row, decodeErr := engine.DecodeRow(line)
			if decodeErr != nil {
				atomic.AddUint64(&i.rowsErrored, 1)
				fmt.Printf("Skipping row of %s : %v\n", fileName, decodeErr)
				fileWg.Done()
				return
			}

			passed, evalErr := engine.MatchRow(compiled, row)
			if evalErr != nil {
				atomic.AddUint64(&i.rowsErrored, 1)
				fmt.Printf("Skipping row of %s : %v\n", fileName, evalErr)
				fileWg.Done()
				return
			}
			if !passed {
				fileWg.Done()
				return
			}

			atomic.AddUint64(&filePassed, 1)
			atomic.AddUint64(&i.rowsPassed, 1)

			// pass variant (along with a waitgroup) to the channel;
			// the bulk indexer callbacks release the waitgroup spot
			i.IngestionBulkIndexingQueue <- &structs.IngestionQueueStructure{
				Variant:   FilteredVariantFromRow(row, sampleId, runId, fileName, filterText),
				WaitGroup: fileWg,
			}
		}(line, &_fileWG)
	}

	scanErr := scanner.Err()

	// allowing all lines to be queued up and waited for
	for q := 0; q < lineProcessingConcurrencyLevel; q++ {
		lineProcessingQueue <- true
	}

	// let all lines be queued up and processed
	_fileWG.Wait()

	if scanErr != nil {
		return filePassed, fileRead, scanErr
	}

	fmt.Printf("File %s waited for and complete!\n\t- %d/%d variants passed the filter\n", fileName, filePassed, fileRead)

	return filePassed, fileRead, nil
}

func (i *IngestionService) FilenameAlreadyRunning(filename string) bool {
	i.IngestRequestMapMux.Lock()
	defer i.IngestRequestMapMux.Unlock()

	for _, v := range i.IngestRequestMap {
		if v.Filename == filename && (v.State == ingest.Queued || v.State == ingest.Running) {
			return true
		}
	}
	return false
}

// GetStats merges the service's row counters with the bulk indexer's view
// of what actually landed in Elasticsearch.
func (i *IngestionService) GetStats() ingest.IngestionStats {
	biStats := i.IngestionBulkIndexer.Stats()
	return ingest.IngestionStats{
		RowsRead:    atomic.LoadUint64(&i.rowsRead),
		RowsPassed:  atomic.LoadUint64(&i.rowsPassed),
		RowsErrored: atomic.LoadUint64(&i.rowsErrored),

		NumAdded:   biStats.NumAdded,
		NumFlushed: biStats.NumFlushed,
		NumFailed:  biStats.NumFailed,
		NumIndexed: biStats.NumIndexed,
	}
}

// FilteredVariantFromRow flattens a decoded row into the document shape
// indexed for passing variants. INFO entries are emitted in key order so
// repeated runs produce identical documents.
func FilteredVariantFromRow(row *vcf.VcfRow, sampleId string, runId string, filename string, filterText string) *indexes.FilteredVariant {
	qual := -1.0
	if num, ok := row.Qual.AsNumber(); ok {
		qual = num
	}

	infoKeys := make([]string, 0, len(row.InfoValues))
	for key := range row.InfoValues {
		infoKeys = append(infoKeys, key)
	}
	sort.Strings(infoKeys)

	infos := make([]indexes.Info, 0, len(infoKeys))
	for _, key := range infoKeys {
		infos = append(infos, indexes.Info{
			Id:    key,
			Value: row.InfoValues[key].String(),
		})
	}

	return &indexes.FilteredVariant{
		Chrom:  row.Chrom,
		Pos:    row.Pos,
		Id:     row.Id.String(),
		Ref:    row.Ref,
		Alt:    row.Alt,
		Qual:   qual,
		Filter: row.FilterStatuses,
		Info:   infos,

		SampleId:    sampleId,
		RunId:       runId,
		Filename:    filename,
		FilterUsed:  filterText,
		CreatedTime: time.Now(),
	}
}
