package sanitation

import (
	"fmt"
	"time"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/go-co-op/gocron"

	"varsift/api/models"
	"varsift/api/models/ingest"
	esRepo "varsift/api/repositories/elasticsearch"
	"varsift/api/services"
)

const requestRetention = 7 * 24 * time.Hour

// layout produced by time.Time's default String()
const requestTimeLayout = "2006-01-02 15:04:05.999999999 -0700 MST"

type (
	SanitationService struct {
		Initialized      bool
		Es7Client        *es7.Client
		Config           *models.Config
		IngestionService *services.IngestionService
	}
)

func NewSanitationService(es *es7.Client, cfg *models.Config, iz *services.IngestionService) *SanitationService {
	ss := &SanitationService{
		Initialized:      false,
		Es7Client:        es,
		Config:           cfg,
		IngestionService: iz,
	}

	ss.Init()

	return ss
}

func (ss *SanitationService) Init() {
	// initialization if necessary
	if !ss.Initialized {
		// - spin up a go routine that will periodically prune stale filter
		//   run requests, and remove the indexed documents of runs that
		//   ended in error (half-written runs leave documents behind)
		go func() {
			// setup cron job
			s := gocron.NewScheduler(time.UTC)

			s.Every(1).Days().At("04:00:00").Do(func() { // 12am EST
				fmt.Printf("[%s] - Running filter run cleanup..\n", time.Now())

				iz := ss.IngestionService

				staleRunIds := make([]string, 0)
				erroredRunIds := make([]string, 0)

				iz.IngestRequestMapMux.Lock()
				for id, request := range iz.IngestRequestMap {
					if request.State != ingest.Done && request.State != ingest.Error {
						continue
					}

					updatedAt, parseErr := time.Parse(requestTimeLayout, request.UpdatedAt)
					if parseErr != nil {
						continue
					}
					if time.Since(updatedAt) < requestRetention {
						continue
					}

					if request.State == ingest.Error {
						erroredRunIds = append(erroredRunIds, id)
					}
					staleRunIds = append(staleRunIds, id)
				}
				for _, id := range staleRunIds {
					delete(iz.IngestRequestMap, id)
				}
				iz.IngestRequestMapMux.Unlock()

				fmt.Printf("[%s] - Pruned %d stale filter run requests..\n", time.Now(), len(staleRunIds))

				for _, erroredRunId := range erroredRunIds {
					// fire and forget
					go func(_runId string) {
						_, _ = esRepo.DeleteDocumentsByRunId(ss.Config, ss.Es7Client, _runId)
					}(erroredRunId)
				}
			})

			// starts the scheduler in blocking mode, which blocks
			// the current execution path
			s.StartBlocking()
		}()

		ss.Initialized = true
		fmt.Println("Sanitation Service Initialized ..")
	}
}
