package variants

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"varsift/api/contexts"
	"varsift/api/models/dtos"
	"varsift/api/models/dtos/errors"
	"varsift/api/models/ingest"
	esRepo "varsift/api/repositories/elasticsearch"
	"varsift/api/utils"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/labstack/echo"
)

func VariantsIngestionStats(c echo.Context) error {
	fmt.Printf("[%s] - VariantsIngestionStats hit!\n", time.Now())
	ingestionService := c.(*contexts.VarsiftContext).IngestionService

	return c.JSON(http.StatusOK, dtos.IngestStatsResponseDto{
		Status:  200,
		Message: "Success",
		Stats:   ingestionService.GetStats(),
	})
}

func VariantsFilterRun(c echo.Context) error {
	fmt.Printf("[%s] - VariantsFilterRun hit!\n", time.Now())
	cfg := c.(*contexts.VarsiftContext).Config
	vcfPath := cfg.Api.VcfPath

	ingestionService := c.(*contexts.VarsiftContext).IngestionService
	presetService := c.(*contexts.VarsiftContext).PresetService

	// resolve the filter expression, either inline or by preset name
	filterText := c.QueryParam("filter")
	presetName := c.QueryParam("preset")
	if presetName != "" {
		preset, found := presetService.GetPresetByName(presetName)
		if !found {
			return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound(fmt.Sprintf("No preset named '%s'!", presetName)))
		}
		filterText = preset.Filter
	}

	// retrieve query parameters (comma separated)
	fileNames := strings.Split(c.QueryParam("fileNames"), ",")
	for _, fileName := range fileNames {
		if fileName == "" {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing 'fileNames' query parameter!"))
		}
	}

	// Read all files and temporarily catalog all .vcf.gz files
	var vcfGzfiles []string
	err := filepath.Walk(vcfPath,
		func(absoluteFileName string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if absoluteFileName == vcfPath {
				// skip
				return nil
			}

			// keep track of relative path
			relativePathFileName := strings.ReplaceAll(absoluteFileName, vcfPath, "")

			// verify if there is a relative path
			directoryPath, fileName := path.Split(relativePathFileName)
			if directoryPath == "/" {
				relativePathFileName = fileName // effectively strips the leading '/' away
			}

			// Filter only .vcf.gz files
			if matched, _ := regexp.MatchString(".vcf.gz", relativePathFileName); matched {
				vcfGzfiles = append(vcfGzfiles, relativePathFileName)
			} else {
				fmt.Printf("Skipping %s\n", relativePathFileName)
			}
			return nil
		})
	if err != nil {
		log.Println(err)
	}

	// Locate fileName from request inside found files
	for _, fileName := range fileNames {
		if !utils.StringInSlice(fileName, vcfGzfiles) {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(fmt.Sprintf("file %s not found! Aborted --", fileName)))
		}
	}

	startTime := time.Now()
	fmt.Printf("Filter run Start: %s\n", startTime)

	responseDtos := []ingest.IngestResponseDTO{}
	for _, fileName := range fileNames {

		// check if there is an already existing ingestion request state
		if ingestionService.FilenameAlreadyRunning(fileName) {
			responseDtos = append(responseDtos, ingest.IngestResponseDTO{
				Filename: fileName,
				Filter:   filterText,
				State:    ingest.Error,
				Message:  "File already being filtered..",
			})
			continue
		}

		// if not, execute

		newRequestState := &ingest.IngestRequest{
			Id:        uuid.New(),
			Filename:  fileName,
			Filter:    filterText,
			State:     ingest.Queued,
			CreatedAt: fmt.Sprintf("%v", startTime),
		}
		ingestionService.IngestRequestChan <- newRequestState

		responseDtos = append(responseDtos, ingest.IngestResponseDTO{
			Id:       newRequestState.Id,
			Filename: newRequestState.Filename,
			Filter:   newRequestState.Filter,
			State:    newRequestState.State,
			Message:  "Successfully queued..",
		})

		go func(_fileName string, _newRequestState *ingest.IngestRequest) {

			// take a spot in the queue
			ingestionService.ConcurrentFileIngestionQueue <- true
			go func(gzippedFileName string, reqStat *ingest.IngestRequest) {
				// free up a spot in the queue
				defer func() {
					<-ingestionService.ConcurrentFileIngestionQueue
				}()

				fmt.Printf("Begin running %s !\n", gzippedFileName)
				reqStat.State = ingest.Running
				ingestionService.IngestRequestChan <- reqStat

				var separator string
				if strings.HasPrefix(gzippedFileName, "/") {
					separator = ""
				} else {
					separator = "/"
				}
				gzippedFilePath := fmt.Sprintf("%s%s%s", vcfPath, separator, gzippedFileName)

				beginProcessingTime := time.Now()
				fmt.Printf("Begin processing %s at [%s]\n", gzippedFilePath, beginProcessingTime)

				passed, read, processErr := ingestionService.ProcessVcf(
					gzippedFilePath, reqStat.Id.String(), filterText,
					cfg.Api.LineProcessingConcurrencyLevel)
				if processErr != nil {
					msg := fmt.Sprintf("error processing %s: %s", gzippedFileName, processErr)
					fmt.Println(msg)

					reqStat.State = ingest.Error
					reqStat.Message = msg
					ingestionService.IngestRequestChan <- reqStat

					return
				}

				fmt.Printf("Filter run duration for file at %s : %s\n", gzippedFilePath, time.Since(beginProcessingTime))

				reqStat.State = ingest.Done
				reqStat.Message = fmt.Sprintf("%d/%d variants passed the filter", passed, read)
				ingestionService.IngestRequestChan <- reqStat
			}(_fileName, _newRequestState)
		}(fileName, newRequestState)

	}

	return c.JSON(http.StatusOK, responseDtos)
}

func GetAllIngestionRequests(c echo.Context) error {
	fmt.Printf("[%s] - GetAllIngestionRequests hit!\n", time.Now())
	ingestionService := c.(*contexts.VarsiftContext).IngestionService

	ingestionService.IngestRequestMapMux.RLock()
	defer ingestionService.IngestRequestMapMux.RUnlock()

	// transform map of id-to-ingestRequests to an array
	m := make([]*ingest.IngestRequest, 0, len(ingestionService.IngestRequestMap))
	for _, val := range ingestionService.IngestRequestMap {
		m = append(m, val)
	}
	return c.JSON(http.StatusOK, m)
}

func VariantsCountByRunId(c echo.Context) error {
	fmt.Printf("[%s] - VariantsCountByRunId hit!\n", time.Now())

	es := c.(*contexts.VarsiftContext).Es7Client
	cfg := c.(*contexts.VarsiftContext).Config

	runId := c.Param("runId")

	count, countErr := esRepo.CountDocumentsByRunId(cfg, es, runId)
	if countErr != nil {
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError("Something went wrong.. Please contact the administrator!"))
	}

	return c.JSON(http.StatusOK, dtos.VariantCountResponseDto{
		Status:  200,
		Message: "Success",
		RunId:   runId,
		Count:   count,
	})
}

func GetChromosomeDistribution(c echo.Context) error {
	fmt.Printf("[%s] - GetChromosomeDistribution hit!\n", time.Now())

	es := c.(*contexts.VarsiftContext).Es7Client
	cfg := c.(*contexts.VarsiftContext).Config

	// optionally scope the aggregation to one filter run
	runId := c.QueryParam("runId")

	docs, searchErr := esRepo.GetChromosomeDistribution(cfg, es, runId)
	if searchErr != nil {
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError("Something went wrong.. Please contact the administrator!"))
	}

	// gather data from "aggregations"
	docsBuckets := docs["aggregations"].(map[string]interface{})["chromosomes"].(map[string]interface{})["buckets"]
	allDocBuckets := []map[string]interface{}{}
	mapstructure.Decode(docsBuckets, &allDocBuckets)

	buckets := make([]dtos.ChromosomeBucketDto, 0, len(allDocBuckets))
	for _, r := range allDocBuckets {
		buckets = append(buckets, dtos.ChromosomeBucketDto{
			Chromosome: r["key"].(string),
			Count:      int(r["doc_count"].(float64)),
		})
	}

	return c.JSON(http.StatusOK, dtos.ChromosomeDistributionResponseDto{
		Status:  200,
		Message: "Success",
		Results: buckets,
	})
}
