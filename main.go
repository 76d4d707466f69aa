package main

import (
	"time"

	"varsift/api/contexts"
	gam "varsift/api/middleware"
	"varsift/api/models"
	serviceInfo "varsift/api/models/constants/service-info"
	filterMvc "varsift/api/mvc/filter"
	serviceInfoMvc "varsift/api/mvc/service-info"
	variantsMvc "varsift/api/mvc/variants"
	esRepo "varsift/api/repositories/elasticsearch"
	"varsift/api/services"
	"varsift/api/services/presets"
	"varsift/api/services/sanitation"
	"varsift/api/utils"

	"fmt"
	"net/http"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tVCF Directory Path : %s \n"+
		"\tPresets Path : %s \n"+
		"\tBulk Indexing Cap : %d\n"+
		"\tFile Processing Concurrency Level : %d\n"+
		"\tLine Processing Concurrency Level : %d\n"+
		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Api.VcfPath,
		cfg.Api.PresetsPath,
		cfg.Api.BulkIndexingCap,
		cfg.Api.FileProcessingConcurrencyLevel,
		cfg.Api.LineProcessingConcurrencyLevel,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.Api.Port)
	// --

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Elasticsearch
	es := utils.CreateEsConnection(&cfg)

	// ensure the filtered-variants index (and its mapping) exists before
	// any run starts pushing documents at it
	if indexErr := esRepo.CreateFilteredVariantsIndex(&cfg, es); indexErr != nil {
		fmt.Printf("Failed to ensure index %s : %v\n", esRepo.FilteredVariantsIndex, indexErr)
	}

	// Service Singletons
	iz := services.NewIngestionService(es, &cfg)
	ps := presets.NewPresetService(cfg.Api.PresetsPath)
	sanitation.NewSanitationService(es, &cfg, iz)

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom VarSift" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.VarsiftContext{
				Context:          c,
				Es7Client:        es,
				Config:           &cfg,
				IngestionService: iz,
				PresetService:    ps,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		fmt.Printf("[%s] - Root hit!\n", time.Now())
		return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Filters
	e.POST("/filters/validate", filterMvc.ValidateFilter)
	e.POST("/filters/preview", filterMvc.PreviewFilter)
	e.GET("/filters/presets", filterMvc.GetFilterPresets)

	// -- Variants
	e.GET("/variants/ingestion/run", variantsMvc.VariantsFilterRun,
		// middleware
		gam.MandateFilterAttribute,
		gam.MandateFileNamesAttribute)
	e.GET("/variants/ingestion/requests", variantsMvc.GetAllIngestionRequests)
	e.GET("/variants/ingestion/stats", variantsMvc.VariantsIngestionStats)

	e.GET("/variants/count/by/runId/:runId", variantsMvc.VariantsCountByRunId,
		// middleware
		gam.MandateRunIdAttribute)
	e.GET("/variants/distribution/by/chromosome", variantsMvc.GetChromosomeDistribution)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
