package contexts

import (
	"varsift/api/models"
	"varsift/api/services"
	"varsift/api/services/presets"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  an elasticsearch client and other variables
	VarsiftContext struct {
		echo.Context
		Es7Client        *es7.Client
		Config           *models.Config
		IngestionService *services.IngestionService
		PresetService    *presets.PresetService
	}
)
