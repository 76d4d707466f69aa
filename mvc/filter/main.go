package filter

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"varsift/api/contexts"
	"varsift/api/models/dtos"
	"varsift/api/models/dtos/errors"
	filterService "varsift/api/services/filter"

	"github.com/labstack/echo"
	"golang.org/x/sync/errgroup"
)

func ValidateFilter(c echo.Context) error {
	fmt.Printf("[%s] - ValidateFilter hit!\n", time.Now())

	var request dtos.FilterValidationRequestDto
	if bindErr := c.Bind(&request); bindErr != nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Malformed request body!"))
	}
	if strings.TrimSpace(request.Filter) == "" {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing 'filter' in request body!"))
	}

	response := dtos.FilterValidationResponseDto{
		Filter: request.Filter,
	}

	// a filter that fails to parse is a valid outcome of validation, not a
	// request error, so the issues ride back on a 200
	if _, parseErr := filterService.ParseFilterExpression(request.Filter); parseErr != nil {
		if parseError, ok := parseErr.(*filterService.FilterParseError); ok {
			response.Issues = parseError.Issues
		} else {
			response.Issues = []string{parseErr.Error()}
		}
		return c.JSON(http.StatusOK, response)
	}

	response.Valid = true
	return c.JSON(http.StatusOK, response)
}

func PreviewFilter(c echo.Context) error {
	fmt.Printf("[%s] - PreviewFilter hit!\n", time.Now())

	var request dtos.FilterPreviewRequestDto
	if bindErr := c.Bind(&request); bindErr != nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Malformed request body!"))
	}
	if strings.TrimSpace(request.Filter) == "" {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing 'filter' in request body!"))
	}
	if len(request.Rows) == 0 {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing 'rows' in request body!"))
	}

	engine := filterService.NewFilterEngine(request.Header)
	compiled, compileErr := engine.CompileExpression(request.Filter)
	if compileErr != nil {
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(compileErr.Error()))
	}

	// rows are independent, so evaluate them concurrently; a row that fails
	// to decode or evaluate reports its error in place rather than failing
	// the whole preview
	results := make([]dtos.FilterPreviewRowResult, len(request.Rows))

	var g errgroup.Group
	for i, row := range request.Rows {
		_i, _row := i, row
		g.Go(func() error {
			result := dtos.FilterPreviewRowResult{Row: _row}

			passed, matchErr := engine.MatchLine(compiled, _row)
			if matchErr != nil {
				result.Error = matchErr.Error()
			} else if passed {
				result.Passed = true
			}

			results[_i] = result
			return nil
		})
	}
	_ = g.Wait()

	response := dtos.FilterPreviewResponseDto{
		Filter:  request.Filter,
		Results: results,
	}
	for _, result := range results {
		response.Total++
		if result.Passed {
			response.Passed++
		}
	}

	response.Status = 200
	response.Message = "Success"

	return c.JSON(http.StatusOK, response)
}

func GetFilterPresets(c echo.Context) error {
	fmt.Printf("[%s] - GetFilterPresets hit!\n", time.Now())
	presetService := c.(*contexts.VarsiftContext).PresetService

	catalogue := presetService.ListPresets()

	return c.JSON(http.StatusOK, dtos.FilterPresetsResponseDto{
		Status:  200,
		Message: "Success",
		Count:   len(catalogue),
		Results: catalogue,
	})
}
