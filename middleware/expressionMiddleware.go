package middleware

import (
	"net/http"

	filterService "varsift/api/services/filter"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a valid `filter` or `preset` HTTP query parameter was provided
*/
func MandateFilterAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for filter and preset query parameters
		filterQP := c.QueryParam("filter")
		presetQP := c.QueryParam("preset")
		if len(filterQP) == 0 && len(presetQP) == 0 {
			// if neither was provided return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'filter' or 'preset' query parameter for filtering!")
		}

		if len(filterQP) > 0 && len(presetQP) > 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Provide either a 'filter' or a 'preset' query parameter, not both!")
		}

		// verify the inline expression parses before any work is queued;
		// preset names are resolved (and their expressions checked) by the handler
		if len(filterQP) > 0 {
			if _, parseErr := filterService.ParseFilterExpression(filterQP); parseErr != nil {
				return echo.NewHTTPError(http.StatusBadRequest, parseErr.Error())
			}
		}

		return next(c)
	}
}
