package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a valid `runId` HTTP path parameter was provided
*/
func MandateRunIdAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for runId path parameter
		runIdPP := c.Param("runId")
		if len(runIdPP) == 0 {
			// if no id was provided return an error
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'runId' path parameter for querying!")
		}

		// verify:
		_, conversionErr := uuid.Parse(runIdPP)
		if conversionErr != nil {
			// if invalid run id
			return echo.NewHTTPError(http.StatusBadRequest, "Error converting 'runId' path parameter! Check your input")
		}

		return next(c)
	}
}
