package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a usable `fileNames` HTTP query parameter was provided
*/
func MandateFileNamesAttribute(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// check for fileNames query parameter (comma separated)
		fileNamesQP := c.QueryParam("fileNames")
		if len(fileNamesQP) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing 'fileNames' query parameter for filtering!")
		}

		// catch blank entries hiding between commas
		for _, fileName := range strings.Split(fileNamesQP, ",") {
			if strings.TrimSpace(fileName) == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Blank entry in 'fileNames' query parameter!")
			}
		}

		return next(c)
	}
}
