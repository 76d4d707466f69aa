package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"varsift/api/contexts"
	"varsift/api/models/dtos"
	filterMvc "varsift/api/mvc/filter"
	"varsift/api/services/presets"
	"varsift/api/tests/common"

	. "github.com/ahmetb/go-linq"
	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

func TestValidateFilter(t *testing.T) {
	cfg := common.InitConfig()

	setUpEcho := func(body io.Reader) (*contexts.VarsiftContext, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/filters/validate", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		vc := &contexts.VarsiftContext{
			Context:          c,
			Es7Client:        nil, // todo mockup
			Config:           cfg,
			IngestionService: nil,
			PresetService:    nil,
		}
		return vc, rec
	}

	t.Run("should accept a well formed filter", func(t *testing.T) {
		//set up
		requestBody, _ := json.Marshal(dtos.FilterValidationRequestDto{
			Filter: `QUAL > 30 && ANN[*].Gene_Name == "AGT"`,
		})
		vc, rec := setUpEcho(bytes.NewReader(requestBody))

		// perform
		filterMvc.ValidateFilter(vc)

		// verify response status
		assert.Equal(t, http.StatusOK, rec.Code)

		// verify body
		body, _ := io.ReadAll(rec.Body)
		var response dtos.FilterValidationResponseDto
		assert.NoError(t, json.Unmarshal(body, &response))

		assert.True(t, response.Valid)
		assert.Empty(t, response.Issues)
	})

	t.Run("should report issues for a broken filter on a 200", func(t *testing.T) {
		requestBody, _ := json.Marshal(dtos.FilterValidationRequestDto{
			Filter: "QUAL >",
		})
		vc, rec := setUpEcho(bytes.NewReader(requestBody))

		filterMvc.ValidateFilter(vc)

		// a broken filter is a validation outcome, not a request error
		assert.Equal(t, http.StatusOK, rec.Code)

		body, _ := io.ReadAll(rec.Body)
		var response dtos.FilterValidationResponseDto
		assert.NoError(t, json.Unmarshal(body, &response))

		assert.False(t, response.Valid)
		assert.NotEmpty(t, response.Issues)
	})

	t.Run("should reject an empty body", func(t *testing.T) {
		vc, rec := setUpEcho(nil)

		filterMvc.ValidateFilter(vc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a blank filter", func(t *testing.T) {
		requestBody, _ := json.Marshal(dtos.FilterValidationRequestDto{
			Filter: "   ",
		})
		vc, rec := setUpEcho(bytes.NewReader(requestBody))

		filterMvc.ValidateFilter(vc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPreviewFilter(t *testing.T) {
	cfg := common.InitConfig()

	setUpEcho := func(body io.Reader) (*contexts.VarsiftContext, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/filters/preview", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		vc := &contexts.VarsiftContext{
			Context:          c,
			Es7Client:        nil, // todo mockup
			Config:           cfg,
			IngestionService: nil,
			PresetService:    nil,
		}
		return vc, rec
	}

	t.Run("should tally passing rows", func(t *testing.T) {
		requestBody, _ := json.Marshal(dtos.FilterPreviewRequestDto{
			Filter: "INFO.DP == 30",
			Header: common.DemoVcfHeader,
			Rows:   common.DemoVcfRows,
		})
		vc, rec := setUpEcho(bytes.NewReader(requestBody))

		filterMvc.PreviewFilter(vc)

		assert.Equal(t, http.StatusOK, rec.Code)

		body, _ := io.ReadAll(rec.Body)
		var response dtos.FilterPreviewResponseDto
		assert.NoError(t, json.Unmarshal(body, &response))

		assert.Equal(t, len(common.DemoVcfRows), response.Total)
		assert.Equal(t, 1, response.Passed)
		assert.Len(t, response.Results, len(common.DemoVcfRows))

		// cross check the tallies against the per row verdicts
		passingRows := []string{}
		From(response.Results).WhereT(func(result dtos.FilterPreviewRowResult) bool {
			return result.Passed
		}).SelectT(func(result dtos.FilterPreviewRowResult) string {
			return result.Row
		}).ForEachT(func(row string) {
			passingRows = append(passingRows, row)
		})

		assert.Len(t, passingRows, response.Passed)
		assert.Contains(t, passingRows[0], "rs3737940")
	})

	t.Run("should report a broken row in place", func(t *testing.T) {
		rows := append([]string{"1\t2\t3"}, common.DemoVcfRows...)
		requestBody, _ := json.Marshal(dtos.FilterPreviewRequestDto{
			Filter: "QUAL > 100",
			Header: common.DemoVcfHeader,
			Rows:   rows,
		})
		vc, rec := setUpEcho(bytes.NewReader(requestBody))

		filterMvc.PreviewFilter(vc)

		assert.Equal(t, http.StatusOK, rec.Code)

		body, _ := io.ReadAll(rec.Body)
		var response dtos.FilterPreviewResponseDto
		assert.NoError(t, json.Unmarshal(body, &response))

		assert.Equal(t, len(rows), response.Total)
		assert.Equal(t, 1, response.Passed)

		assert.False(t, response.Results[0].Passed)
		assert.Contains(t, response.Results[0].Error, "Row parse error")
	})

	t.Run("should reject a broken filter", func(t *testing.T) {
		requestBody, _ := json.Marshal(dtos.FilterPreviewRequestDto{
			Filter: "QUAL >",
			Header: common.DemoVcfHeader,
			Rows:   common.DemoVcfRows,
		})
		vc, rec := setUpEcho(bytes.NewReader(requestBody))

		filterMvc.PreviewFilter(vc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a request without rows", func(t *testing.T) {
		requestBody, _ := json.Marshal(dtos.FilterPreviewRequestDto{
			Filter: "QUAL > 30",
			Header: common.DemoVcfHeader,
		})
		vc, rec := setUpEcho(bytes.NewReader(requestBody))

		filterMvc.PreviewFilter(vc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetFilterPresets(t *testing.T) {
	cfg := common.InitConfig()

	presetsFile := fmt.Sprintf("%s/presets.yml", t.TempDir())
	assert.NoError(t, os.WriteFile(presetsFile, []byte(common.DemoPresetsYaml), 0644))

	presetService := presets.NewPresetService(presetsFile)

	setUpEcho := func() (*contexts.VarsiftContext, *httptest.ResponseRecorder) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/filters/presets", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		vc := &contexts.VarsiftContext{
			Context:          c,
			Es7Client:        nil, // todo mockup
			Config:           cfg,
			IngestionService: nil,
			PresetService:    presetService,
		}
		return vc, rec
	}

	t.Run("should list the catalogue", func(t *testing.T) {
		vc, rec := setUpEcho()

		filterMvc.GetFilterPresets(vc)

		assert.Equal(t, http.StatusOK, rec.Code)

		body, _ := io.ReadAll(rec.Body)
		var response dtos.FilterPresetsResponseDto
		assert.NoError(t, json.Unmarshal(body, &response))

		assert.Equal(t, 200, response.Status)
		assert.Equal(t, len(response.Results), response.Count)
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, "high-quality", response.Results[0].Name)
	})
}
