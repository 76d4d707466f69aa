package dtos

import (
	"time"

	"varsift/api/models/ingest"
)

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}
type GeneralError struct {
	Message string `json:"message"`
}

// ---- filters

type FilterValidationRequestDto struct {
	Filter string `json:"filter"`
}

type FilterValidationResponseDto struct {
	Valid  bool     `json:"valid"`
	Filter string   `json:"filter"`
	Issues []string `json:"issues,omitempty"`
}

type FilterPreviewRequestDto struct {
	Filter string   `json:"filter"`
	Header string   `json:"header"`
	Rows   []string `json:"rows"`
}

type FilterPreviewResponseDto struct {
	Status  int                      `json:"status"`
	Message string                   `json:"message"`
	Filter  string                   `json:"filter"`
	Total   int                      `json:"total"`
	Passed  int                      `json:"passed"`
	Results []FilterPreviewRowResult `json:"results"`
}

type FilterPreviewRowResult struct {
	Row    string `json:"row"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

type FilterPresetDto struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Filter      string `json:"filter" yaml:"filter"`
}

type FilterPresetsResponseDto struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Count   int               `json:"count"`
	Results []FilterPresetDto `json:"results"`
}

// ---- variants

type VariantCountResponseDto struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	RunId   string `json:"runId"`
	Count   int    `json:"count"`
}

type ChromosomeBucketDto struct {
	Chromosome string `json:"chromosome"`
	Count      int    `json:"count"`
}

type ChromosomeDistributionResponseDto struct {
	Status  int                   `json:"status"`
	Message string                `json:"message"`
	Results []ChromosomeBucketDto `json:"results"`
}

type IngestStatsResponseDto struct {
	Status  int                   `json:"status"`
	Message string                `json:"message"`
	Stats   ingest.IngestionStats `json:"stats"`
}
