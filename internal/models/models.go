package models

import "github.com/cliniclab/medscreen/internal/disease"

// PredictRequest represents a screening request with named feature inputs
type PredictRequest struct {
	Inputs map[string]float64 `json:"inputs" validate:"required,min=1"`
}

// PredictResponse contains the screening outcome for one disease
type PredictResponse struct {
	Disease  string   `json:"disease"`
	Label    int      `json:"label"`
	Positive bool     `json:"positive"`
	Score    float64  `json:"score"`
	Message  string   `json:"message"`
	Model    ModelRef `json:"model"`
}

// ModelRef identifies the classifier that produced a result
type ModelRef struct {
	Kind   string `json:"kind"`
	Source string `json:"source"`
}

// DiseaseInfo describes one disease screen and its form fields
type DiseaseInfo struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Icon      string          `json:"icon"`
	Available bool            `json:"available"`
	Fields    []disease.Field `json:"fields"`
}

// InfoResponse contains application information
type InfoResponse struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	ModelsDir    string `json:"models_dir"`
	ModelsLoaded int    `json:"models_loaded"`
}

// ErrorResponse is the JSON error payload, with per-field detail when the
// request failed validation
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
