package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/cliniclab/medscreen/internal/classifier"
	"github.com/cliniclab/medscreen/internal/config"
	"github.com/cliniclab/medscreen/internal/disease"
	"github.com/cliniclab/medscreen/internal/models"
	"github.com/cliniclab/medscreen/internal/modelstore"
	"github.com/cliniclab/medscreen/internal/predict"
)

// Handler provides HTTP API endpoints
type Handler struct {
	store      *modelstore.Store
	dispatcher *predict.Dispatcher
	cfg        config.Config
	validate   *validator.Validate
}

// NewHandler creates a new API handler
func NewHandler(store *modelstore.Store, dispatcher *predict.Dispatcher, cfg config.Config) *Handler {
	return &Handler{
		store:      store,
		dispatcher: dispatcher,
		cfg:        cfg,
		validate:   validator.New(),
	}
}

// RegisterRoutes sets up all API routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Health and info
	r.HandleFunc("/health", h.handleHealth).Methods("GET")
	r.HandleFunc("/info", h.handleInfo).Methods("GET")

	// Disease catalogue and model status
	r.HandleFunc("/diseases", h.handleListDiseases).Methods("GET")
	r.HandleFunc("/diseases/{disease}", h.handleDisease).Methods("GET")
	r.HandleFunc("/models", h.handleModelStatus).Methods("GET")

	// Screening
	r.HandleFunc("/predict/{disease}", h.handlePredict).Methods("POST")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}

// handleHealth returns server health status
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleInfo returns application information
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.InfoResponse{
		Name:         config.AppName,
		Version:      h.cfg.Version,
		ModelsDir:    h.store.Dir(),
		ModelsLoaded: h.store.Loaded(),
	})
}

// diseaseInfo assembles the catalogue entry for one disease
func (h *Handler) diseaseInfo(d disease.Disease) models.DiseaseInfo {
	_, available := h.store.Lookup(d)
	return models.DiseaseInfo{
		ID:        string(d),
		Title:     d.Title(),
		Icon:      d.Icon(),
		Available: available,
		Fields:    d.Fields(),
	}
}

// handleListDiseases returns every disease screen in menu order
func (h *Handler) handleListDiseases(w http.ResponseWriter, r *http.Request) {
	infos := lo.Map(disease.All(), func(d disease.Disease, _ int) models.DiseaseInfo {
		return h.diseaseInfo(d)
	})
	respondJSON(w, http.StatusOK, infos)
}

// handleDisease returns one disease screen with its form fields
func (h *Handler) handleDisease(w http.ResponseWriter, r *http.Request) {
	d, err := disease.Parse(mux.Vars(r)["disease"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.diseaseInfo(d))
}

// handleModelStatus returns the load state of every model slot
func (h *Handler) handleModelStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Statuses())
}

// handlePredict runs a screening for one disease from named form inputs
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	d, err := disease.Parse(mux.Vars(r)["disease"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "inputs are required")
		return
	}

	features, fieldErrs := buildVector(d, req.Inputs)
	if len(fieldErrs) > 0 {
		respondJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:  "invalid inputs",
			Fields: fieldErrs,
		})
		return
	}

	result, err := h.dispatcher.Predict(d, features)
	if err != nil {
		var dimErr *classifier.DimensionError
		switch {
		case errors.Is(err, predict.ErrModelUnavailable):
			respondError(w, http.StatusServiceUnavailable, err.Error())
		case errors.As(err, &dimErr):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := models.PredictResponse{
		Disease:  string(result.Disease),
		Label:    result.Label,
		Positive: result.Positive,
		Score:    result.Score,
		Message:  result.Message,
	}
	if handle, ok := h.store.Lookup(d); ok {
		resp.Model = models.ModelRef{Kind: string(handle.Kind), Source: handle.Source}
	}
	respondJSON(w, http.StatusOK, resp)
}

// buildVector assembles the ordered feature vector for d from named inputs.
// It returns one message per offending field instead of stopping at the first
// problem, so the form can mark every bad input at once.
func buildVector(d disease.Disease, inputs map[string]float64) ([]float64, map[string]string) {
	fields := d.Fields()
	fieldErrs := make(map[string]string)

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}
	for name := range inputs {
		if !known[name] {
			fieldErrs[name] = "unknown field"
		}
	}

	features := make([]float64, 0, len(fields))
	for _, f := range fields {
		value, ok := inputs[f.Name]
		if !ok {
			fieldErrs[f.Name] = "required"
			continue
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			fieldErrs[f.Name] = "must be a finite number"
			continue
		}
		if f.Min != nil && value < *f.Min {
			fieldErrs[f.Name] = fmt.Sprintf("must be at least %g", *f.Min)
			continue
		}
		if f.Max != nil && value > *f.Max {
			fieldErrs[f.Name] = fmt.Sprintf("must be at most %g", *f.Max)
			continue
		}
		features = append(features, value)
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return features, nil
}
