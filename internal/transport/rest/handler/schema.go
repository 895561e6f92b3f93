package handler

import (
	"encoding/json"
	"net/http"

	"healthprofile/internal/model"
)

// SchemaHandler serves the loaded survey definition
type SchemaHandler struct {
	survey *model.Survey
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(survey *model.Survey) *SchemaHandler {
	return &SchemaHandler{survey: survey}
}

// Get handles GET /v1/schema
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.survey)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
