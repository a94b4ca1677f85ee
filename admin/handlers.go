// Package admin exposes the workbench HTTP API: statement submission,
// history read-back and health.
package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/WebSolutionsGroup/esqrt-sub001/engine"
	"github.com/WebSolutionsGroup/esqrt-sub001/history"
)

const maxQueryBodyBytes = 1 << 20 // 1MB

// Handlers serves the workbench API endpoints.
type Handlers struct {
	processor *engine.Processor
	store     *history.Store
	queries   engine.QueryEngine // fallback surface for non-DML text, may be nil
}

// NewHandlers creates a Handlers instance. store and queries may be
// nil; the corresponding endpoints degrade gracefully.
func NewHandlers(processor *engine.Processor, store *history.Store, queries engine.QueryEngine) *Handlers {
	return &Handlers{
		processor: processor,
		store:     store,
		queries:   queries,
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

// handleQuery runs a statement through the DML processor. Non-DML text
// falls back to ordinary query execution when a query engine is
// attached; otherwise the WasDML=false envelope is returned for the
// client to handle.
func (h *Handlers) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	body := http.MaxBytesReader(w, r.Body, maxQueryBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeErrorResponse(w, http.StatusBadRequest, "query is required")
		return
	}

	result := h.processor.ProcessQuery(r.Context(), req.Query)
	if !result.WasDML && h.queries != nil {
		h.runPassthrough(w, r, req.Query)
		return
	}
	writeJSONResponse(w, result)
}

// runPassthrough executes non-DML text through the host query engine,
// wrapping rows in the same envelope shape the processor uses.
func (h *Handlers) runPassthrough(w http.ResponseWriter, r *http.Request, query string) {
	start := time.Now()
	rows, err := h.queries.RunQuery(r.Context(), query, nil)
	elapsed := time.Since(start).Milliseconds()

	result := engine.ProcessResult{
		ExecutionResult: engine.ExecutionResult{
			Success:       err == nil,
			ExecutionTime: elapsed,
			Metadata:      map[string]any{},
		},
		WasDML: false,
	}
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Result = rows
	}
	writeJSONResponse(w, result)
}

// handleHistory returns recent attempt-log entries, newest first.
func (h *Handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeErrorResponse(w, http.StatusNotFound, "history is not enabled")
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			writeErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}
	entries, err := h.store.Recent(limit)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSONResponse(w, map[string]any{"entries": entries})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, map[string]any{"status": "ok"})
}

// writeJSONResponse writes a successful JSON response
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeErrorResponse writes an error JSON response
func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"error": message}); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON error response")
	}
}
