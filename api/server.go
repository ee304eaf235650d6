// Package api - HTTP server
// Thin, deterministic API layer over the bonus grid engine: input ingestion,
// engine orchestration, output serialization. The API never performs grid
// logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/justinharkelroad/agencybrain-bonusgrid/adapters/storage"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/engine"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	apperrors "github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
)

// Server is the API server.
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
	store   storage.Store
}

// NewServer creates an API server without workbook persistence.
func NewServer(version string, reg *schema.Registry, cat *catalog.Catalog, eng *engine.Engine) *Server {
	return NewServerWithStore(version, reg, cat, eng, nil)
}

// NewServerWithStore creates an API server with a workbook store.
func NewServerWithStore(version string, reg *schema.Registry, cat *catalog.Catalog, eng *engine.Engine, store storage.Store) *Server {
	s := &Server{
		handler: NewHandler(reg, cat, eng),
		mux:     http.NewServeMux(),
		version: version,
		store:   store,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /compute", s.handler.HandleCompute)
	s.mux.HandleFunc("POST /normalize", s.handler.HandleNormalize)
	s.mux.HandleFunc("GET /schema", s.handler.HandleSchema)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)

	// Workbook persistence
	s.mux.HandleFunc("POST /workbooks", s.handleSaveWorkbook)
	s.mux.HandleFunc("GET /workbooks", s.handleListWorkbooks)
	s.mux.HandleFunc("GET /workbooks/{id}", s.handleGetWorkbook)
	s.mux.HandleFunc("DELETE /workbooks/{id}", s.handleDeleteWorkbook)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"version": s.version,
		"schema":  s.handler.reg.Version(),
	}, http.StatusOK)
}

func (s *Server) handleSaveWorkbook(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if s.store == nil {
		writeError(w, requestID, "STORAGE_DISABLED", "workbook storage is not configured", http.StatusNotImplemented)
		return
	}

	var req SaveWorkbookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}
	if req.AccountID == "" {
		writeError(w, requestID, "INVALID_REQUEST", "account_id is required", http.StatusBadRequest)
		return
	}

	rec := &storage.Record{
		ID:            req.ID,
		AccountID:     req.AccountID,
		Label:         req.Label,
		SchemaVersion: s.handler.reg.Version(),
		State:         req.State,
	}
	if err := s.store.Save(r.Context(), rec); err != nil {
		writeError(w, requestID, "STORAGE_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (s *Server) handleListWorkbooks(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if s.store == nil {
		writeError(w, requestID, "STORAGE_DISABLED", "workbook storage is not configured", http.StatusNotImplemented)
		return
	}
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		writeError(w, requestID, "INVALID_REQUEST", "account_id query parameter is required", http.StatusBadRequest)
		return
	}
	recs, err := s.store.List(r.Context(), accountID)
	if err != nil {
		writeError(w, requestID, "STORAGE_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (s *Server) handleGetWorkbook(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if s.store == nil {
		writeError(w, requestID, "STORAGE_DISABLED", "workbook storage is not configured", http.StatusNotImplemented)
		return
	}
	rec, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, requestID, "NOT_FOUND", err.Error(), storageStatus(err))
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (s *Server) handleDeleteWorkbook(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	if s.store == nil {
		writeError(w, requestID, "STORAGE_DISABLED", "workbook storage is not configured", http.StatusNotImplemented)
		return
	}
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, requestID, "NOT_FOUND", err.Error(), storageStatus(err))
		return
	}
	writeJSON(w, map[string]string{"status": "deleted", "deleted_at": time.Now().UTC().Format(time.RFC3339)}, http.StatusOK)
}

func storageStatus(err error) int {
	if apperrors.IsType(err, apperrors.TypeStorage) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
