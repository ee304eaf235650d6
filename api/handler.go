// Package api - HTTP handlers
// Handlers wrap the engine; they contain no grid logic. Input ingestion,
// engine orchestration, output serialization - nothing else.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justinharkelroad/agencybrain-bonusgrid/core/catalog"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/engine"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/export"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/normalize"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/schema"
	"github.com/justinharkelroad/agencybrain-bonusgrid/core/types"
	apperrors "github.com/justinharkelroad/agencybrain-bonusgrid/internal/errors"
	"github.com/justinharkelroad/agencybrain-bonusgrid/internal/logging"
)

// Handler handles compute and normalize requests.
type Handler struct {
	reg  *schema.Registry
	cat  *catalog.Catalog
	norm *normalize.Normalizer
	eng  *engine.Engine
}

// NewHandler creates a handler for a schema, catalog and engine.
func NewHandler(reg *schema.Registry, cat *catalog.Catalog, eng *engine.Engine) *Handler {
	return &Handler{
		reg:  reg,
		cat:  cat,
		norm: normalize.New(reg),
		eng:  eng,
	}
}

// HandleCompute handles POST /compute
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	requested := h.requestedAddresses(&req)
	state := h.norm.Normalize(req.State)
	outputs, err := h.eng.Compute(state, requested)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsType(err, apperrors.TypeAddress) {
			status = http.StatusBadRequest
		}
		writeError(w, requestID, "COMPUTE_ERROR", err.Error(), status)
		return
	}

	logging.Debug("compute request served",
		zap.String("request_id", requestID),
		zap.Int("requested", len(requested)))

	writeJSON(w, &ComputeResponse{
		RequestID:     requestID,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: h.reg.Version(),
		Outputs:       outputs,
		Payload:       export.Build(h.cat, state, outputs, time.Now().UTC()),
	}, http.StatusOK)
}

// requestedAddresses resolves the request to a concrete address list:
// explicit addresses win, then named groups, then every cataloged output.
func (h *Handler) requestedAddresses(req *ComputeRequest) []types.CellAddress {
	if len(req.Addresses) > 0 {
		return req.Addresses
	}
	if len(req.Groups) > 0 {
		var out []types.CellAddress
		for _, g := range req.Groups {
			out = append(out, h.cat.Outputs.Group(g)...)
		}
		return out
	}
	return h.cat.Outputs.All()
}

// HandleNormalize handles POST /normalize
func (h *Handler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, &NormalizeResponse{
		RequestID:     requestID,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: h.reg.Version(),
		State:         h.norm.Normalize(req.State),
	}, http.StatusOK)
}

// HandleSchema handles GET /schema
func (h *Handler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	resp := &SchemaResponse{
		Sheet:   h.reg.Sheet(),
		Version: h.reg.Version(),
	}
	for _, f := range h.reg.Fields() {
		resp.Fields = append(resp.Fields, SchemaField{
			Address: f.Address,
			Section: string(f.Section),
			Label:   f.Label,
			Type:    f.Kind,
			Default: f.Default,
		})
	}
	writeJSON(w, resp, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, requestID, code, message string, status int) {
	writeJSON(w, &ErrorResponse{
		RequestID: requestID,
		Code:      code,
		Message:   message,
	}, status)
}
