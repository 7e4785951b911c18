package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/haricode-hub/dashboard/internal/adapters"
	apperrors "github.com/haricode-hub/dashboard/internal/common/errors"
	"github.com/haricode-hub/dashboard/internal/common/metrics"
	"github.com/haricode-hub/dashboard/internal/common/validation"
	"github.com/haricode-hub/dashboard/internal/worklist"
)

// actionRequest is the shared body for the details and approve endpoints.
type actionRequest struct {
	System  string `json:"system"`
	Branch  string `json:"brn"`
	Account string `json:"acc"`
	LogID   string `json:"ejLogId"`
}

// actionRequestSchema validates the shared body shape. Identifier presence
// is system-specific and enforced by the adapters themselves.
var actionRequestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"system":  map[string]interface{}{"type": "string"},
		"brn":     map[string]interface{}{"type": "string"},
		"acc":     map[string]interface{}{"type": "string"},
		"ejLogId": map[string]interface{}{"type": "string"},
	},
	"additionalProperties": false,
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "approval-dashboard",
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := worklist.Filters{
		System: q.Get("system"),
		Module: q.Get("module"),
		Branch: q.Get("branch"),
		Status: q.Get("status"),
	}

	start := time.Now()
	records, err := s.worklist.List(r.Context(), filters)
	s.obs.RecordOperationDuration(r.Context(), time.Since(start), "WORKLIST", "list")
	if err != nil {
		s.obs.RecordOperation(r.Context(), "WORKLIST", "list", "error")
		s.writeError(w, r, err)
		return
	}
	s.obs.RecordOperation(r.Context(), "WORKLIST", "list", "ok")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(records),
		"data":    records,
	})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeActionRequest(w, r)
	if !ok {
		return
	}

	adapter := s.registry.Resolve(req.System)
	system := systemTag(req.System)

	start := time.Now()
	details, err := adapter.FetchDetails(r.Context(), adapters.Params{
		Branch:  req.Branch,
		Account: req.Account,
		LogID:   req.LogID,
	})
	s.obs.RecordOperationDuration(r.Context(), time.Since(start), system, "details")
	if err != nil {
		s.obs.RecordOperation(r.Context(), system, "details", "error")
		metrics.AdapterActionsFailed.WithLabelValues(system, "details", string(apperrors.CodeOf(err))).Inc()
		s.writeError(w, r, err)
		return
	}
	s.obs.RecordOperation(r.Context(), system, "details", "ok")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    details.Data,
	})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeActionRequest(w, r)
	if !ok {
		return
	}

	// Supervisor identity travels in its own header and is threaded into the
	// adapter params explicitly. The request body is never rewritten.
	supervisorID := r.Header.Get("X-Supervisor-Id")

	adapter := s.registry.Resolve(req.System)
	system := systemTag(req.System)

	start := time.Now()
	result, err := adapter.ExecuteAction(r.Context(), adapters.ActionApprove, adapters.Params{
		Branch:  req.Branch,
		Account: req.Account,
		LogID:   req.LogID,
		UserID:  supervisorID,
	})
	s.obs.RecordOperationDuration(r.Context(), time.Since(start), system, "approve")
	if err != nil {
		s.obs.RecordOperation(r.Context(), system, "approve", "error")
		metrics.AdapterActionsFailed.WithLabelValues(system, "approve", string(apperrors.CodeOf(err))).Inc()
		s.logger.WithError(err).Error("Approval failed", map[string]interface{}{
			"system":     system,
			"ejLogId":    req.LogID,
			"account":    req.Account,
			"supervisor": supervisorID,
		})
		s.writeError(w, r, err)
		return
	}
	s.obs.RecordOperation(r.Context(), system, "approve", "ok")

	s.logger.Info("Approval completed", map[string]interface{}{
		"system":     system,
		"ejLogId":    req.LogID,
		"account":    req.Account,
		"supervisor": supervisorID,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

func (s *Server) decodeActionRequest(w http.ResponseWriter, r *http.Request) (*actionRequest, bool) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid request body",
			"details": err.Error(),
			"status":  http.StatusBadRequest,
		})
		return nil, false
	}

	result, err := validation.Validate(raw, actionRequestSchema)
	if err != nil || !result.Valid {
		details := "request body does not match the expected shape"
		if result != nil && len(result.Errors) > 0 {
			details = strings.Join(result.Errors, "; ")
		}
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid request body",
			"details": details,
			"status":  http.StatusBadRequest,
		})
		return nil, false
	}

	req := &actionRequest{
		System:  stringOf(raw, "system"),
		Branch:  stringOf(raw, "brn"),
		Account: stringOf(raw, "acc"),
		LogID:   stringOf(raw, "ejLogId"),
	}
	return req, true
}

// writeError maps a structured adapter error onto the response, keeping the
// summary and the upstream diagnostics distinct.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := map[string]interface{}{
		"error":   err.Error(),
		"details": "",
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body["error"] = appErr.Message
		body["details"] = appErr.Details
		body["code"] = appErr.Code
		if appErr.UpstreamBody != "" {
			body["upstreamBody"] = appErr.UpstreamBody
		}

		switch appErr.Code {
		case apperrors.ErrCodeMissingParameter, apperrors.ErrCodeUnsupportedAction:
			status = http.StatusBadRequest
		case apperrors.ErrCodeInvalidResponseShape:
			status = http.StatusBadGateway
		default:
			if appErr.UpstreamStatus >= 400 {
				status = appErr.UpstreamStatus
			} else {
				status = http.StatusBadGateway
			}
		}
	}

	body["status"] = status
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func systemTag(system string) string {
	if system == "" {
		return "FCUBS"
	}
	return strings.ToUpper(system)
}

func stringOf(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
