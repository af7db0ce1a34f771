package api

import (
	"net/http"

	"github.com/relaykit/feishu-relay/internal/gateway"
)

// ToolNameHeader carries the fully qualified tool identity on invocations.
// An absent header means the default tool; a present-but-empty one is an
// explicit empty identity and routes to the unknown-tool error.
const ToolNameHeader = "X-Gateway-Tool-Name"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Version is stamped by the build; the default marks dev builds.
var Version = "dev"

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	var req gateway.Request
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusOK, gateway.ErrorResponse(
			"Invalid request body: "+err.Error(), gateway.CodeValidationError))
		return
	}

	toolName := gateway.DefaultToolName
	if values, ok := r.Header[ToolNameHeader]; ok && len(values) > 0 {
		toolName = values[0]
	}

	resp := s.gateway.Invoke(r.Context(), toolName, req)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: Version,
	})
}
