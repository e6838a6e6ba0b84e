package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/copyleftdev/SOLVR/internal/config"
	"github.com/copyleftdev/SOLVR/internal/logging"
	"github.com/copyleftdev/SOLVR/internal/result"
	"github.com/copyleftdev/SOLVR/internal/solver"
	"github.com/copyleftdev/SOLVR/internal/tools"
)

// Logger defines the logging interface used by the server.
// This allows us to be flexible with our logging implementation.
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

// Server exposes the optimization tools over HTTP and JSON-RPC 2.0. Every
// request is synchronous and stateless: one request compiles one model,
// runs one solve call and returns one result, so handlers share no mutable
// state and need no locking.
type Server struct {
	cfg      *config.Config
	logger   Logger
	registry *tools.Registry
	metrics  *metrics
}

// NewServer creates a new server instance with the given config and logger.
func NewServer(cfg *config.Config, logger Logger) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		registry: tools.NewRegistry(cfg.SolverOptions()),
		metrics:  newMetrics(),
	}
}

// RegisterRoutes mounts the REST and JSON-RPC endpoints.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tools", s.handleListTools)
		r.Post("/tools/{name}", s.handleCallTool)
	})

	// MCP JSON-RPC 2.0 endpoint
	r.Post("/rpc", s.handleJSONRPC)
}

// callParams is the parameter shape of the tools/call method.
type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// handleJSONRPC handles JSON-RPC 2.0 requests.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var request struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      interface{}     `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.respondWithError(w, -32700, "Parse error", nil)
		return
	}

	if request.JSONRPC != "2.0" {
		s.respondWithError(w, -32600, "Invalid Request", nil)
		return
	}

	switch request.Method {
	case "tools/list":
		s.respondWithResult(w, request.ID, s.toolList())
	case "tools/call":
		var params callParams
		if err := json.Unmarshal(request.Params, &params); err != nil || params.Name == "" {
			s.respondWithError(w, -32602, "Invalid params: tool name is required", request.ID)
			return
		}
		res, ok := s.callTool(r, params.Name, params.Arguments)
		if !ok {
			s.respondWithError(w, -32601, "Method not found: unknown tool "+params.Name, request.ID)
			return
		}
		s.respondWithResult(w, request.ID, res)
	default:
		s.respondWithError(w, -32601, "Method not found", request.ID)
	}
}

// callTool executes a registered tool and records metrics. The result is
// always a complete OptimizationResult; solver and validation failures are
// carried in its status, never as transport-level errors.
func (s *Server) callTool(r *http.Request, name string, args json.RawMessage) (*result.OptimizationResult, bool) {
	if args == nil {
		args = json.RawMessage("{}")
	}
	res, ok := s.registry.Call(r.Context(), name, args)
	if !ok {
		return nil, false
	}

	s.metrics.observe(name, string(res.Status), res.ExecutionTime)
	fields := map[string]interface{}{
		"tool":           name,
		"status":         res.Status,
		"execution_time": res.ExecutionTime,
	}
	if res.Status != solver.StatusOptimal && res.ErrorMessage != nil {
		fields["error_message"] = *res.ErrorMessage
	}
	s.logger.Info("Tool call completed", fields)
	return res, true
}

func (s *Server) toolList() interface{} {
	list := s.registry.List()
	out := make([]map[string]interface{}, len(list))
	for i, t := range list {
		out[i] = map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
		}
	}
	return map[string]interface{}{"tools": out}
}

// handleListTools handles the HTTP GET /api/v1/tools endpoint.
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.toolList())
}

// handleCallTool handles the HTTP POST /api/v1/tools/{name} endpoint. The
// request body is the tool's argument object.
func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, "Missing tool name", http.StatusBadRequest)
		return
	}

	var args json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, ok := s.callTool(r, name, args)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": "unknown tool " + name,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// respondWithResult sends a successful JSON-RPC 2.0 response.
func (s *Server) respondWithResult(w http.ResponseWriter, id, res interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  res,
	})
}

// respondWithError sends a JSON-RPC 2.0 error response.
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string, id interface{}) {
	s.logger.Error("Request error", map[string]interface{}{
		"status":  code,
		"message": message,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": id,
	})
}
