// Package socketrpc exposes the live catalog of a running service to
// local clients over a Unix domain socket.
package socketrpc

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tinytelemetry/mbtilens/internal/model"
)

// JSON-RPC 2.0 Method Reference
//
// The socket RPC server exposes model.Catalog over Unix domain socket.
//
//   Method     Params            Result
//   ───────    ──────────────    ─────────────────────────────
//   Resolve    {Raw: string}     model.Resolution
//   Lookup     {Code: string}    {Record: model.Record, Found: bool}
//   Codes      (none)            []string
//
// Resolve and Codes accept empty or null params.
//
// Error codes follow JSON-RPC 2.0:
//   -32700  Parse error (malformed JSON)
//   -32601  Method not found
//   -32602  Invalid params
//   -32603  Internal error (marshal failure)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string { return e.Message }

// lookupResult is the Lookup result body.
type lookupResult struct {
	Record model.Record `json:"record"`
	Found  bool         `json:"found"`
}

// DefaultSocketPath returns the default Unix socket path.
// It prefers $XDG_RUNTIME_DIR/mbtilens/mbtilens.sock, falling back to
// ~/.local/state/mbtilens/mbtilens.sock.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "mbtilens", "mbtilens.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/mbtilens.sock"
	}
	return filepath.Join(home, ".local", "state", "mbtilens", "mbtilens.sock")
}
