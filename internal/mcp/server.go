// Package mcp terminates the MCP stdio protocol: one JSON object per line
// in, one per line out. Requests are handled strictly in arrival order; the
// only shared state is the immutable tool registry.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/etherdeck/eth-trading-mcp/internal/constants"
	"github.com/etherdeck/eth-trading-mcp/internal/tools"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// maxLineBytes bounds a single request line.
const maxLineBytes = 4 * 1024 * 1024

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      serverInfo     `json:"serverInfo"`
	Instructions    string         `json:"instructions,omitempty"`
}

type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type listToolsResult struct {
	Tools []toolDescriptor `json:"tools"`
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callToolResult struct {
	Content []textContent `json:"content"`
}

// Server dispatches protocol requests to the tool registry.
type Server struct {
	registry *tools.Registry
	version  string
	log      *zap.SugaredLogger
}

func NewServer(registry *tools.Registry, version string, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{registry: registry, version: version, log: log}
}

// Serve reads request lines from r until EOF, writing one response line per
// non-empty request line to w. One request is fully answered before the next
// line is decoded.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		resp := s.Handle(ctx, line)
		if resp == nil {
			continue
		}

		payload, err := json.Marshal(resp)
		if err != nil {
			// The envelope is built from marshalable values; treat this
			// as a bug, not a protocol condition.
			return fmt.Errorf("mcp: encode response: %w", err)
		}
		if _, err := out.Write(payload); err != nil {
			return fmt.Errorf("mcp: write response: %w", err)
		}
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("mcp: write response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("mcp: flush response: %w", err)
		}
	}
	return scanner.Err()
}

// Handle processes one request line and returns the response envelope, or
// nil when no response is owed (notifications).
func (s *Server) Handle(ctx context.Context, line []byte) *response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		// The id cannot be trusted if the line did not parse.
		return errorResponse(json.RawMessage("null"), codeParseError, "parse error", err.Error())
	}

	// No id means notification: handle silently, answer nothing.
	notification := len(req.ID) == 0

	var result any
	var rpcErr *rpcError

	switch req.Method {
	case "initialize":
		result = s.initialize()
	case "ping":
		result = struct{}{}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, rpcErr = s.callTool(ctx, req.Params)
	default:
		if notification {
			s.log.Debugw("ignoring notification", "method", req.Method)
			return nil
		}
		rpcErr = &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)}
	}

	if notification {
		return nil
	}
	if rpcErr != nil {
		return &response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	return &response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (s *Server) initialize() initializeResult {
	return initializeResult{
		ProtocolVersion: constants.ProtocolVersion,
		Capabilities:    map[string]any{"tools": map[string]any{}},
		ServerInfo:      serverInfo{Name: constants.AppName, Version: s.version},
		Instructions: "Ethereum Trading MCP Server - Provides tools for querying balances, " +
			"getting token prices, and simulating swaps on Ethereum",
	}
}

func (s *Server) listTools() listToolsResult {
	registered := s.registry.List()
	descriptors := make([]toolDescriptor, 0, len(registered))
	for _, t := range registered {
		descriptors = append(descriptors, toolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	return listToolsResult{Tools: descriptors}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (any, *rpcError) {
	var p callToolParams
	if len(params) == 0 {
		return nil, &rpcError{Code: codeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)}
	}
	if p.Name == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "tool name is required"}
	}

	tool, ok := s.registry.Lookup(p.Name)
	if !ok {
		return nil, &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("unknown tool: %s", p.Name)}
	}

	args := p.Arguments
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	out, err := tool.Execute(ctx, args)
	if err != nil {
		if errors.Is(err, tools.ErrInvalidParams) {
			return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
		}
		s.log.Errorw("tool execution failed", "tool", p.Name, "error", err)
		return nil, &rpcError{Code: codeInternalError, Message: "internal error", Data: err.Error()}
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: "internal error", Data: err.Error()}
	}
	return callToolResult{Content: []textContent{{Type: "text", Text: string(pretty)}}}, nil
}

func errorResponse(id json.RawMessage, code int, message, detail string) *response {
	return &response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: message, Data: detail},
	}
}
