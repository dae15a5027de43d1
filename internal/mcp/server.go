// Package mcp exposes the tool registry over the Model Context Protocol and
// provides a small client for talking to a running server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mredig/fingerstring-mcp/internal/tool"
)

// Server adapts a tool.Registry to an MCP server.
type Server struct {
	registry *tool.Registry
	mcp      *server.MCPServer
	logger   *slog.Logger

	mu       sync.Mutex
	draining bool
	calls    sync.WaitGroup
}

// NewServer publishes every tool in registry.
func NewServer(name, version string, registry *tool.Registry, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		registry: registry,
		mcp: server.NewMCPServer(
			name,
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		logger: logger,
	}

	for _, def := range registry.Definitions() {
		definition, err := Definition(def)
		if err != nil {
			return nil, err
		}
		s.mcp.AddTool(definition, s.handler(def.Name))
	}

	logger.Info("MCP server ready", "name", name, "version", version, "tools", registry.Len())
	return s, nil
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves requests read from in until in is closed or ctx is done.
// Cancelling ctx stops reading requests; tool calls already running finish
// before ServeStdio returns.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(&slogWriter{logger: s.logger}, "", 0))

	err := stdio.Listen(ctx, in, out)
	s.Drain()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server stopped: %w", err)
	}
	return nil
}

// Drain refuses new tool calls and waits for running ones to finish.
func (s *Server) Drain() {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()

	s.logger.Debug("Waiting for in-flight tool calls")
	s.calls.Wait()
}

func (s *Server) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draining {
		return false
	}
	s.calls.Add(1)
	return true
}

// HandleMessage processes one raw JSON-RPC message in process.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcpgo.JSONRPCMessage {
	return s.mcp.HandleMessage(ctx, message)
}

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		if !s.begin() {
			return mcpgo.NewToolResultError("server is shutting down"), nil
		}
		defer s.calls.Done()

		// A call runs to completion even when the session's context ends.
		result, err := s.registry.Call(context.WithoutCancel(ctx), name, tool.Arguments(request.GetArguments()))
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}
		return CallResult(result)
	}
}

// Definition converts a registered tool to its protocol description.
func Definition(def tool.Definition) (mcpgo.Tool, error) {
	inputSchema, err := json.Marshal(def.InputSchema)
	if err != nil {
		return mcpgo.Tool{}, fmt.Errorf("failed to encode input schema of %s: %w", def.Name, err)
	}

	t := mcpgo.NewToolWithRawSchema(def.Name, def.Description, inputSchema)
	t.Annotations.ReadOnlyHint = mcpgo.ToBoolPtr(def.Annotations.ReadOnly)
	t.Annotations.DestructiveHint = mcpgo.ToBoolPtr(def.Annotations.Destructive)
	t.Annotations.IdempotentHint = mcpgo.ToBoolPtr(def.Annotations.Idempotent)
	t.Annotations.OpenWorldHint = mcpgo.ToBoolPtr(false)
	return t, nil
}

// CallResult renders a tool result: one text block per item, and the
// whole result as structured content.
func CallResult(result *tool.Result) (*mcpgo.CallToolResult, error) {
	items, err := result.ContentText()
	if err != nil {
		return nil, err
	}

	content := make([]mcpgo.Content, 0, len(items))
	for _, item := range items {
		content = append(content, mcpgo.NewTextContent(item))
	}
	return &mcpgo.CallToolResult{
		Content:           content,
		StructuredContent: result,
	}, nil
}

// slogWriter forwards the stdio server's error log lines to slog.
type slogWriter struct {
	logger *slog.Logger
}

func (w *slogWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.logger.Error("MCP transport error", "message", msg)
	return len(p), nil
}
