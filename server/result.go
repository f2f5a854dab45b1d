package server

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/logger"
)

// addTool registers h for tool, tagging every call with a request id and
// the tool name.
func (s *Server) addTool(tool mcp.Tool, h mcpserver.ToolHandlerFunc) {
	s.mcp.AddTool(tool, s.traced(tool.Name, h))
}

func (s *Server) traced(name string, h mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = logger.WithComponent(logger.WithRequestID(ctx, uuid.NewString()), name)
		start := time.Now()

		res, err := h(ctx, request)

		status := "ok"
		if err != nil || (res != nil && res.IsError) {
			status = "error"
		}
		s.logFor(ctx).Debugw("Tool call finished",
			logger.FieldStatus, status,
			logger.FieldDurationMS, time.Since(start).Milliseconds())
		return res, err
	}
}

// logFor is the server logger carrying the request fields of ctx.
func (s *Server) logFor(ctx context.Context) *zap.SugaredLogger {
	return logger.LoggerFromContext(ctx, s.log)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError logs err and converts it into an MCP error result. Hints are
// appended so clients see how to fix the call.
func (s *Server) toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	category := errors.Category(err)
	fields := []interface{}{
		logger.FieldErrorType, category,
		logger.FieldError, err.Error(),
	}
	log := s.logFor(ctx)
	if category == "invalid_request" || category == "not_found" {
		log.Warnw("Tool call rejected", fields...)
	} else {
		log.Errorw("Tool call failed", fields...)
	}

	msg := tool + ": " + err.Error()
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		msg += "\nHint: " + strings.Join(hints, "\nHint: ")
	}
	return mcp.NewToolResultError(msg)
}
