package server

import (
	"context"
	"io"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teranos/qntx-braket/am"
	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/logger"
)

// ShutdownTimeout bounds the HTTP transport's graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// ServeStdio serves MCP over the given streams until ctx is cancelled or
// stdin closes. Nothing else may write to out.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Infow("Serving MCP", logger.FieldTransport, am.TransportStdio)
	stdio := mcpserver.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "stdio transport failed")
	}
	return nil
}

// ServeHTTP serves MCP over streamable HTTP on addr until ctx is cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("Serving MCP", logger.FieldTransport, am.TransportHTTP, logger.FieldAddress, addr)
		errCh <- httpServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		return errors.Wrapf(err, "http transport on %s failed", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http transport shutdown failed")
	}
	s.log.Infow("MCP server stopped", logger.FieldTransport, am.TransportHTTP)
	return nil
}
