package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/lealogineo/internal/config"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTrafficLogging_ToolCall(t *testing.T) {
	var logs syncBuffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))

	server := NewServer(Config{Defaults: config.Default(), Version: "test", Logger: logger})
	serverT, clientT := sdkmcp.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = server.Run(ctx, serverT) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	defer session.Close()

	_, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "resolve_program",
		Arguments: map[string]any{"program_code": "3"},
	})
	require.NoError(t, err)

	out := logs.String()
	require.Contains(t, out, `"msg":"tool call"`)
	require.Contains(t, out, `"tool":"resolve_program"`)
	require.Contains(t, out, `"is_error":false`)
	require.NotContains(t, out, `"msg":"mcp traffic"`, "payloads are logged at debug level only")
}

func TestFormatPayload_Redacts(t *testing.T) {
	out := formatPayload(map[string]any{
		"Kennwort": "geheim",
		"rows": []any{
			map[string]any{"name": "Roth", "safe_password": "s3cret"},
		},
	})
	require.NotContains(t, out, "geheim")
	require.NotContains(t, out, "s3cret")
	require.Contains(t, out, "Roth")
	require.Contains(t, out, redacted)

	require.Equal(t, "<nil>", formatPayload(nil))
	require.Equal(t, `"plain"`, formatPayload("plain"))
}
