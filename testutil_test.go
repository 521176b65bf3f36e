package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/stretchr/testify/require"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

func mustWrite(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

// newKB writes files under a fresh root and returns a Service for it.
func newKB(t *testing.T, files map[string]string) (string, *kbfs.Service) {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		mustWrite(t, filepath.Join(root, filepath.FromSlash(name)), data)
	}
	return root, kbfs.New(root)
}

func startServer(t *testing.T, compat bool, svc *kbfs.Service) *mcptest.Server {
	t.Helper()
	srv, err := mcptest.NewServer(t, serverTools(compat, svc)...)
	require.NoError(t, err, "server start failed")
	t.Cleanup(srv.Close)
	return srv
}

func callTool(t *testing.T, srv *mcptest.Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := srv.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "%s call failed", name)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1, "expected one content entry")
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	return v
}
