package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

const (
	serverName    = "kb-mcp-go"
	serverVersion = "0.1.0"
)

// structuredResult carries v as structured content with its JSON encoding
// as the text fallback.
func structuredResult(v any) *mcp.CallToolResult {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultStructured(v, fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultStructured(v, string(b))
}

func errorResult(err error) *mcp.CallToolResult {
	out := structuredResult(toErrorResponse(err))
	out.IsError = true
	return out
}

func compatErrorResult(err error) *mcp.CallToolResult {
	errResp := toErrorResponse(err)
	out := mcp.NewToolResultStructured(errResp, fmt.Sprintf("%s: %s", errResp.Code, errResp.Error))
	out.IsError = true
	return out
}

func bindError(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
}

func wrapTextHandler[TArgs any, TResult any](h mcp.StructuredToolHandlerFunc[TArgs, TResult], format func(TResult) string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args TArgs
		if err := req.BindArguments(&args); err != nil {
			return compatErrorResult(bindError(err)), nil
		}
		res, err := h(ctx, req, args)
		if err != nil {
			return compatErrorResult(err), nil
		}
		return mcp.NewToolResultText(format(res)), nil
	}
}

func wrapStructuredHandler[TArgs any, TResult any](h mcp.StructuredToolHandlerFunc[TArgs, TResult]) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args TArgs
		if err := req.BindArguments(&args); err != nil {
			return errorResult(bindError(err)), nil
		}
		res, err := h(ctx, req, args)
		if err != nil {
			return errorResult(err), nil
		}
		return structuredResult(res), nil
	}
}

// newTool builds one tool in structured or compat form.
func newTool[TArgs any, TResult any](compat bool, name string, opts []mcp.ToolOption, h mcp.StructuredToolHandlerFunc[TArgs, TResult], format func(TResult) string) server.ServerTool {
	if compat {
		return server.ServerTool{Tool: mcp.NewTool(name, opts...), Handler: wrapTextHandler(h, format)}
	}
	opts = append(opts, mcp.WithOutputSchema[TResult]())
	return server.ServerTool{Tool: mcp.NewTool(name, opts...), Handler: wrapStructuredHandler(h)}
}

func setupServer(cfg *ServerConfig, svc *kbfs.Service, log *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	server.WithToolHandlerMiddleware(loggingMiddleware(log))(s)
	server.WithToolHandlerMiddleware(timeoutMiddleware(cfg.CallTimeout))(s)
	s.AddTools(serverTools(cfg.CompatMode, svc)...)
	return s
}

// serverTools returns every knowledge base tool bound to svc.
func serverTools(compat bool, svc *kbfs.Service) []server.ServerTool {
	return []server.ServerTool{
		newTool(compat, "list_directory", []mcp.ToolOption{
			mcp.WithDescription("List the immediate children of a directory, sorted by name"),
			mcp.WithString("relative_path", mcp.Description("Directory relative to the root; empty for the root")),
		}, handleListDirectory(svc), formatListResult),

		newTool(compat, "list_directory_recursive", []mcp.ToolOption{
			mcp.WithDescription("List a directory tree in pre-order, skipping entries whose names start with a dot"),
			mcp.WithString("relative_path", mcp.Description("Directory relative to the root; empty for the root")),
		}, handleListDirectoryRecursive(svc), formatListResult),

		newTool(compat, "read_file", []mcp.ToolOption{
			mcp.WithDescription("Read a UTF-8 text file in full"),
			mcp.WithString("relative_path", mcp.Required(), mcp.Description("File path relative to the root")),
		}, handleReadFile(svc), formatContentResult),

		newTool(compat, "read_file_head", []mcp.ToolOption{
			mcp.WithDescription("Read the first lines of a text file, joined with newlines"),
			mcp.WithString("relative_path", mcp.Required(), mcp.Description("File path relative to the root")),
			mcp.WithNumber("lines", mcp.Description("Number of lines (default 20)")),
		}, handleReadFileHead(svc), formatContentResult),

		newTool(compat, "read_file_tail", []mcp.ToolOption{
			mcp.WithDescription("Read the last lines of a text file"),
			mcp.WithString("relative_path", mcp.Required(), mcp.Description("File path relative to the root")),
			mcp.WithNumber("lines", mcp.Description("Number of lines (default 20)")),
		}, handleReadFileTail(svc), formatContentResult),

		newTool(compat, "read_file_range", []mcp.ToolOption{
			mcp.WithDescription("Read an inclusive, 1-based range of lines from a text file"),
			mcp.WithString("relative_path", mcp.Required(), mcp.Description("File path relative to the root")),
			mcp.WithNumber("start_line", mcp.Description("First line (default 1)")),
			mcp.WithNumber("end_line", mcp.Description("Last line; omit to read to the end")),
		}, handleReadFileRange(svc), formatRangeResult),

		newTool(compat, "search_in_file", []mcp.ToolOption{
			mcp.WithDescription("Find lines of a text file matching a regular expression"),
			mcp.WithString("relative_path", mcp.Required(), mcp.Description("File path relative to the root")),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Regular expression (RE2 syntax)")),
			mcp.WithBoolean("case_sensitive", mcp.Description("Match case exactly (default false)")),
		}, handleSearchInFile(svc), formatSearchResult),

		newTool(compat, "count_lines", []mcp.ToolOption{
			mcp.WithDescription("Count lines, words and characters of a text file"),
			mcp.WithString("relative_path", mcp.Required(), mcp.Description("File path relative to the root")),
		}, handleCountLines(svc), formatCountResult),

		newTool(compat, "get_file_info", []mcp.ToolOption{
			mcp.WithDescription("Report size, timestamps, permissions and MIME type of a file"),
			mcp.WithString("relative_path", mcp.Required(), mcp.Description("File path relative to the root")),
		}, handleGetFileInfo(svc), formatInfoResult),

		newTool(compat, "glob_files", []mcp.ToolOption{
			mcp.WithDescription("Find files matching a glob pattern; ** spans directories"),
			mcp.WithString("pattern", mcp.Description("Glob pattern (default **/*); a leading / anchors at the root")),
			mcp.WithString("relative_path", mcp.Description("Directory to search from, relative to the root")),
		}, handleGlobFiles(svc), formatListResult),

		newTool(compat, "get_root_path", []mcp.ToolOption{
			mcp.WithDescription("Return the configured knowledge base root"),
		}, handleGetRootPath(svc), formatRootResult),
	}
}
