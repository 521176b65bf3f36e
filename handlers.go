package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

func handleListDirectory(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[PathArgs, ListResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, args PathArgs) (ListResult, error) {
		entries, err := svc.ListDirectory(ctx, args.RelativePath)
		if err != nil {
			return ListResult{}, err
		}
		return ListResult{Entries: entries}, nil
	}
}

func handleListDirectoryRecursive(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[PathArgs, ListResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, args PathArgs) (ListResult, error) {
		entries, err := svc.ListDirectoryRecursive(ctx, args.RelativePath)
		if err != nil {
			return ListResult{}, err
		}
		return ListResult{Entries: entries}, nil
	}
}

func handleReadFile(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[PathArgs, ContentResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, args PathArgs) (ContentResult, error) {
		content, err := svc.ReadFile(ctx, args.RelativePath)
		if err != nil {
			return ContentResult{}, err
		}
		return ContentResult{Path: args.RelativePath, Content: content}, nil
	}
}

func handleReadFileHead(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[LinesArgs, ContentResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, args LinesArgs) (ContentResult, error) {
		content, err := svc.ReadFileHead(ctx, args.RelativePath, linesOrDefault(args.Lines))
		if err != nil {
			return ContentResult{}, err
		}
		return ContentResult{Path: args.RelativePath, Content: content}, nil
	}
}

func handleReadFileTail(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[LinesArgs, ContentResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, args LinesArgs) (ContentResult, error) {
		content, err := svc.ReadFileTail(ctx, args.RelativePath, linesOrDefault(args.Lines))
		if err != nil {
			return ContentResult{}, err
		}
		return ContentResult{Path: args.RelativePath, Content: content}, nil
	}
}

func handleReadFileRange(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[RangeArgs, kbfs.LineRange] {
	return func(ctx context.Context, req mcp.CallToolRequest, args RangeArgs) (kbfs.LineRange, error) {
		start := 1
		if args.StartLine != nil {
			start = *args.StartLine
		}
		return svc.ReadFileRange(ctx, args.RelativePath, start, args.EndLine)
	}
}

func handleSearchInFile(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[SearchArgs, SearchResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, args SearchArgs) (SearchResult, error) {
		matches, err := svc.SearchInFile(ctx, args.RelativePath, args.Pattern, args.CaseSensitive)
		if err != nil {
			return SearchResult{}, err
		}
		return SearchResult{Path: args.RelativePath, Matches: matches}, nil
	}
}

func handleCountLines(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[PathArgs, kbfs.LineCount] {
	return func(ctx context.Context, req mcp.CallToolRequest, args PathArgs) (kbfs.LineCount, error) {
		return svc.CountLines(ctx, args.RelativePath)
	}
}

func handleGetFileInfo(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[PathArgs, kbfs.FileMetadata] {
	return func(ctx context.Context, req mcp.CallToolRequest, args PathArgs) (kbfs.FileMetadata, error) {
		return svc.GetFileInfo(ctx, args.RelativePath)
	}
}

func handleGlobFiles(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[GlobArgs, ListResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, args GlobArgs) (ListResult, error) {
		entries, err := svc.GlobFiles(ctx, args.Pattern, args.RelativePath)
		if err != nil {
			return ListResult{}, err
		}
		return ListResult{Entries: entries}, nil
	}
}

func handleGetRootPath(svc *kbfs.Service) mcp.StructuredToolHandlerFunc[NoArgs, RootResult] {
	return func(ctx context.Context, req mcp.CallToolRequest, _ NoArgs) (RootResult, error) {
		return RootResult{Root: svc.RootPath()}, nil
	}
}

func linesOrDefault(n *int) int {
	if n == nil {
		return kbfs.DefaultLines
	}
	return *n
}
