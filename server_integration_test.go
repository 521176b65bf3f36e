package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

const sampleText = "one\ntwo\nthree\nfour\nfive\n"

func sampleKB(t *testing.T) (string, *kbfs.Service) {
	return newKB(t, map[string]string{
		"notes.txt":          sampleText,
		"sub/guide.md":       "# guide\n",
		"sub/deep/ref.md":    "ref\n",
		".git/config":        "[core]\n",
		"sub/.cache/skip.md": "",
	})
}

func TestListDirectoryIntegration(t *testing.T) {
	_, svc := sampleKB(t)
	srv := startServer(t, false, svc)

	res := callTool(t, srv, "list_directory", map[string]any{})
	require.False(t, res.IsError, resultText(t, res))
	got := decodeResult[ListResult](t, res)
	want := []kbfs.DirectoryEntry{
		{Name: ".git", Path: ".git", Type: kbfs.TypeDirectory},
		{Name: "notes.txt", Path: "notes.txt", Type: kbfs.TypeFile},
		{Name: "sub", Path: "sub", Type: kbfs.TypeDirectory},
	}
	if diff := cmp.Diff(want, got.Entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestListDirectoryRecursiveIntegration(t *testing.T) {
	_, svc := sampleKB(t)
	srv := startServer(t, false, svc)

	res := callTool(t, srv, "list_directory_recursive", map[string]any{"relative_path": "sub"})
	require.False(t, res.IsError, resultText(t, res))
	got := decodeResult[ListResult](t, res)
	var paths []string
	for _, e := range got.Entries {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"sub/deep", "sub/deep/ref.md", "sub/guide.md"}, paths)
}

func TestReadToolsIntegration(t *testing.T) {
	_, svc := sampleKB(t)
	srv := startServer(t, false, svc)

	res := callTool(t, srv, "read_file", map[string]any{"relative_path": "notes.txt"})
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, ContentResult{Path: "notes.txt", Content: sampleText}, decodeResult[ContentResult](t, res))

	res = callTool(t, srv, "read_file_head", map[string]any{"relative_path": "notes.txt", "lines": 2})
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, "one\ntwo", decodeResult[ContentResult](t, res).Content)

	res = callTool(t, srv, "read_file_tail", map[string]any{"relative_path": "notes.txt", "lines": 2})
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, "fourfive", decodeResult[ContentResult](t, res).Content)

	res = callTool(t, srv, "read_file_range", map[string]any{"relative_path": "notes.txt", "start_line": 2, "end_line": 3})
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, kbfs.LineRange{Path: "notes.txt", StartLine: 2, EndLine: 3, Content: "twothree", TotalLines: 5},
		decodeResult[kbfs.LineRange](t, res))
}

func TestReadFileHeadDefaultLines(t *testing.T) {
	_, svc := newKB(t, map[string]string{"long.txt": strings.Repeat("x\n", 30)})
	srv := startServer(t, false, svc)

	res := callTool(t, srv, "read_file_head", map[string]any{"relative_path": "long.txt"})
	require.False(t, res.IsError, resultText(t, res))
	lines := strings.Split(decodeResult[ContentResult](t, res).Content, "\n")
	assert.Len(t, lines, kbfs.DefaultLines)
}

func TestReadFileHeadHugeCountIntegration(t *testing.T) {
	_, svc := sampleKB(t)
	srv := startServer(t, false, svc)

	res := callTool(t, srv, "read_file_head", map[string]any{"relative_path": "notes.txt", "lines": 1 << 50})
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, strings.TrimSuffix(sampleText, "\n"), decodeResult[ContentResult](t, res).Content)
}

func TestSearchCountInfoGlobIntegration(t *testing.T) {
	root, svc := sampleKB(t)
	srv := startServer(t, false, svc)

	res := callTool(t, srv, "search_in_file", map[string]any{"relative_path": "notes.txt", "pattern": "T"})
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, SearchResult{Path: "notes.txt", Matches: []kbfs.SearchMatch{
		{LineNumber: 2, Content: "two"},
		{LineNumber: 3, Content: "three"},
	}}, decodeResult[SearchResult](t, res))

	res = callTool(t, srv, "count_lines", map[string]any{"relative_path": "notes.txt"})
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, kbfs.LineCount{Path: "notes.txt", Lines: 5, Words: 5, Characters: len(sampleText)},
		decodeResult[kbfs.LineCount](t, res))

	res = callTool(t, srv, "get_file_info", map[string]any{"relative_path": "sub/guide.md"})
	require.False(t, res.IsError, resultText(t, res))
	info := decodeResult[kbfs.FileMetadata](t, res)
	assert.Equal(t, "guide.md", info.Name)
	assert.Equal(t, "sub/guide.md", info.Path)
	assert.EqualValues(t, len("# guide\n"), info.SizeBytes)
	assert.False(t, info.IsDirectory)
	assert.NotEmpty(t, info.ModifiedTime)

	res = callTool(t, srv, "glob_files", map[string]any{"pattern": "**/*.md", "relative_path": "sub"})
	require.False(t, res.IsError, resultText(t, res))
	var paths []string
	for _, e := range decodeResult[ListResult](t, res).Entries {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"sub/.cache/skip.md", "sub/deep/ref.md", "sub/guide.md"}, paths)

	res = callTool(t, srv, "get_root_path", nil)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, root, decodeResult[RootResult](t, res).Root)
}

func TestErrorCodesIntegration(t *testing.T) {
	_, svc := sampleKB(t)
	srv := startServer(t, false, svc)

	tests := []struct {
		tool string
		args map[string]any
		code string
	}{
		{"read_file", map[string]any{"relative_path": "../outside.txt"}, "ACCESS_DENIED"},
		{"read_file", map[string]any{"relative_path": "missing.txt"}, "NOT_FOUND"},
		{"read_file", map[string]any{"relative_path": "sub"}, "IS_A_DIRECTORY"},
		{"list_directory", map[string]any{"relative_path": "notes.txt"}, "NOT_A_DIRECTORY"},
		{"search_in_file", map[string]any{"relative_path": "notes.txt", "pattern": "(unclosed"}, "INVALID_PATTERN"},
		{"glob_files", map[string]any{"pattern": "[unclosed"}, "INVALID_PATTERN"},
		{"read_file_head", map[string]any{"relative_path": "notes.txt", "lines": "many"}, "INVALID_ARGUMENTS"},
	}
	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.code, func(t *testing.T) {
			res := callTool(t, srv, tt.tool, tt.args)
			require.True(t, res.IsError, "expected IsError result")
			resp := decodeResult[ErrorResponse](t, res)
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestUnconfiguredRootIntegration(t *testing.T) {
	srv := startServer(t, false, kbfs.New(""))

	for _, tool := range []string{"list_directory", "list_directory_recursive", "read_file", "glob_files"} {
		res := callTool(t, srv, tool, map[string]any{"relative_path": "x"})
		require.True(t, res.IsError, tool)
		assert.Equal(t, "ROOT_NOT_CONFIGURED", decodeResult[ErrorResponse](t, res).Code, tool)
	}

	res := callTool(t, srv, "get_root_path", nil)
	require.False(t, res.IsError)
	assert.Equal(t, "", decodeResult[RootResult](t, res).Root)
}
