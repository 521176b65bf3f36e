package main

import "github.com/useinsider/kbmcp/pkg/kbfs"

// NoArgs is accepted by tools without parameters.
type NoArgs struct{}

// PathArgs is the argument set of tools that take only a path.
type PathArgs struct {
	RelativePath string `json:"relative_path,omitempty" description:"Path relative to the knowledge base root"`
}

// LinesArgs defines parameters for head and tail reads
type LinesArgs struct {
	RelativePath string `json:"relative_path" description:"File path relative to the knowledge base root"`
	Lines        *int   `json:"lines,omitempty" description:"Number of lines to return (default 20)"`
}

// RangeArgs defines parameters for line range reads
type RangeArgs struct {
	RelativePath string `json:"relative_path" description:"File path relative to the knowledge base root"`
	StartLine    *int   `json:"start_line,omitempty" description:"First line, 1-based (default 1)"`
	EndLine      *int   `json:"end_line,omitempty" description:"Last line, inclusive; omit to read to the end"`
}

// SearchArgs defines parameters for searching inside one file
type SearchArgs struct {
	RelativePath  string `json:"relative_path" description:"File path relative to the knowledge base root"`
	Pattern       string `json:"pattern" description:"Regular expression (RE2 syntax)"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" description:"Match case exactly (default false)"`
}

// GlobArgs defines parameters for glob matching
type GlobArgs struct {
	Pattern      string `json:"pattern,omitempty" description:"Glob pattern; ** spans directories (default **/*)"`
	RelativePath string `json:"relative_path,omitempty" description:"Directory to search from, relative to the root"`
}

// ListResult contains directory entries
type ListResult struct {
	Entries []kbfs.DirectoryEntry `json:"entries" description:"Entries in traversal order"`
}

// ContentResult contains text read from a file
type ContentResult struct {
	Path    string `json:"path" description:"Requested path"`
	Content string `json:"content" description:"File text"`
}

// SearchResult contains matching lines of one file
type SearchResult struct {
	Path    string             `json:"path" description:"Requested path"`
	Matches []kbfs.SearchMatch `json:"matches" description:"Matching lines in file order"`
}

// RootResult reports the configured root
type RootResult struct {
	Root string `json:"root" description:"Absolute knowledge base root, empty if unset"`
}
