package main

import (
	"fmt"
	"strings"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

func formatListResult(r ListResult) string {
	var b strings.Builder
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		if e.Type == kbfs.TypeDirectory {
			fmt.Fprintf(&b, "%s/", e.Path)
		} else {
			b.WriteString(e.Path)
		}
	}
	return b.String()
}

func formatContentResult(r ContentResult) string {
	return r.Content
}

func formatRangeResult(r kbfs.LineRange) string {
	return fmt.Sprintf("path=%s lines=%d-%d total=%d\n%s", r.Path, r.StartLine, r.EndLine, r.TotalLines, r.Content)
}

func formatSearchResult(r SearchResult) string {
	var b strings.Builder
	for i, m := range r.Matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s:%d:%s", r.Path, m.LineNumber, m.Content)
	}
	return b.String()
}

func formatCountResult(r kbfs.LineCount) string {
	return fmt.Sprintf("path=%s lines=%d words=%d characters=%d", r.Path, r.Lines, r.Words, r.Characters)
}

func formatInfoResult(r kbfs.FileMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "path=%s size=%d (%s) permissions=%s", r.Path, r.SizeBytes, r.SizeHuman, r.Permissions)
	if r.MIMEType != "" {
		fmt.Fprintf(&b, " mime=%s", r.MIMEType)
	}
	fmt.Fprintf(&b, "\ncreated=%s modified=%s accessed=%s", r.CreatedTime, r.ModifiedTime, r.AccessedTime)
	return b.String()
}

func formatRootResult(r RootResult) string {
	return r.Root
}
