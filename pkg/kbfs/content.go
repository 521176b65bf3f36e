package kbfs

import (
	"context"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SearchMatch is a line that matched a search pattern.
type SearchMatch struct {
	LineNumber int    `json:"line_number" description:"1-based line number"`
	Content    string `json:"content" description:"Line content without terminator"`
}

// LineRange is the result of ReadFileRange.
type LineRange struct {
	Path       string `json:"path" description:"Path relative to the root directory"`
	StartLine  int    `json:"start_line" description:"Requested first line"`
	EndLine    int    `json:"end_line" description:"Requested last line, or the line count when open-ended"`
	Content    string `json:"content" description:"Selected lines, terminators removed"`
	TotalLines int    `json:"total_lines" description:"Number of lines in the file"`
}

// LineCount is the result of CountLines.
type LineCount struct {
	Path       string `json:"path" description:"Path relative to the root directory"`
	Lines      int    `json:"lines" description:"Number of lines"`
	Words      int    `json:"words" description:"Number of whitespace-separated words"`
	Characters int    `json:"characters" description:"Number of characters"`
}

func (s *Service) readText(op, rel string) (*target, string, error) {
	t, err := s.fileTarget(op, rel)
	if err != nil {
		return nil, "", err
	}
	b, err := os.ReadFile(t.abs)
	if err != nil {
		return nil, "", wrapIO(op, rel, err)
	}
	text, err := decodeUTF8(op, rel, b)
	if err != nil {
		return nil, "", err
	}
	return t, text, nil
}

// ReadFile returns the whole content of rel.
func (s *Service) ReadFile(ctx context.Context, rel string) (string, error) {
	_, text, err := s.readText("read_file", rel)
	return text, err
}

// ReadFileHead returns the first n lines of rel joined by "\n". The whole
// file must decode as UTF-8, including lines past n.
func (s *Service) ReadFileHead(ctx context.Context, rel string, n int) (string, error) {
	_, text, err := s.readText("read_file_head", rel)
	if err != nil {
		return "", err
	}
	if n <= 0 {
		return "", nil
	}
	var lines []string
	sc := newLineScanner(strings.NewReader(text))
	for len(lines) < n && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return strings.Join(lines, "\n"), nil
}

// ReadFileTail returns the last n lines of rel. The lines are concatenated
// without a separator.
func (s *Service) ReadFileTail(ctx context.Context, rel string, n int) (string, error) {
	_, text, err := s.readText("read_file_tail", rel)
	if err != nil {
		return "", err
	}
	if n <= 0 {
		return "", nil
	}
	lines := splitLines(text)
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, ""), nil
}

// ReadFileRange returns lines start through end of rel, 1-based and
// inclusive. A nil end reads to the end of the file. Out-of-range bounds
// are clamped and an empty selection is not an error. Selected lines are
// concatenated without a separator.
func (s *Service) ReadFileRange(ctx context.Context, rel string, start int, end *int) (LineRange, error) {
	t, text, err := s.readText("read_file_range", rel)
	if err != nil {
		return LineRange{}, err
	}
	lines := splitLines(text)
	total := len(lines)

	res := LineRange{
		Path:       t.rel(),
		StartLine:  start,
		EndLine:    total,
		TotalLines: total,
	}
	from := max(0, start-1)
	to := total
	if end != nil {
		res.EndLine = *end
		to = min(total, *end)
	}
	if from >= to {
		return res, nil
	}
	res.Content = strings.Join(lines[from:to], "")
	return res, nil
}

// CountLines counts lines, whitespace-separated words and characters of rel.
func (s *Service) CountLines(ctx context.Context, rel string) (LineCount, error) {
	t, text, err := s.readText("count_lines", rel)
	if err != nil {
		return LineCount{}, err
	}
	return LineCount{
		Path:       t.rel(),
		Lines:      len(splitLines(text)),
		Words:      len(strings.Fields(text)),
		Characters: utf8.RuneCountInString(text),
	}, nil
}

// SearchInFile returns every line of rel in which pattern matches, in file
// order. Matching is case-insensitive unless caseSensitive is set.
func (s *Service) SearchInFile(ctx context.Context, rel, pattern string, caseSensitive bool) ([]SearchMatch, error) {
	const op = "search_in_file"
	t, err := s.fileTarget(op, rel)
	if err != nil {
		return nil, err
	}
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	rx, err := regexp.Compile(expr)
	if err != nil {
		return nil, newError(KindPattern, op, rel, err.Error())
	}

	f, err := os.Open(t.abs)
	if err != nil {
		return nil, wrapIO(op, rel, err)
	}
	defer f.Close()

	matches := []SearchMatch{}
	sc := newLineScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := sc.Bytes()
		if !utf8.Valid(line) {
			return nil, newError(KindDecoding, op, rel, charsetHint(line))
		}
		if rx.Match(line) {
			matches = append(matches, SearchMatch{LineNumber: lineNo, Content: string(line)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, wrapIO(op, rel, err)
	}
	return matches, nil
}
