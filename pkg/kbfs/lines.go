package kbfs

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
)

const (
	scanBufferSize = 64 * 1024
	maxLineBytes   = math.MaxInt32
	sniffBytes     = 4096
)

// scanLines is a bufio.SplitFunc that recognises "\n", "\r\n" and "\r" as
// line terminators and strips them from the token.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A trailing "\r" may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, scanBufferSize), maxLineBytes)
	sc.Split(scanLines)
	return sc
}

// splitLines splits already decoded content into lines without
// terminators. A terminator at the very end does not start a new line.
func splitLines(content string) []string {
	lines := []string{}
	sc := newLineScanner(strings.NewReader(content))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// decodeUTF8 validates b as UTF-8 text.
func decodeUTF8(op, rel string, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", newError(KindDecoding, op, rel, charsetHint(b))
	}
	return string(b), nil
}

// charsetHint guesses the encoding of content that failed UTF-8 decoding.
func charsetHint(b []byte) string {
	if len(b) > sniffBytes {
		b = b[:sniffBytes]
	}
	res, err := chardet.NewTextDetector().DetectBest(b)
	if err != nil || res == nil || res.Charset == "" {
		return "unknown encoding"
	}
	return "detected " + strings.ToLower(res.Charset)
}
