package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

func TestToErrorResponseCodes(t *testing.T) {
	root, svc := newKB(t, map[string]string{"a.txt": "a", "dir/b.txt": "b"})
	mustWrite(t, filepath.Join(root, "bad.txt"), "\xff\xfe")
	ctx := context.Background()

	failures := map[string]func() error{
		"ROOT_NOT_CONFIGURED": func() error { _, err := kbfs.New("").ReadFile(ctx, "a.txt"); return err },
		"ACCESS_DENIED":       func() error { _, err := svc.ReadFile(ctx, "../../etc/passwd"); return err },
		"NOT_FOUND":           func() error { _, err := svc.ReadFile(ctx, "nope"); return err },
		"NOT_A_DIRECTORY":     func() error { _, err := svc.ListDirectory(ctx, "a.txt"); return err },
		"IS_A_DIRECTORY":      func() error { _, err := svc.CountLines(ctx, "dir"); return err },
		"DECODING_ERROR":      func() error { _, err := svc.ReadFile(ctx, "bad.txt"); return err },
		"INVALID_PATTERN":     func() error { _, err := svc.SearchInFile(ctx, "a.txt", "*", true); return err },
	}
	for code, fn := range failures {
		t.Run(code, func(t *testing.T) {
			err := fn()
			if !assert.Error(t, err) {
				return
			}
			resp := toErrorResponse(err)
			assert.Equal(t, code, resp.Code)
			assert.NotEmpty(t, resp.Operation)
		})
	}
}

func TestToErrorResponseHostCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("list: %w", context.DeadlineExceeded), "TIMEOUT"},
		{context.Canceled, "CANCELED"},
		{bindError(errors.New("json: cannot unmarshal")), "INVALID_ARGUMENTS"},
		{os.ErrPermission, "UNKNOWN_ERROR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, toErrorResponse(tt.err).Code, tt.err.Error())
	}
}

func TestToErrorResponseCarriesDetails(t *testing.T) {
	_, svc := newKB(t, map[string]string{"a.txt": "a"})
	_, err := svc.SearchInFile(context.Background(), "a.txt", "(", false)
	resp := toErrorResponse(err)
	assert.Equal(t, "search_in_file", resp.Operation)
	assert.Equal(t, "a.txt", resp.Path)
	assert.Equal(t, kbfs.ErrInvalidPattern.Error(), resp.Error)
	assert.NotEmpty(t, resp.Details["reason"])
}
