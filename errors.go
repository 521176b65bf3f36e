package main

import (
	"context"
	"errors"

	"github.com/useinsider/kbmcp/pkg/kbfs"
)

// ErrInvalidArguments marks tool arguments that could not be bound.
var ErrInvalidArguments = errors.New("invalid arguments")

// ErrorResponse for agent-friendly error reporting
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Operation string            `json:"operation,omitempty"`
	Path      string            `json:"path,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// toErrorResponse converts errors to agent-friendly format
func toErrorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Error: err.Error(),
	}

	var kerr *kbfs.Error
	if errors.As(err, &kerr) {
		resp.Operation = kerr.Op
		resp.Path = kerr.Path
		resp.Error = kerr.Err.Error()
		if kerr.Details != "" {
			resp.Details = map[string]string{"reason": kerr.Details}
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		resp.Code = "TIMEOUT"
	case errors.Is(err, context.Canceled):
		resp.Code = "CANCELED"
	case errors.Is(err, ErrInvalidArguments):
		resp.Code = "INVALID_ARGUMENTS"
	default:
		resp.Code = kindCode(kbfs.KindOf(err))
	}
	return resp
}

func kindCode(k kbfs.Kind) string {
	switch k {
	case kbfs.KindConfiguration:
		return "ROOT_NOT_CONFIGURED"
	case kbfs.KindAccessDenied:
		return "ACCESS_DENIED"
	case kbfs.KindNotFound:
		return "NOT_FOUND"
	case kbfs.KindNotADirectory:
		return "NOT_A_DIRECTORY"
	case kbfs.KindIsADirectory:
		return "IS_A_DIRECTORY"
	case kbfs.KindDecoding:
		return "DECODING_ERROR"
	case kbfs.KindPattern:
		return "INVALID_PATTERN"
	default:
		return "UNKNOWN_ERROR"
	}
}
