package response

import (
	"encoding/json"
	"fmt"
	"io"
)

// Exit codes returned to the shell, mirroring the HTTP status classes
const (
	CodeInternal     = 1
	CodeBadRequest   = 2
	CodeUnauthorized = 3
	CodeForbidden    = 4
	CodeNotFound     = 5
	CodeConflict     = 6
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// ExitError is returned once a failure envelope has been written. The
// caller only has to exit with Code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit %d)", e.Message, e.Code)
}

func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func Success(w io.Writer, message string, data interface{}) error {
	return JSON(w, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w io.Writer, code int, message string, err interface{}) error {
	if werr := JSON(w, Response{
		Success: false,
		Message: message,
		Error:   err,
	}); werr != nil {
		return werr
	}
	return &ExitError{Code: code, Message: message}
}

func ValidationError(w io.Writer, errors interface{}) error {
	return Error(w, CodeBadRequest, "Validation failed", errors)
}

func BadRequest(w io.Writer, message string) error {
	if message == "" {
		message = "Bad request"
	}
	return Error(w, CodeBadRequest, message, nil)
}

func Unauthorized(w io.Writer, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return Error(w, CodeUnauthorized, message, nil)
}

func NotFound(w io.Writer, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(w, CodeNotFound, message, nil)
}

func Conflict(w io.Writer, message string) error {
	if message == "" {
		message = "Conflict"
	}
	return Error(w, CodeConflict, message, nil)
}

func InternalServerError(w io.Writer, message string) error {
	if message == "" {
		message = "Internal error"
	}
	return Error(w, CodeInternal, message, nil)
}

func Forbidden(w io.Writer, message string) error {
	if message == "" {
		message = "Forbidden"
	}
	return Error(w, CodeForbidden, message, nil)
}
