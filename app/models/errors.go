package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes carried by AppError.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse is the body written for every non-validation failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AppError is a domain failure. Fields is only set for validation failures.
type AppError struct {
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, joinFields(e.Fields))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+fields[k])
	}
	return strings.Join(parts, "; ")
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewValidationError(fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

func NewInvalidArgumentError(message string) *AppError {
	return &AppError{Code: CodeInvalidArgument, Message: message}
}

func NewConflictError(message string, err error) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal server error", Err: err}
}

// Not-found messages returned to clients.
const (
	MsgUserNotFound        = "User has not been found"
	MsgUserByEmailNotFound = "User has not been found!"
	MsgPostNotFound        = "Post has not been found!"
	MsgCommentNotFound     = "Comment with provided id could not be found!"
)

func UserNotFound() *AppError        { return NewNotFoundError(MsgUserNotFound) }
func UserByEmailNotFound() *AppError { return NewNotFoundError(MsgUserByEmailNotFound) }
func PostNotFound() *AppError        { return NewNotFoundError(MsgPostNotFound) }
func CommentNotFound() *AppError     { return NewNotFoundError(MsgCommentNotFound) }

// UserPostNotFound is reported when a post is not in the given user's collection.
func UserPostNotFound(postID int64) *AppError {
	return NewNotFoundError(fmt.Sprintf("Post with id=[%d] has not been found", postID))
}

// CodeOf returns the code of the first AppError in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound reports whether err carries a not-found AppError.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
