// Package errors provides standardized error handling for mediadeck.
// It defines the error kinds surfaced by the API client, the upload
// selection and the configuration layer, plus helpers for creating,
// wrapping and classifying them.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Request error kinds
	NetworkFailure
	HTTPError
	UploadRejected
	DecodeFailure
	// Upload selection error kinds
	InvalidUpload
	FileAccessDenied
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case HTTPError:
		return "http error"
	case UploadRejected:
		return "upload rejected"
	case DecodeFailure:
		return "decode failure"
	case InvalidUpload:
		return "invalid upload"
	case FileAccessDenied:
		return "file access denied"
	case InvalidConfig:
		return "invalid config"
	case ConfigNotFound:
		return "config not found"
	default:
		return "unknown"
	}
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// RequestError is the single error type returned by every API call.
// Status is zero when no HTTP response was received.
type RequestError struct {
	ApplicationError
	op     string
	status int
}

// NewRequestError creates a new request error
func NewRequestError(op string, kind ErrorKind, status int, msg string, err error) *RequestError {
	return &RequestError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		op:     op,
		status: status,
	}
}

// Error returns the request error message
func (e *RequestError) Error() string {
	prefix := fmt.Sprintf("%s failed", e.op)
	if e.status != 0 {
		prefix = fmt.Sprintf("%s failed (HTTP %d)", e.op, e.status)
	}
	if e.msg == "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %v", prefix, e.err)
		}
		return prefix
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.msg)
}

// Op returns the API operation that failed
func (e *RequestError) Op() string {
	return e.op
}

// Status returns the HTTP status, or 0 if none was received
func (e *RequestError) Status() int {
	return e.status
}

// Message returns the message without the operation prefix
func (e *RequestError) Message() string {
	return e.msg
}

// UploadError represents a local file that cannot join the upload selection
type UploadError struct {
	ApplicationError
	path string
}

// NewUploadError creates a new upload selection error
func NewUploadError(msg string, path string, kind ErrorKind, err error) *UploadError {
	return &UploadError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the upload error message
func (e *UploadError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *UploadError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first classified error in err's chain
func KindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind()
	}
	var upErr *UploadError
	if errors.As(err, &upErr) {
		return upErr.Kind()
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind()
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return Unknown
}

// IsRequestFailed checks if the error came from an API call
func IsRequestFailed(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// StatusOf returns the HTTP status carried by a request error, or 0
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status()
	}
	return 0
}

// IsUploadRejected checks if the backend refused an upload
func IsUploadRejected(err error) bool {
	return KindOf(err) == UploadRejected
}

// IsInvalidUpload checks if a local file was refused by the selection rules
func IsInvalidUpload(err error) bool {
	var upErr *UploadError
	if errors.As(err, &upErr) {
		return upErr.Kind() == InvalidUpload
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}
