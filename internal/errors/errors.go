// Package errors provides structured error types for scribe.
// Every failure carries the operation that produced it and a Kind that
// callers switch on to decide how the failure is surfaced.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindNetwork
	KindConfig
	KindTimeout
	KindInference
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	case KindInference:
		return "inference error"
	case KindUnavailable:
		return "inference unavailable"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for scribe.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetOp returns the Op of the outermost structured error, or "".
func GetOp(err error) Op {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Operations used by the file error constructors. Callers use IsFileError
// to distinguish read and write failures from other IO.
const (
	OpFileRead  Op = "session.OpenFromDisk"
	OpFileWrite Op = "session.Save"
)

// fileKind maps an os error onto a Kind.
func fileKind(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	default:
		return KindIO
	}
}

// File errors
func FileReadFailed(path string, err error) error {
	return E(OpFileRead, fileKind(err), fmt.Sprintf("failed to read %s", path), err)
}

func FileWriteFailed(path string, err error) error {
	return E(OpFileWrite, fileKind(err), fmt.Sprintf("failed to write %s", path), err)
}

// IsFileError reports whether err came from reading or writing a tab's file.
func IsFileError(err error) bool {
	op := GetOp(err)
	return op == OpFileRead || op == OpFileWrite
}

// Tab errors
func TabNotFound(id string) error {
	return E(Op("session.Get"), KindNotFound, fmt.Sprintf("tab %s not found", id))
}

// Inference errors
func InferenceUnavailable(baseURL string, err error) error {
	return E(Op("ollama.Request"), KindUnavailable, fmt.Sprintf("no inference server reachable at %s", baseURL), err)
}

func InferenceRequestFailed(model string, err error) error {
	return E(Op("ollama.Generate"), KindInference, fmt.Sprintf("generation with model %s failed", model), err)
}

func InferenceTimeout(baseURL string, err error) error {
	return E(Op("ollama.Request"), KindTimeout, fmt.Sprintf("request to %s timed out", baseURL), err)
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	return GetKind(err) == KindUnavailable
}

func ServerStartFailed(binary string, err error) error {
	return E(Op("ollama.StartServer"), KindUnavailable, fmt.Sprintf("failed to start %s serve", binary), err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
