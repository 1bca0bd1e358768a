// Package errors provides structured error types for erwindb.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
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
	KindDimension
	KindEmbedding
	KindDatabase
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
	case KindDimension:
		return "dimension mismatch"
	case KindEmbedding:
		return "embedding error"
	case KindDatabase:
		return "database error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for erwindb.
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

// Content errors
func QuestionNotFound(id int64) error {
	return E(Op("store.Question"), KindNotFound, fmt.Sprintf("question %d not found", id))
}

func DatabaseOpenFailed(path string, err error) error {
	return E(Op("store.Open"), KindDatabase, fmt.Sprintf("failed to open database %s", path), err)
}

func DatabaseQueryFailed(op Op, err error) error {
	return E(op, KindDatabase, err)
}

// Search errors
func DimensionMismatch(want, got int, id int64) error {
	return E(Op("search.Semantic"), KindDimension,
		fmt.Sprintf("query has %d dimensions but vector %d has %d", want, id, got))
}

func EmbeddingUnavailable(reason string) error {
	return E(Op("embed.Embed"), KindConfig, fmt.Sprintf("semantic search unavailable: %s", reason))
}

func EmbeddingFailed(model string, err error) error {
	return E(Op("embed.Embed"), KindEmbedding, fmt.Sprintf("embedding with model %s failed", model), err)
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

// Browser errors
func BrowserOpenFailed(url string, err error) error {
	return E(Op("browser.Open"), KindIO, fmt.Sprintf("failed to open %s", url), err)
}
