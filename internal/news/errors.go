package news

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is returned when a QuerySpec cannot be evaluated.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrUnidentifiable marks an item with neither link nor title.
	ErrUnidentifiable = errors.New("item has neither link nor title")

	// ErrBadStatus is wrapped by adapters when an endpoint answers with a non-2xx status.
	ErrBadStatus = errors.New("unexpected status")

	// ErrDecode is wrapped by adapters when a response body cannot be decoded.
	ErrDecode = errors.New("decode failed")

	// Configuration errors.
	ErrEmptyTaxonomy     = errors.New("taxonomy has no categories")
	ErrEmptyLabel        = errors.New("category label is empty")
	ErrDuplicateCategory = errors.New("category label is duplicated")
	ErrReservedLabel     = errors.New("category label is reserved")
	ErrNoKeywords        = errors.New("keyword list is empty")
)

// FetchErrorKind classifies why a source produced nothing.
type FetchErrorKind string

const (
	FetchTimeout  FetchErrorKind = "timeout"
	FetchCanceled FetchErrorKind = "canceled"
	FetchStatus   FetchErrorKind = "status"
	FetchDecode   FetchErrorKind = "decode"
	FetchNetwork  FetchErrorKind = "network"
)

// FetchError is a per-source failure. It never aborts a run.
type FetchError struct {
	Source string
	Kind   FetchErrorKind
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError wraps err for source and infers its kind.
func NewFetchError(source string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return &FetchError{Source: source, Kind: fe.Kind, Err: fe.Err}
	}
	return &FetchError{Source: source, Kind: fetchKind(err), Err: err}
}

func fetchKind(err error) FetchErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return FetchTimeout
	case errors.Is(err, context.Canceled):
		return FetchCanceled
	case errors.Is(err, ErrBadStatus):
		return FetchStatus
	case errors.Is(err, ErrDecode):
		return FetchDecode
	default:
		return FetchNetwork
	}
}

// ParseError reports a field value that could not be interpreted. The field
// degrades to unknown.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SummarizeError is a summarizer failure; callers fall back to placeholder text.
type SummarizeError struct {
	Provider string
	Err      error
}

func (e *SummarizeError) Error() string {
	return fmt.Sprintf("summarize with %s: %v", e.Provider, e.Err)
}

func (e *SummarizeError) Unwrap() error { return e.Err }

// ConfigError is an invalid taxonomy, keyword table or catalog entry. Fatal at startup.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsFetchError checks if err is a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsParseError checks if err is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsSummarizeError checks if err is a SummarizeError.
func IsSummarizeError(err error) bool {
	var se *SummarizeError
	return errors.As(err, &se)
}

// IsConfigError checks if err is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
