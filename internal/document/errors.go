package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the category of a loading error
type ErrorType string

// Error types
const (
	ParseError      ErrorType = "parse"
	ValidationError ErrorType = "validation"
	SizeError       ErrorType = "size"
)

var (
	ErrNoDocument       = errors.New("no document to parse")
	ErrDocumentTooLarge = errors.New("document too large")
	ErrDocumentTooSmall = errors.New("document too small")
)

// WrapError wraps an error with its category and the function it came from
func WrapError(err error, errorType ErrorType, funcName, message string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		return fmt.Errorf("[%s:%s] %w", errorType, funcName, err)
	}
	return fmt.Errorf("[%s:%s] %s: %w", errorType, funcName, message, err)
}

// IsErrorType checks if an error was wrapped with the given category
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), fmt.Sprintf("[%s:", errorType))
}

// IsSizeError returns true if the document was rejected for its size
func IsSizeError(err error) bool {
	return IsErrorType(err, SizeError)
}

// IsParseError returns true if the document could not be parsed
func IsParseError(err error) bool {
	return IsErrorType(err, ParseError)
}
