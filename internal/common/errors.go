package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Pipeline failure taxonomy. Soft conditions (rendering/page OCR) degrade to
// empty output inside the OCR orchestrator; the rest are fatal to the current
// document and caught at the pipeline driver boundary.
var (
	ErrRenderingEmpty = errors.New("pdf produced no page images")
	ErrPageOCREmpty   = errors.New("no text detected on page")
	// ErrOCRTextEmpty labels the collapsed outcome of the OCR orchestrator,
	// which reports every failure (rendering, page OCR, tooling) as empty
	// text without distinguishing the cause.
	ErrOCRTextEmpty        = errors.New("document produced no ocr text")
	ErrExtractionRefused   = errors.New("model refused to process the text")
	ErrExtractionMalformed = errors.New("model output failed schema validation")
	ErrValidationMismatch  = errors.New("identifier failed format check")
	ErrUpstreamIO          = errors.New("upstream service failure")
	ErrInvalidInput        = errors.New("invalid input")
)

// NewAppError constructs an AppError wrapping cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
