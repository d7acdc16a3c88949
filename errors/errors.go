package errors

import (
	"fmt"
	"net/http"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped error for errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Configuration Errors
func ErrMissingCredential(service string) AppError {
	return AppError{
		HTTPCode: http.StatusPreconditionFailed,
		Code:     ErrorCode_CONFIG_MISSING_CREDENTIAL,
		Message:  fmt.Sprintf("API credential for %s is not configured", service),
	}.WithDetail("service", service)
}

func ErrUnsupportedLanguage(code string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_CONFIG_INVALID_LANGUAGE,
		Message:  "Unsupported transcription language",
	}.WithDetail("language", code)
}

// Validation Errors
func ErrValidation(field, reason string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VALIDATION_FAILED,
		Message:  fmt.Sprintf("Validation failed: %s", reason),
	}.WithDetail("field", field)
}

// Workflow Errors
func ErrNoPrimaryPrompt() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_WORKFLOW_NO_PRIMARY,
		Message:  "Primary prompt has not been generated yet",
	}
}

func ErrNoInsights() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_WORKFLOW_NO_INSIGHTS,
		Message:  "No call insights have been collected yet",
	}
}

func ErrNoMasterPrompt() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_WORKFLOW_NO_MASTER,
		Message:  "Master prompt has not been generated yet",
	}
}

// Collaborator Errors
func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Audio transcription failed",
	}
}

func ErrGenerationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_GENERATION_FAILED,
		Message:  "Prompt generation failed",
	}
}

// Storage Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}
