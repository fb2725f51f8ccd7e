package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeConfiguration    ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeMalformedRequest ErrorType = "MALFORMED_REQUEST_ERROR"
	ErrorTypeRecipeGeneration ErrorType = "RECIPE_GENERATION_ERROR"
	ErrorTypeNotFound         ErrorType = "NOT_FOUND_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// NewConfigurationError creates a fatal startup error. It is never sent to a client.
func NewConfigurationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeConfiguration,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: false,
		Err:           err,
	}
}

// NewMalformedRequestError creates an error for an unparseable request body.
// The relay contract reports these as 500, not 400.
func NewMalformedRequestError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeMalformedRequest,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Err:           err,
	}
}

// NewNotFoundError creates the error reported for unmatched routes (404)
func NewNotFoundError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
	}
}

// NewRecipeGenerationError creates a new recipe generation error (500)
func NewRecipeGenerationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeRecipeGeneration,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Err:           err,
	}
}

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
