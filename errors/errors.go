/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a stored entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedPayload is returned when a contribution or payload file cannot be understood
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrNoRegistrar is returned when a slot without late binding has nothing installed
	ErrNoRegistrar = errors.New("no registrar installed")

	// ErrAlreadyInstalled is returned when installing a registrar into an occupied slot
	ErrAlreadyInstalled = errors.New("registrar already installed")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MalformedPayloadError reports a payload that could not be decoded or merged.
// Source names where the payload came from (a file path, a crate name).
type MalformedPayloadError struct {
	Source string
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	msg := fmt.Sprintf("malformed payload from %q: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// NoRegistrarError represents a contribution to a slot that has no registrar
// and does not park contributions.
type NoRegistrarError struct {
	Slot string
}

func (e *NoRegistrarError) Error() string {
	return fmt.Sprintf("no registrar installed for slot %q", e.Slot)
}

func (e *NoRegistrarError) Is(target error) bool {
	return target == ErrNoRegistrar
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewMalformedPayloadError creates a new MalformedPayloadError
func NewMalformedPayloadError(source, reason string) error {
	return &MalformedPayloadError{Source: source, Reason: reason}
}

// WrapMalformedPayload creates a MalformedPayloadError carrying the decoding error
func WrapMalformedPayload(source, reason string, err error) error {
	return &MalformedPayloadError{Source: source, Reason: reason, Err: err}
}

// NewNoRegistrarError creates a new NoRegistrarError
func NewNoRegistrarError(slot string) error {
	return &NoRegistrarError{Slot: slot}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformed checks if an error is a malformed payload error
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

// IsNoRegistrar checks if an error reports a missing registrar
func IsNoRegistrar(err error) bool {
	return errors.Is(err, ErrNoRegistrar)
}
