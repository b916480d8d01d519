package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable failure kind.
type Code string

const (
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeDuplicateUser      Code = "DUPLICATE_USER"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnknownProduct     Code = "UNKNOWN_PRODUCT"
	CodeInvalidAmount      Code = "INVALID_AMOUNT"
	CodeInvalidPin         Code = "INVALID_PIN"
	CodeEmptyCart          Code = "EMPTY_CART"
	CodePinNotSet          Code = "PIN_NOT_SET"
	CodeInvalidPinEntered  Code = "INVALID_PIN_ENTERED"
	CodeInsufficientFunds  Code = "INSUFFICIENT_FUNDS"
	CodePersistenceFailure Code = "PERSISTENCE_FAILURE"
	CodeNotLoggedIn        Code = "NOT_LOGGED_IN"
	CodeForbidden          Code = "FORBIDDEN"
	CodeCheckoutClosed     Code = "CHECKOUT_CLOSED"
)

// Message returns the user-facing text for the code.
func (c Code) Message() string {
	switch c {
	case CodeInvalidInput:
		return "Please complete all required fields."
	case CodeDuplicateUser:
		return "A user with this email already exists."
	case CodeNotFound:
		return "The requested record was not found."
	case CodeInvalidCredentials:
		return "Invalid credentials."
	case CodeUnknownProduct:
		return "This product is no longer available."
	case CodeInvalidAmount:
		return "Invalid amount."
	case CodeInvalidPin:
		return "PIN must be 4-6 digits."
	case CodeEmptyCart:
		return "Your cart is empty."
	case CodePinNotSet:
		return "PIN required for wallet payments. Set one in settings."
	case CodeInvalidPinEntered:
		return "Invalid PIN."
	case CodeInsufficientFunds:
		return "Insufficient funds."
	case CodePersistenceFailure:
		return "Changes could not be saved and may be lost on restart."
	case CodeNotLoggedIn:
		return "Please log in first."
	case CodeForbidden:
		return "You are not allowed to do that."
	case CodeCheckoutClosed:
		return "This checkout is already finished."
	default:
		return "Something went wrong."
	}
}

// HTTPStatus maps the code onto an HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput, CodeInvalidAmount, CodeInvalidPin:
		return http.StatusBadRequest
	case CodeNotFound, CodeUnknownProduct:
		return http.StatusNotFound
	case CodeDuplicateUser:
		return http.StatusConflict
	case CodeInvalidCredentials, CodeNotLoggedIn:
		return http.StatusUnauthorized
	case CodeForbidden, CodeInvalidPinEntered:
		return http.StatusForbidden
	case CodeEmptyCart, CodePinNotSet, CodeInsufficientFunds, CodeCheckoutClosed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is the domain error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error carrying the default message for code.
func New(code Code) *Error {
	return &Error{Code: code, Message: code.Message()}
}

// Errorf creates an error with a formatted internal message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

var (
	ErrInvalidInput       = New(CodeInvalidInput)
	ErrDuplicateUser      = New(CodeDuplicateUser)
	ErrNotFound           = New(CodeNotFound)
	ErrInvalidCredentials = New(CodeInvalidCredentials)
	ErrUnknownProduct     = New(CodeUnknownProduct)
	ErrInvalidAmount      = New(CodeInvalidAmount)
	ErrInvalidPin         = New(CodeInvalidPin)
	ErrEmptyCart          = New(CodeEmptyCart)
	ErrPinNotSet          = New(CodePinNotSet)
	ErrInvalidPinEntered  = New(CodeInvalidPinEntered)
	ErrInsufficientFunds  = New(CodeInsufficientFunds)
	ErrPersistenceFailure = New(CodePersistenceFailure)
	ErrNotLoggedIn        = New(CodeNotLoggedIn)
	ErrForbidden          = New(CodeForbidden)
	ErrCheckoutClosed     = New(CodeCheckoutClosed)
)

// CodeOf extracts the code from err, or "" when err is nil or foreign.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if err != nil {
		return "UNKNOWN"
	}
	return ""
}

// Committed reports whether an operation returning err changed state.
// A persistence failure still leaves the in-memory change in place.
func Committed(err error) bool {
	return err == nil || errors.Is(err, ErrPersistenceFailure)
}
