package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrCodeAuthRejected       = "AUTHENTICATION_REJECTED"
	ErrCodeGatewayRejected    = "GATEWAY_REJECTED"
	ErrCodePrecondition       = "PRECONDITION_FAILED"
	ErrCodeStorage            = "STORAGE_FAILURE"
	ErrCodeInvalidInput       = "INVALID_INPUT"
)

func NewGatewayUnavailableError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeGatewayUnavailable,
		Message:    "Communication with the gateway failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewAuthRejectedError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeAuthRejected,
		Message:    "Gateway rejected the client credentials",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewGatewayRejectedError(code, message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeGatewayRejected,
		Message:    fmt.Sprintf("%s: %s", code, message),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func NewPreconditionError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodePrecondition,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func NewStorageError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeStorage,
		Message:    "Local transaction store failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    "Invalid input",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
