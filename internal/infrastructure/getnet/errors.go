package getnet

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrGatewayUnavailable marks a transport-level failure reaching Getnet.
// It is never retried by this subsystem.
var ErrGatewayUnavailable = errors.New("getnet unreachable")

// GatewayError is a structured rejection returned by Getnet with an HTTP
// 4xx status and a JSON error body.
type GatewayError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("getnet error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

// AuthenticationError is a rejection of the client-credentials grant,
// distinct from a generic gateway rejection.
type AuthenticationError struct {
	GatewayError
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}

func IsAuthenticationError(err error) (*AuthenticationError, bool) {
	var authErr *AuthenticationError
	ok := errors.As(err, &authErr)
	return authErr, ok
}

type errorDetail struct {
	Description       string `json:"description"`
	DescriptionDetail string `json:"description_detail"`
	Status            string `json:"status"`
	ErrorCode         string `json:"error_code"`
}

type errorBody struct {
	Name    string        `json:"name"`
	Message string        `json:"message"`
	Details []errorDetail `json:"details"`
}

// parseGatewayError extracts the error code and message from Getnet's
// inconsistent error payloads: details[0] when present, the top-level
// name/message pair otherwise, and a generic message when the body does
// not parse at all.
func parseGatewayError(statusCode int, body []byte) *GatewayError {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Details) > 0 {
			d := parsed.Details[0]
			message := d.Description
			if d.DescriptionDetail != "" {
				message = fmt.Sprintf("%s %s", d.Description, d.DescriptionDetail)
			}
			return &GatewayError{
				Code:       d.ErrorCode,
				Message:    message,
				StatusCode: statusCode,
			}
		}
		if parsed.Name != "" || parsed.Message != "" {
			return &GatewayError{
				Code:       parsed.Name,
				Message:    parsed.Message,
				StatusCode: statusCode,
			}
		}
	}

	return &GatewayError{
		Code:       "UNKNOWN",
		Message:    fmt.Sprintf("getnet returned status %d", statusCode),
		StatusCode: statusCode,
	}
}
