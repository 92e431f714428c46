package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to routes. It serializes to the
// wire shape {"error": {"code": ..., "message": ...}} and carries the HTTP
// status out of band.
type ErrorResponse interface {
	error
	Code() int
}

type apiError struct {
	status int
	Body   errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Body.Code, e.Body.Message)
}

func (e *apiError) Code() int {
	return e.status
}

func New(status int, code, message string) ErrorResponse {
	return &apiError{status: status, Body: errorBody{Code: code, Message: message}}
}

var (
	InternalServerError     = New(http.StatusInternalServerError, "SERVER_ERROR", "Unexpected error")
	MalformedBodyError      = New(http.StatusBadRequest, "INVALID_INPUT", "Malformed request body")
	InvalidRangeError       = New(http.StatusBadRequest, "INVALID_RANGE", "from and to must be valid YYYY-MM-DD dates")
	MissingAuthError        = New(http.StatusUnauthorized, "UNAUTHENTICATED", "Missing Authorization")
	MalformedTokenError     = New(http.StatusUnauthorized, "UNAUTHENTICATED", "Malformed token")
	InvalidAuthTokenError   = New(http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid token")
	InvalidCredentialsError = New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password incorrect")
	ForbiddenError          = New(http.StatusForbidden, "FORBIDDEN", "Insufficient role")
	SlotTakenError          = New(http.StatusConflict, "SLOT_TAKEN", "Slot already taken")
	EmailExistsError        = New(http.StatusConflict, "EMAIL_EXISTS", "Email already in use")
)

func NewMissingParamError(name string) ErrorResponse {
	return New(http.StatusBadRequest, "INVALID_INPUT", fmt.Sprintf("%s is required", name))
}

// FromValidationError flattens validator.v10 field errors into a single
// INVALID_INPUT response.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag())
	}
	return New(http.StatusBadRequest, "INVALID_INPUT", strings.Join(parts, "; "))
}
