package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
	// ErrSwapNotFound is returned when a swap is not found.
	ErrSwapNotFound = errors.New("swap not found")
	// ErrItemUnavailable is returned when the requested item is not available for swapping.
	ErrItemUnavailable = errors.New("item not available")
	// ErrNotItemOwner is returned when the caller offers an item they do not own.
	ErrNotItemOwner = errors.New("you don't own this item")
	// ErrNotAuthorized is returned on ownership or role mismatch.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrSwapAlreadyDecided is returned when a swap has already been accepted or declined.
	ErrSwapAlreadyDecided = errors.New("swap already decided")
	// ErrInvalidTransition is returned when a status change is not permitted by the state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidCredentials is returned on username/email-or-password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountBanned is returned when a banned user attempts to log in.
	ErrAccountBanned = errors.New("account is banned")
	// ErrAccountSuspended is returned when a suspended user attempts to log in.
	ErrAccountSuspended = errors.New("account is suspended")
	// ErrPasswordLoginUnavailable is returned for accounts without a local password.
	ErrPasswordLoginUnavailable = errors.New("password login unavailable for this account")
	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email already exists")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// surfaced as a generic 500 so internal detail never leaks to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_NOT_FOUND")
	case errors.Is(err, ErrSwapNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SWAP_NOT_FOUND")
	case errors.Is(err, ErrItemUnavailable):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ITEM_UNAVAILABLE")
	case errors.Is(err, ErrNotItemOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_ITEM_OWNER")
	case errors.Is(err, ErrNotAuthorized):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrSwapAlreadyDecided):
		return NewHTTPError(http.StatusConflict, err.Error(), "SWAP_ALREADY_DECIDED")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountBanned):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_BANNED")
	case errors.Is(err, ErrAccountSuspended):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_SUSPENDED")
	case errors.Is(err, ErrPasswordLoginUnavailable):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "PASSWORD_LOGIN_UNAVAILABLE")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
