package account

import "encoding/json"

// Error codes attached to failed results.
const (
	CodeValidation         = "validation_failed"
	CodeUserExists         = "user_exists"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUserNotFound       = "user_not_found"
	CodeIncorrectPassword  = "incorrect_password"
	CodeInternal           = "internal_error"
)

// None is the payload of results that carry only a message.
type None struct{}

// Result is the uniform outcome of every workflow operation. Build it with
// Success, Failure, OK or Fail.
type Result[T any] struct {
	success   bool
	message   string
	data      T
	errorCode string
}

func Success[T any](data T, message string) Result[T] {
	return Result[T]{success: true, message: message, data: data}
}

func Failure[T any](message, code string) Result[T] {
	return Result[T]{message: message, errorCode: code}
}

// OK is a payload-free success.
func OK(message string) Result[None] { return Success(None{}, message) }

// Fail is a payload-free failure.
func Fail(message, code string) Result[None] { return Failure[None](message, code) }

func (r Result[T]) IsSuccess() bool   { return r.success }
func (r Result[T]) Message() string   { return r.message }
func (r Result[T]) Data() T           { return r.data }
func (r Result[T]) ErrorCode() string { return r.errorCode }

type resultJSON struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON{Success: r.success, Message: r.message, ErrorCode: r.errorCode}
	if _, empty := any(r.data).(None); !empty && r.success {
		out.Data = r.data
	}
	return json.Marshal(out)
}

// RegistrationResponse is the payload of a successful registration.
type RegistrationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResponse is the payload of a successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}
