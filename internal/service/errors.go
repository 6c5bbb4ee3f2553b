package service

import "fmt"

// Business error codes. The handler layer maps each code to an HTTP status.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeInvalidDate = "INVALID_DATE"
	CodePastDueDate = "PAST_DUE_DATE"
	CodeValidation  = "VALIDATION_ERROR"
	CodeConflict    = "CONFLICT"
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewTaskNotFound(id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("task %s not found", id),
	}
}

func NewInvalidDate(reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeInvalidDate,
		Message: "invalid due date: " + reason,
	}
}

func NewPastDueDate() *BusinessError {
	return &BusinessError{
		Code:    CodePastDueDate,
		Message: "due date cannot be in the past",
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("invalid value for field %q: %s", field, reason),
	}
}

func NewConflict(reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeConflict,
		Message: reason,
	}
}
