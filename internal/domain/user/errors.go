package user

import "fmt"

// Domain error codes
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeDuplicateEmail   = "DUPLICATE_EMAIL"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodePublishFailed    = "EVENT_PUBLISH_FAILED"
)

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Predefined domain errors

func ErrValidation(message string) *DomainError {
	return &DomainError{
		Code:    CodeValidationFailed,
		Message: message,
	}
}

func ErrDuplicateEmail(email string) *DomainError {
	return &DomainError{
		Code:    CodeDuplicateEmail,
		Message: fmt.Sprintf("email %s is already in use", email),
	}
}

func ErrUserNotFound(id int) *DomainError {
	return &DomainError{
		Code:    CodeUserNotFound,
		Message: fmt.Sprintf("user with ID %d not found", id),
	}
}

func ErrPublishFailed(topic string, err error) *DomainError {
	return &DomainError{
		Code:    CodePublishFailed,
		Message: fmt.Sprintf("failed to publish event to %s", topic),
		Err:     err,
	}
}
