package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Quiz specific errors
	ErrConfiguration        ErrorCode = "CONFIGURATION_ERROR"
	ErrLLMServiceError      ErrorCode = "LLM_SERVICE_ERROR"
	ErrInvalidResponse      ErrorCode = "INVALID_RESPONSE"
	ErrConfirmationRequired ErrorCode = "CONFIRMATION_REQUIRED"
	ErrInvalidTransition    ErrorCode = "INVALID_TRANSITION"
)

// Messages shown on the error screen. Provider failures are not told apart.
const (
	MessageConfiguration   = "API Key 未設定。請確認設定檔或環境變數 GEMINI_API_KEY 是否正確設定。"
	MessageProviderFailure = "生成題目失敗。請確認網路連線，或檢查您的 API Key 是否正確設定。"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(ErrConfiguration, message, nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewInvalidResponseError(message string, err error) *DomainError {
	return NewError(ErrInvalidResponse, message, err)
}

func NewConfirmationRequiredError(action string, err error) *DomainError {
	return NewError(ErrConfirmationRequired, fmt.Sprintf("%s requires explicit confirmation", action), err)
}

// CodeOf returns the code of the first DomainError in err's chain, or
// ErrInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

// UserMessage turns a question generation failure into the text shown on the
// error screen.
func UserMessage(err error) string {
	if CodeOf(err) == ErrConfiguration {
		return MessageConfiguration
	}
	return MessageProviderFailure
}
