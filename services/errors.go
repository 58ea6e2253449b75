package services

import "errors"

// Error codes the presentation layer can switch on without string matching.
const (
	ErrCodeValidation          = "validation_error"
	ErrCodeConflict            = "conflict"
	ErrCodeAlreadyPaid         = "already_paid"
	ErrCodeApprovalRequired    = "approval_required"
	ErrCodePaymentVerification = "payment_verification_failed"
	ErrCodeInvalidCode         = "invalid_code"
	ErrCodeMinimumNotMet       = "minimum_not_met"
	ErrCodeNotFound            = "not_found"
)

type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func ErrValidation(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message}
}

func ErrConflict(message string) *DomainError {
	return &DomainError{Code: ErrCodeConflict, Message: message}
}

func ErrAlreadyPaid(message string) *DomainError {
	return &DomainError{Code: ErrCodeAlreadyPaid, Message: message}
}

func ErrApprovalRequired(message string) *DomainError {
	return &DomainError{Code: ErrCodeApprovalRequired, Message: message}
}

func ErrPaymentVerification(message string) *DomainError {
	return &DomainError{Code: ErrCodePaymentVerification, Message: message}
}

func ErrInvalidCode(message string) *DomainError {
	return &DomainError{Code: ErrCodeInvalidCode, Message: message}
}

func ErrMinimumNotMet(message string) *DomainError {
	return &DomainError{Code: ErrCodeMinimumNotMet, Message: message}
}

func ErrNotFound(message string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Message: message}
}

// AsDomainError unwraps err into a DomainError when possible.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
