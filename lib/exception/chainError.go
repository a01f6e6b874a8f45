package exception

import "fmt"

// ValidationError is returned when a submitted value or a requested
// transition breaks a domain rule. It is never retried.
type ValidationError struct {
	*AppError
	Field string
}

func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Code:    "VALIDATION_ERROR",
			Message: message,
		},
		Field: field,
	}
}

// ConflictError signals a lost append race. Callers re-read the chain and
// retry.
type ConflictError struct {
	*AppError
	ChainId  string
	Attempts int
}

func NewConflictError(chainId string, message string) *ConflictError {
	return &ConflictError{
		AppError: &AppError{
			Code:    "CONFLICT",
			Message: message,
		},
		ChainId: chainId,
	}
}

type NotFoundError struct {
	*AppError
	Resource string
	Id       string
}

func NewNotFoundError(resource string, id string) *NotFoundError {
	return &NotFoundError{
		AppError: &AppError{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("%s with id '%s' does not exist", resource, id),
		},
		Resource: resource,
		Id:       id,
	}
}

// InvariantViolation reports broken chain state, e.g. a cycle in the
// previous links. Operations abort; nothing attempts repair.
type InvariantViolation struct {
	*AppError
	ChainId string
	NodeId  string
}

func NewInvariantViolation(chainId string, nodeId string, message string) *InvariantViolation {
	return &InvariantViolation{
		AppError: &AppError{
			Code:    "INVARIANT_VIOLATION",
			Message: message,
		},
		ChainId: chainId,
		NodeId:  nodeId,
	}
}
