package exception

// DatabaseError wraps a driver failure with the store operation that hit it.
// It never carries caller mistakes; those are NotFound, Conflict or
// Validation errors.
type DatabaseError struct {
	*AppError
	Operation string
}

func NewDatabaseError(operation string, cause error) *DatabaseError {
	return &DatabaseError{
		AppError: &AppError{
			Code:    "DATABASE_ERROR",
			Message: operation + " failed",
			Cause:   cause,
		},
		Operation: operation,
	}
}
