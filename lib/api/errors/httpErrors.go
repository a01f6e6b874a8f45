package errors

var InvalidRequestError = Error{
	Message: "Invalid request",
	Error:   400,
}

func NewMissingParamError(paramName string) Error {
	return Error{
		Message: "Missing parameter: " + paramName,
		Error:   400,
	}
}

func NewInvalidParamError(paramName string) Error {
	return Error{
		Message: "Invalid parameter: " + paramName,
		Error:   400,
	}
}

var UnknownKindError = Error{
	Message: "Unknown content kind",
	Error:   404,
}

var InternalServerError = Error{
	Message: "Internal server error",
	Error:   500,
}

var RequestTimeoutError = Error{
	Message: "Request timed out",
	Error:   408,
}

var UnauthorizedError = Error{
	Message: "Missing acting user, set the X-Author-Id header",
	Error:   401,
}

var TooManyRequestsError = Error{
	Message: "Too many write requests, slow down",
	Error:   429,
}
