package errors

// Error represents an API error
// @Description Standardized API error response
type Error struct {
	Message string `json:"message" example:"chain with id '42' does not exist"`
	Error   int    `json:"error" example:"404"`
	Code    string `json:"code,omitempty" example:"NOT_FOUND"`
	Field   string `json:"field,omitempty" example:"title"`
}
