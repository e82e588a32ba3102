package service

// ValidationError reports input the caller must fix. Handlers map it to 400.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}
