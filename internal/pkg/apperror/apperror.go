package apperror

// AppError carries the HTTP status code an error should surface as. The
// message is safe to show to clients; Err is for logs only.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

// New creates an AppError with a status code and client-facing message.
// Package-level AppErrors act as sentinels matchable with errors.Is.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches a status code and message to an underlying error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// WithDetail returns a copy of e with extra context appended to the message.
// The copy wraps the original, so sentinels remain matchable with errors.Is.
func (e *AppError) WithDetail(detail string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message + ": " + detail,
		Err:     e,
	}
}
