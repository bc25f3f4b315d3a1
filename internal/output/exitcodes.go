package output

import "errors"

// Process exit statuses. Commands return an *ExitError and main exits
// with its Code; anything else is treated as the operator's to fix.
const (
	// ExitSuccess: the command finished, saved or not.
	ExitSuccess = 0
	// ExitUserError: no configuration, no document, a malformed or newer
	// document, a refused path, or input closed mid-session.
	ExitUserError = 1
	// ExitSystemError: the document, config or content folder could not be
	// read or written, or git failed.
	ExitSystemError = 2
	// ExitConflict: an edit would break the site's structure, such as two
	// files deriving the same entry key. Nothing is saved.
	ExitConflict = 3
)

// ExitError pairs the message shown to the operator with the exit status
// and, optionally, the error that caused it.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap exposes Cause so sentinel errors such as store.ErrRead still
// match through errors.Is.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

func exitError(code int, message string, cause error) *ExitError {
	return &ExitError{Code: code, Message: message, Cause: cause}
}

// NewUserError reports a problem the operator can fix by rerunning with
// other input or running setup.
func NewUserError(message string) *ExitError {
	return exitError(ExitUserError, message, nil)
}

// NewUserErrorWithCause is NewUserError keeping the underlying error.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return exitError(ExitUserError, message, cause)
}

// NewSystemError reports a failure outside the operator's input, such as
// a missing git executable.
func NewSystemError(message string) *ExitError {
	return exitError(ExitSystemError, message, nil)
}

// NewSystemErrorWithCause is NewSystemError keeping the underlying error.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return exitError(ExitSystemError, message, cause)
}

// NewConflictError reports a broken site invariant. The session that hit
// it must stop without saving.
func NewConflictError(message string, cause error) *ExitError {
	return exitError(ExitConflict, message, cause)
}

// GetExitCode returns the status main should exit with for err: 0 for
// nil, the carried Code for an *ExitError anywhere in the chain, and
// ExitUserError otherwise.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
