package cli

import "fmt"

// ExitCoder is implemented by errors that choose the process exit code. Run honors it anywhere in the error chain.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError is a mistake in how the command was invoked. Run prints the command's usage after it and exits 2.
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitError is a runtime failure with an explicit exit code. No usage is printed.
type ExitError struct {
	Code int
	Err  error
}

// Exitf returns an ExitError with code and a formatted message. %w verbs wrap as in fmt.Errorf.
func Exitf(code int, format string, args ...any) ExitError {
	return ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }
func (e ExitError) ExitCode() int { return e.Code }
