package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/logger"
)

// ExitCoder lets an error choose the process exit status.
type ExitCoder interface {
	ExitCode() int
}

// ExitCode returns the status requested by err, or 1.
func ExitCode(err error) int {
	var coder ExitCoder
	if stderrors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits with ExitCode(err).
// A nil error is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(ExitCode(err))
}

// Fatalf logs and formats an error message, then exits with code 1
func Fatalf(format string, args ...interface{}) {
	logger.Error("Command execution failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
