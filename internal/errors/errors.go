package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/tallyapp/tally/internal/logger"
)

// Sentinel errors for the completion and derivation layer. Callers match
// them with Is after any amount of wrapping.
var (
	// ErrInvalidArgument is returned when a mutation is called with a
	// malformed value, e.g. a negative completion count or a day string
	// that is not YYYY-MM-DD.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidDate is returned when a day outside the habit's valid range
	// (created day through today) would corrupt streak or window math.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNotFound is returned when a habit, category, or note id does not
	// exist in the current snapshot. Derivations never return it; lookups
	// for unknown habits yield neutral zero values instead.
	ErrNotFound = errors.New("not found")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
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

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
