// Package errors provides GitLive's error taxonomy: sentinel errors for
// errors.Is checks, and typed errors that carry the structured context
// each failure mode needs (the failing git command, the offending config
// key, the line a Z0 document failed to parse on, the tag a divergence
// was detected at).
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, checked with errors.Is throughout the engine.
var (
	// ErrNotGitRepository indicates the configured source path is not a git repository.
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrGitOperationFailed indicates a git subprocess returned a non-zero exit code.
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrInvalidConfiguration indicates a missing or conflicting configuration value.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrLiveUnreachable indicates the LIVE remote could not be resolved or probed.
	ErrLiveUnreachable = errors.New("LIVE remote unreachable")

	// ErrDivergence indicates a gap in the published prefix was observed in Incremental mode.
	ErrDivergence = errors.New("divergence detected")

	// ErrNothingToDo indicates Repair mode found no missing tags; a benign outcome, not a failure.
	ErrNothingToDo = errors.New("nothing to publish")

	// ErrPublishStepFailed indicates the publishing loop failed part way through a tag.
	ErrPublishStepFailed = errors.New("publishing step failed")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Errorf creates a new formatted error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Wrap wraps an error with a message for added context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message for added context.
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether target is in err's chain.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join combines multiple errors into one, skipping nils. Used by cleanup
// paths that attempt several independent steps and want to report every
// failure rather than just the first.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GitError represents a failed git subprocess invocation. It carries
// enough detail (the command, its arguments, and captured stderr) for
// the CLI to print a useful diagnostic without re-running the command.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Stderr    string
}

// Error implements the error interface.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError creates a new GitError.
func NewGitError(operation string, args []string, err error, stderr string) *GitError {
	return &GitError{Operation: operation, Args: args, Err: err, Stderr: stderr}
}

// ConfigError represents an invalid or missing configuration value.
type ConfigError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{Key: key, Err: err}
}

// ParseError represents a line-numbered Z0 syntax error.
type ParseError struct {
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("z0 parse error on line %d: %s", e.Line, e.Message)
}

// NewParseError creates a new ParseError.
func NewParseError(line int, message string) *ParseError {
	return &ParseError{Line: line, Message: message}
}

// DivergenceError represents a gap in the published prefix observed while
// deciding the start index in Incremental mode.
type DivergenceError struct {
	MissingTag string
}

// Error implements the error interface.
func (e *DivergenceError) Error() string {
	return fmt.Sprintf("divergence detected: tag %q was not found in LIVE's published history; "+
		"use --repair or --nuke to recover", e.MissingTag)
}

// Unwrap ties DivergenceError into the ErrDivergence sentinel.
func (e *DivergenceError) Unwrap() error {
	return ErrDivergence
}

// NewDivergenceError creates a new DivergenceError.
func NewDivergenceError(missingTag string) *DivergenceError {
	return &DivergenceError{MissingTag: missingTag}
}

// PublishStepError represents a failure part way through the publishing
// loop, naming the tag being published when it happened. Unwrap exposes
// the underlying cause (typically a *GitError) for errors.As/errors.Is,
// while the type itself distinguishes "failed mid-loop" from any other
// git error for exit-code selection.
type PublishStepError struct {
	Tag string
	Err error
}

// Error implements the error interface.
func (e *PublishStepError) Error() string {
	return fmt.Sprintf("publishing %q failed: %v", e.Tag, e.Err)
}

// Unwrap exposes both the underlying cause and ErrPublishStepFailed, so
// errors.Is(err, ErrPublishStepFailed) succeeds alongside errors.As into
// whatever concrete error (typically a *GitError) actually failed.
func (e *PublishStepError) Unwrap() []error {
	return []error{e.Err, ErrPublishStepFailed}
}

// NewPublishStepError creates a new PublishStepError.
func NewPublishStepError(tag string, err error) *PublishStepError {
	return &PublishStepError{Tag: tag, Err: err}
}
