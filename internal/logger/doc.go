// Package logger provides GitLive's Logger interface: a small, internal/
// user-facing split loggers throughout the engine are built against.
//
// Internal methods (Info, Warning, Error) are written to the structured
// log file when one is configured. Info and Warning are not shown to the
// operator unless --verbose/--very-verbose is set; Error is always
// printed to stderr. User-facing methods (InfoToUser, WarningToUser,
// Success, StatusMessage) are always printed to the console; all but
// StatusMessage are also recorded in the log file.
//
// The default implementation is backed by github.com/rs/zerolog for file
// output, which is newline-delimited JSON. Console lines are plain text
// written with fmt, prefixed with an emoji per level (StatusMessage has
// no prefix).
package logger
