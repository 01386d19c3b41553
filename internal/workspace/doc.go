// Package workspace manages the lifetime of the ephemeral git repository
// a publish run operates in: a uniquely named temp directory created at
// engine entry and torn down on every exit path, including failure.
// Cleanup retries with backoff because some platforms mark packed git
// objects read-only, which a plain remove can't touch.
package workspace
