// Package git launches the external git binary and captures its output.
// It is GitLive's only point of contact with git: every other package
// that needs git plumbing (internal/selector, internal/publish) does so
// through a Runner bound to a working directory, never by shelling out
// directly.
//
// Runner deliberately does no output streaming or progress reporting:
// the command's entire stdout/stderr is captured in memory, which is
// acceptable because every caller's output is bounded by the number of
// tags and commits relevant to a single sync run.
package git
