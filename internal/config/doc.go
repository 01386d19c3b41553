// Package config implements GitLive's layered configuration reader:
// CLI flags, environment variables, and the parsed gitlive.z0
// tree, merged by precedence with a per-key security level that decides
// which of those three sources may ever supply a given key. Secrets like
// the LIVE password default to a level that forbids reading them from the
// checked-in config file at all.
package config
