// Command gitlive mirrors live/*-tagged snapshots of a private source
// repository into a public LIVE repository as squashed, provenance-
// stamped commits. It wires internal/config, internal/urlutil,
// internal/selector, and internal/publish behind a cobra command tree:
// the root command runs one sync, "check" inspects what a sync would do
// without touching LIVE, and "init" writes a starter gitlive.z0.
package main
