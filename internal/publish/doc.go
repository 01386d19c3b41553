// Package publish implements the engine that mirrors live/* source tags
// into a squashed, provenance-stamped history on a LIVE remote. It owns
// the workspace lifecycle, tag collection, provenance recovery, the
// start-index decision for Incremental/Repair/Nuke, the commit-tree
// grafting loop, and the push phase. Everything runs through git
// plumbing against a throwaway workspace; the source repository and the
// caller's working tree are never touched.
package publish
