// Package z0 implements the Z0 configuration grammar: a minimal,
// indentation-free, line-oriented key/value format used both for
// GitLive's on-disk config file and for the round-trip provenance
// trailer embedded in every LIVE commit message.
//
// A parsed document is a tree of Node values. A Node is exactly one of
// three disjoint shapes (scalar, object, or array), represented as a
// tagged union (a Kind discriminant) rather than an interface hierarchy,
// since nothing about the grammar benefits from dynamic dispatch and a
// closed set of three shapes is simplest as a single struct.
//
// Parsing is forward-only: once the parser navigates away from a
// subtree, that subtree is locked, and any later assignment that would
// traverse it fails with a line-numbered *errors.ParseError. See
// parser.navigate for the mechanics.
package z0
