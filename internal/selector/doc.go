// Package selector compiles ordered add/remove Ant-style glob rules
// and applies them to a source tree via git plumbing alone:
// ls-tree to enumerate, read-tree/update-index/write-tree to
// materialize the filtered result. No working tree is ever touched.
package selector
