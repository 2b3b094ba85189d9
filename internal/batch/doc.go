// Package batch drives an external image codec over the contents of a
// directory.
//
// A Job names a source directory, a destination directory, a Mode and a
// Selector. Run enumerates the source once, ensures the destination exists,
// invokes the codec once per selected file in lexical order and returns a
// Summary. A file the codec rejects is recorded and skipped; a codec that
// cannot be launched halts the remaining queue.
package batch
