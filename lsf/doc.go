// Package lsf decodes the LSF binary node-tree resource format: a
// compressed, string-deduplicated document of named nodes carrying typed
// attributes. Parsing is a pure function from an input buffer to an
// immutable *Document; documents own their decompressed backing buffers,
// so independent goroutines may decode and read concurrently without
// coordination.
//
// The on-disk tree uses raw positional indices for parent, child, sibling
// and attribute links. The decoder keeps that shape: nodes and attributes
// live in flat arrays and reference each other by index, with -1 as the
// nil sentinel. Parent indices only ever point backward, which rules out
// cycles by construction and is enforced during parsing.
package lsf
