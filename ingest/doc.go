// Package ingest parses the artifacts a scoring run consumes: a
// LightGBM-style JSON model dump, ranking-format document files, and
// plain score lists.
//
// Only the subtree shape the scoring engine supports is accepted: every
// internal node must declare the "<=" decision type and left default
// direction; anything else is rejected at parse time. Model and document
// files may be zstd- or lz4-compressed; the frame magic is sniffed, so
// no file extension convention is needed.
package ingest
