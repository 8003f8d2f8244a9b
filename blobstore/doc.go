// Package blobstore abstracts where model and document artifacts are
// read from: local files, memory, or S3-compatible object storage.
//
// Artifacts are immutable whole-file blobs (a model dump, a document
// set, a score list), so the interface is a plain streaming Open; the
// ingest package layers format sniffing and parsing on top.
package blobstore
