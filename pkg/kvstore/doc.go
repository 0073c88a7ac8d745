// Package kvstore is the bucket-striped hash table that backs the server's
// in-memory key/value data (spec.md §4.3). It is a direct Go port of the
// original Rust HashTable (original_source/src/lib.rs): a fixed number of
// buckets, a polynomial string hash selecting the bucket, and within each
// bucket an ordered list of cells searched linearly. Each bucket owns its
// own lock, so operations on different buckets never contend.
package kvstore
