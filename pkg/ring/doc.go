// Package ring implements the shared-memory request queue described in
// SPEC_FULL.md §4.1-§4.2: a fixed-layout header plus a bounded ring of
// fixed-width request records, memory-mapped from a named object under
// /dev/shm so that one server process and any number of client processes
// can exchange requests without a kernel round-trip.
//
// The ring is single-producer/single-consumer by contract: the server owns
// the sole Dequeue loop, and each client enqueue path is expected to be a
// single goroutine (Segment serializes concurrent Enqueue calls from one
// process with an in-process mutex, but that is a convenience, not a
// license for multiple independent producers to share one Segment handle
// without coordination of their own).
//
// No lock of any kind lives in the mapped bytes. Coordination between the
// producer and consumer roles is the two atomically-published index words
// alone, per the Open Question resolved in spec.md §9.
package ring
