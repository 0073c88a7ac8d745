package ring

import "errors"

// Sentinel errors, named after the taxonomy the teacher repo uses for its
// own mapped-file package (pkg/slotcache/errors.go): one error per
// distinguishable failure a caller might want to branch on with errors.Is.
var (
	// ErrFull is returned by Enqueue when the ring has no free slot.
	ErrFull = errors.New("ring: queue is full")

	// ErrEmpty is returned by Dequeue when there is nothing to read.
	ErrEmpty = errors.New("ring: queue is empty")

	// ErrSegmentUnavailable means the named segment does not exist yet;
	// clients see this when the server has not been started.
	ErrSegmentUnavailable = errors.New("ring: segment unavailable (make sure the server is running)")

	// ErrSegmentCreationFailure wraps a lower-level OS error encountered
	// while a server was creating its segment.
	ErrSegmentCreationFailure = errors.New("ring: segment creation failure")

	// ErrIncompatibleSegment means an existing segment's header does not
	// match this build's expected magic, version, capacity or record size.
	ErrIncompatibleSegment = errors.New("ring: segment format incompatible")
)
