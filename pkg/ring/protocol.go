package ring

import (
	"sync/atomic"
	"unsafe"
)

func (s *Segment) readIndexPtr() *uint32  { return (*uint32)(unsafe.Pointer(&s.data[offReadIndex])) }
func (s *Segment) writeIndexPtr() *uint32 { return (*uint32)(unsafe.Pointer(&s.data[offWriteIndex])) }

func (s *Segment) slotOffset(i uint32) int {
	return headerSize + int(i)*RequestSize
}

// Enqueue publishes req into the next free slot (spec.md §4.2, producer
// side). It serializes concurrent callers within this process with
// writeMu, then:
//
//  1. loads both indices to compute the next write position and check for
//     a full ring,
//  2. copies the record's bytes into the slot,
//  3. publishes the new write index with a release-store, so a consumer
//     that observes the new index is guaranteed to also observe the bytes
//     written in step 2.
//
// Returns ErrFull if the ring has no free slot.
func (s *Segment) Enqueue(req Request) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	w := atomic.LoadUint32(s.writeIndexPtr())
	r := atomic.LoadUint32(s.readIndexPtr()) // acquire-load of the consumer's progress
	next := (w + 1) % Capacity
	if next == r {
		return ErrFull
	}

	slot := s.slotOffset(w)
	copy(s.data[slot:slot+RequestSize], req.bytes()[:])

	atomic.StoreUint32(s.writeIndexPtr(), next) // release-store, ordered after the copy above
	return nil
}

// Dequeue copies out the oldest published record (spec.md §4.2, consumer
// side) along with the slot position it was read from, for the "Server:
// Received request at position N" diagnostic line. Only ever safe to call
// from a single goroutine per Segment; this package does not serialize
// Dequeue the way it serializes Enqueue, because the protocol assumes
// exactly one consumer.
func (s *Segment) Dequeue() (Request, uint32, error) {
	r := atomic.LoadUint32(s.readIndexPtr())
	w := atomic.LoadUint32(s.writeIndexPtr()) // acquire-load of the producer's progress
	if r == w {
		return Request{}, 0, ErrEmpty
	}

	slot := s.slotOffset(r)
	var req Request
	copy(req.bytes()[:], s.data[slot:slot+RequestSize])

	atomic.StoreUint32(s.readIndexPtr(), (r+1)%Capacity) // release-store, ordered after the copy above
	return req, r, nil
}
