package ring

import "encoding/binary"

// On-disk/on-segment layout. A small read-only compatibility prefix comes
// first (magic/version/capacity/recordSize, written once at creation and
// never touched again), followed by the two live protocol words, followed
// by Capacity fixed-width Request slots. This prefix is new relative to
// the original implementation (SPEC_FULL.md §3); it exists purely so a
// client opening a stale or foreign segment fails fast with
// ErrIncompatibleSegment instead of corrupting memory it misinterprets.
const (
	offMagic      = 0
	offVersion    = 4
	offCapacity   = 8
	offRecordSize = 12
	offReadIndex  = 16
	offWriteIndex = 20

	headerSize = 24

	magic         = "KVQ1"
	formatVersion = uint32(1)
)

// Capacity is the number of slots in the ring. It is a compile-time
// constant shared by every process that imports this package (spec.md
// §4.1's CAPACITY = 10), not a runtime-negotiated value; the header's
// capacity field is a defensive cross-check, not the source of truth.
const Capacity = 10

var byteOrder = binary.LittleEndian

func segmentSize() int {
	return headerSize + Capacity*RequestSize
}
