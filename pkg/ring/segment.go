package ring

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// shmDir is where named segments live. It is a var rather than a const so
// tests in this package can point it at a scratch directory instead of the
// real /dev/shm tmpfs.
var shmDir = "/dev/shm"

func segmentPath(name string) string {
	return filepath.Join(shmDir, name)
}

// Segment is a handle to one memory-mapped ring. The mapped bytes hold the
// header prefix, the read/write index words, and the Capacity request
// slots; everything else about coordinating access to them lives here, in
// ordinary Go memory, never in the mapping itself.
type Segment struct {
	data []byte
	name string

	// writeMu serializes Enqueue calls made through this one Segment
	// handle from this one process. It has no counterpart in the mapped
	// bytes and does nothing to order enqueues against other processes'
	// handles; the ring protocol itself (protocol.go) is what makes a
	// single producer and single consumer safe across processes.
	writeMu sync.Mutex
}

// Create creates the named segment if it does not already exist (sized and
// header-stamped for this build's Capacity/RequestSize), or reopens it
// in place if it does. Intended for the server process only.
func Create(name string) (*Segment, error) {
	path := segmentPath(name)
	size := segmentSize()

	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create segment %s: %v: %w", path, err, ErrSegmentCreationFailure)
	}
	defer unix.Close(fd)

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("stat segment %s: %v: %w", path, err, ErrSegmentCreationFailure)
	}

	switch {
	case st.Size == 0:
		if err := unix.Ftruncate(fd, int64(size)); err != nil {
			return nil, fmt.Errorf("truncate segment %s: %v: %w", path, err, ErrSegmentCreationFailure)
		}
	case st.Size != int64(size):
		return nil, fmt.Errorf("existing segment %s has size %d, want %d: %w", path, st.Size, size, ErrIncompatibleSegment)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap segment %s: %v: %w", path, err, ErrSegmentCreationFailure)
	}

	s := &Segment{data: data, name: name}
	s.stampHeaderIfEmpty()
	return s, nil
}

func (s *Segment) stampHeaderIfEmpty() {
	if string(s.data[offMagic:offMagic+4]) == magic {
		return // a previous server run against this file already stamped it
	}
	copy(s.data[offMagic:offMagic+4], magic)
	byteOrder.PutUint32(s.data[offVersion:], formatVersion)
	byteOrder.PutUint32(s.data[offCapacity:], uint32(Capacity))
	byteOrder.PutUint32(s.data[offRecordSize:], uint32(RequestSize))
	// read_index and write_index are left at zero: an empty ring.
}

// Open attaches to an existing segment. Intended for client processes; it
// never creates the segment, and fails with ErrSegmentUnavailable if the
// server has not created one yet.
func Open(name string) (*Segment, error) {
	path := segmentPath(name)

	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("open segment %s: %w", path, ErrSegmentUnavailable)
		}
		return nil, fmt.Errorf("open segment %s: %w", path, err)
	}
	defer unix.Close(fd)

	size := segmentSize()
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, fmt.Errorf("stat segment %s: %w", path, err)
	}
	if st.Size != int64(size) {
		return nil, fmt.Errorf("segment %s has size %d, want %d: %w", path, st.Size, size, ErrIncompatibleSegment)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap segment %s: %w", path, err)
	}

	s := &Segment{data: data, name: name}
	if err := s.checkCompatible(); err != nil {
		_ = unix.Munmap(data)
		return nil, err
	}
	return s, nil
}

func (s *Segment) checkCompatible() error {
	if string(s.data[offMagic:offMagic+4]) != magic {
		return fmt.Errorf("segment %s: bad magic: %w", s.name, ErrIncompatibleSegment)
	}
	if v := byteOrder.Uint32(s.data[offVersion:]); v != formatVersion {
		return fmt.Errorf("segment %s: format version %d, want %d: %w", s.name, v, formatVersion, ErrIncompatibleSegment)
	}
	if c := byteOrder.Uint32(s.data[offCapacity:]); c != uint32(Capacity) {
		return fmt.Errorf("segment %s: capacity %d, want %d: %w", s.name, c, Capacity, ErrIncompatibleSegment)
	}
	if rs := byteOrder.Uint32(s.data[offRecordSize:]); rs != uint32(RequestSize) {
		return fmt.Errorf("segment %s: record size %d, want %d: %w", s.name, rs, RequestSize, ErrIncompatibleSegment)
	}
	return nil
}

// Close unmaps the segment. It does not remove the backing object; use
// Unlink for that. Safe to call from both client and server.
func (s *Segment) Close() error {
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	return err
}

// Unlink removes the named shared-memory object. Server-only, called once
// during graceful shutdown after every worker has drained.
func (s *Segment) Unlink() error {
	return unix.Unlink(segmentPath(s.name))
}
