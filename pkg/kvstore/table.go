package kvstore

import "sync"

// cell is one entry in a bucket's ordered chain.
type cell struct {
	key   string
	value string
	next  *cell
}

// bucket is one lock-striped slice of the table. head/tail track an
// ordered singly-linked chain so that Delete can remove a cell without
// disturbing the relative order of the rest (original_source's
// LinkedList::split_off + pop_front behavior), and Insert appends new
// cells at the tail rather than the head for the same reason.
type bucket struct {
	mu   sync.RWMutex
	head *cell
	tail *cell
}

// Table is a fixed-bucket-count concurrent hash table. Every public method
// takes at most one bucket's lock; no operation ever holds two bucket
// locks at once, so there is no table-wide lock and no global contention
// point (spec.md §4.3).
type Table struct {
	buckets []bucket
}

// New creates a table with n buckets. n is clamped to at least 1.
func New(n int) *Table {
	if n <= 0 {
		n = 1
	}
	return &Table{buckets: make([]bucket, n)}
}

func (t *Table) bucketFor(key string) *bucket {
	return &t.buckets[hash(key, len(t.buckets))]
}

// Insert writes key/value, overwriting an existing cell with the same key
// in place, or appending a new cell at the bucket's tail otherwise.
func (t *Table) Insert(key, value string) {
	b := t.bucketFor(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	for c := b.head; c != nil; c = c.next {
		if c.key == key {
			c.value = value
			return
		}
	}

	n := &cell{key: key, value: value}
	if b.tail == nil {
		b.head = n
	} else {
		b.tail.next = n
	}
	b.tail = n
}

// Get returns the value for key and whether it was found.
func (t *Table) Get(key string) (string, bool) {
	b := t.bucketFor(key)
	b.mu.RLock()
	defer b.mu.RUnlock()

	for c := b.head; c != nil; c = c.next {
		if c.key == key {
			return c.value, true
		}
	}
	return "", false
}

// Delete removes key's cell if present and reports whether it existed.
func (t *Table) Delete(key string) bool {
	b := t.bucketFor(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	var prev *cell
	for c := b.head; c != nil; c = c.next {
		if c.key == key {
			if prev == nil {
				b.head = c.next
			} else {
				prev.next = c.next
			}
			if c == b.tail {
				b.tail = prev
			}
			return true
		}
		prev = c
	}
	return false
}
