// Package server is the dequeue-and-dispatch loop at the heart of
// cmd/kvshmd (spec.md §4.4-§4.5): a single goroutine repeatedly drains the
// ring and hands requests to a worker pool, backing off on a constant
// schedule when the ring is empty, and draining cleanly on shutdown.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/kvshm/kvshm/internal/diag"
	"github.com/kvshm/kvshm/internal/ioutil"
	"github.com/kvshm/kvshm/internal/worker"
	"github.com/kvshm/kvshm/pkg/kvstore"
	"github.com/kvshm/kvshm/pkg/ring"
)

// emptyPollInterval is the fixed backoff the original implementation uses
// while the ring has nothing to dequeue (original_source/src/main.rs
// sleeps 100ms on "Queue is empty" before retrying).
const emptyPollInterval = 100 * time.Millisecond

// Options configures a Server.
type Options struct {
	SegmentName string
	BucketCount int
	WorkerCount int
}

// Server owns the shared segment, the hash table, and the worker pool for
// one run of cmd/kvshmd.
type Server struct {
	seg   *ring.Segment
	table *kvstore.Table
	pool  *worker.Pool
	out   *ioutil.Writer
	log   *zap.SugaredLogger
}

// New creates (or reattaches to) the named segment and starts the worker
// pool. The caller must call Run to begin dequeuing and Shutdown to clean
// up when done.
func New(opts Options) (*Server, error) {
	seg, err := ring.Create(opts.SegmentName)
	if err != nil {
		return nil, err
	}

	table := kvstore.New(opts.BucketCount)
	out := ioutil.Stdout()

	s := &Server{
		seg:   seg,
		table: table,
		out:   out,
		log:   diag.New(),
	}
	s.pool = worker.New(opts.WorkerCount, func(req ring.Request) {
		Process(req, table, out)
	})
	return s, nil
}

// Run drains the ring until ctx is cancelled. Each successful dequeue is
// announced on stdout ("Server: Received request at position N",
// spec.md §6) before being handed to the worker pool; an empty ring
// sleeps for emptyPollInterval before the next attempt.
func (s *Server) Run(ctx context.Context) {
	poll := backoff.NewConstantBackOff(emptyPollInterval)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		req, pos, err := s.seg.Dequeue()
		if err != nil {
			if errors.Is(err, ring.ErrEmpty) {
				time.Sleep(poll.NextBackOff())
				continue
			}
			s.log.Errorf("dequeue: %v", err)
			continue
		}

		s.out.Printf("Server: Received request at position %d", pos)
		s.pool.Submit(req)
	}
}

// Shutdown stops scheduling new work, drains every in-flight worker, then
// unmaps and removes the shared segment (spec.md §4.6's graceful shutdown
// sequence).
func (s *Server) Shutdown() error {
	s.pool.Close()
	if err := s.seg.Close(); err != nil {
		return err
	}
	return s.seg.Unlink()
}
