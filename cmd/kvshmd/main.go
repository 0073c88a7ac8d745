// Command kvshmd is the server side of the shared-memory key/value queue
// (spec.md §1): it creates the named ring segment, dequeues requests in a
// constant-backoff loop, dispatches each to a fixed worker pool, and
// shuts the segment down cleanly on SIGINT.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kvshm/kvshm/internal/config"
	"github.com/kvshm/kvshm/internal/diag"
	"github.com/kvshm/kvshm/internal/ioutil"
	"github.com/kvshm/kvshm/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults := config.Default()

	sizeFlag := flag.IntP("size", "s", defaults.BucketCount, "number of hash-table buckets")
	threadsFlag := flag.IntP("num-threads", "n", defaults.WorkerCount, "worker pool size")
	segmentFlag := flag.String("segment", defaults.SegmentName, "shared-memory segment name")
	configFlag := flag.String("config", "", "optional JSONC config file (overridden by the flags above)")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	if flag.CommandLine.Changed("size") {
		cfg.BucketCount = *sizeFlag
	}
	if flag.CommandLine.Changed("num-threads") {
		cfg.WorkerCount = *threadsFlag
	}
	if flag.CommandLine.Changed("segment") {
		cfg.SegmentName = *segmentFlag
	}

	log := diag.New()
	defer func() { _ = log.Sync() }()

	srv, err := server.New(server.Options{
		SegmentName: cfg.SegmentName,
		BucketCount: cfg.BucketCount,
		WorkerCount: cfg.WorkerCount,
	})
	if err != nil {
		log.Errorf("failed to start server: %v", err)
		return 1
	}

	out := ioutil.Stdout()
	out.Printf("Server started with %d threads. Waiting for requests...", cfg.WorkerCount)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	go func() {
		<-sigCh
		out.Println("Shutdown signal received.")
		cancel()
	}()

	srv.Run(ctx)

	out.Println("Cleaning up...")
	if err := srv.Shutdown(); err != nil {
		log.Errorf("cleanup: %v", err)
		return 1
	}
	out.Println("Cleanup complete. Exiting.")
	return 0
}
