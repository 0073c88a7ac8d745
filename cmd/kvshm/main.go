// Command kvshm is the client side of the shared-memory key/value queue
// (spec.md §1): it attaches to a running server's segment and either
// drives an interactive numbered-menu REPL or, with --stress-test, reads
// line-oriented INSERT/GET/DELETE commands from stdin.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kvshm/kvshm/internal/client"
	"github.com/kvshm/kvshm/internal/config"
	"github.com/kvshm/kvshm/internal/diag"
	"github.com/kvshm/kvshm/internal/ioutil"
	"github.com/kvshm/kvshm/pkg/ring"
)

func main() {
	os.Exit(run())
}

func run() int {
	defaults := config.Default()

	stressTest := flag.Bool("stress-test", false, "read INSERT/GET/DELETE commands from stdin instead of prompting")
	segmentFlag := flag.String("segment", defaults.SegmentName, "shared-memory segment name (must match the server)")
	retryTimeout := flag.Duration("retry-timeout", 0, "in --stress-test mode, retry a full queue with backoff for up to this long instead of reporting it immediately")
	flag.Parse()

	seg, err := ring.Open(*segmentFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	defer seg.Close()

	out := ioutil.Stdout()

	if *stressTest {
		log := diag.New()
		defer func() { _ = log.Sync() }()
		client.RunStressTest(seg, os.Stdin, out, log, *retryTimeout)
	} else {
		client.RunInteractive(seg, out)
	}
	return 0
}
