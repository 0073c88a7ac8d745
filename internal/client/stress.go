package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kvshm/kvshm/internal/ioutil"
	"github.com/kvshm/kvshm/pkg/ring"
)

// ErrMalformedCommand is reported (not fatal) for a --stress-test line
// that does not parse as a known command.
var ErrMalformedCommand = errors.New("client: malformed command")

// RunStressTest reads line-oriented commands from in until "exit" or EOF:
//
//	INSERT <key> <value>
//	GET <key>
//	DELETE <key>
//
// matching original_source/tests/common/mod.rs's start_client
// ("--stress-test") harness mode. Malformed lines and enqueue failures
// other than a full queue are operational diagnostics and go to log
// (SPEC_FULL.md §10.1); only "Queue is full" — the line spec.md §6
// requires the client to print on a failed enqueue — goes to out. When
// retryTimeout is positive, a full queue is retried via EnqueueWithRetry
// instead of being reported immediately.
func RunStressTest(seg *ring.Segment, in io.Reader, out *ioutil.Writer, log *zap.SugaredLogger, retryTimeout time.Duration) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return
		}

		req, err := parseLine(line)
		if err != nil {
			log.Warnw("malformed stress-test line", "line", line, "error", err)
			continue
		}

		if err := enqueueLine(seg, req, retryTimeout); err != nil {
			if errors.Is(err, ring.ErrFull) {
				out.Println("Queue is full")
				continue
			}
			log.Errorw("stress-test enqueue failed", "line", line, "error", err)
		}
	}
}

func enqueueLine(seg *ring.Segment, req ring.Request, retryTimeout time.Duration) error {
	if retryTimeout > 0 {
		return EnqueueWithRetry(seg, req, retryTimeout)
	}
	return Enqueue(seg, req)
}

func parseLine(line string) (ring.Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ring.Request{}, fmt.Errorf("%w: empty line", ErrMalformedCommand)
	}

	switch strings.ToUpper(fields[0]) {
	case "INSERT":
		if len(fields) != 3 {
			return ring.Request{}, fmt.Errorf("%w: %q (want INSERT <key> <value>)", ErrMalformedCommand, line)
		}
		return ring.NewRequest(ring.OpInsert, fields[1], fields[2]), nil

	case "GET":
		if len(fields) != 2 {
			return ring.Request{}, fmt.Errorf("%w: %q (want GET <key>)", ErrMalformedCommand, line)
		}
		return ring.NewRequest(ring.OpGet, fields[1], ""), nil

	case "DELETE":
		if len(fields) != 2 {
			return ring.Request{}, fmt.Errorf("%w: %q (want DELETE <key>)", ErrMalformedCommand, line)
		}
		return ring.NewRequest(ring.OpDelete, fields[1], ""), nil

	default:
		return ring.Request{}, fmt.Errorf("%w: unknown operation %q", ErrMalformedCommand, fields[0])
	}
}
