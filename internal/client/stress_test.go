package client

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kvshm/kvshm/internal/ioutil"
	"github.com/kvshm/kvshm/pkg/ring"
)

func TestParseLineAcceptsAllThreeCommands(t *testing.T) {
	req, err := parseLine("INSERT foo bar")
	require.NoError(t, err)
	require.Equal(t, ring.OpInsert, req.Operation)
	require.Equal(t, "foo", req.KeyString())
	require.Equal(t, "bar", req.ValueString())

	req, err = parseLine("GET foo")
	require.NoError(t, err)
	require.Equal(t, ring.OpGet, req.Operation)

	req, err = parseLine("DELETE foo")
	require.NoError(t, err)
	require.Equal(t, ring.OpDelete, req.Operation)
}

func TestParseLineIsCaseInsensitiveOnVerb(t *testing.T) {
	req, err := parseLine("insert foo bar")
	require.NoError(t, err)
	require.Equal(t, ring.OpInsert, req.Operation)
}

func TestParseLineRejectsMalformedCommands(t *testing.T) {
	for _, line := range []string{"INSERT foo", "GET", "DELETE a b", "NOPE foo"} {
		_, err := parseLine(line)
		require.ErrorIs(t, err, ErrMalformedCommand, "line: %q", line)
	}
}

func TestRunStressTestLogsMalformedLinesAndStopsAtExit(t *testing.T) {
	var stdout bytes.Buffer
	out := ioutil.NewWriter(&stdout)

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core).Sugar()

	seg, err := ring.Create("ClientStressTest")
	require.NoError(t, err)
	defer func() {
		seg.Close()
		seg.Unlink()
	}()

	in := strings.NewReader("INSERT a 1\nGET\nGET a\nexit\nINSERT never seen\n")
	RunStressTest(seg, in, out, log, 0)

	require.Empty(t, stdout.String(), "malformed commands must not reach the protocol stdout writer")
	require.NotContains(t, allLogMessages(logs), "never seen")

	// Only the two well-formed commands before "exit" reach the ring.
	var enqueued []string
	for {
		req, _, err := seg.Dequeue()
		if err != nil {
			break
		}
		enqueued = append(enqueued, req.KeyString())
	}
	require.Equal(t, []string{"a", "a"}, enqueued)

	found := false
	for _, entry := range logs.All() {
		if entry.Message == "malformed stress-test line" {
			found = true
		}
	}
	require.True(t, found, "expected a malformed-line diagnostic to be logged")
}

func TestRunStressTestRetriesFullQueueWhenRetryTimeoutSet(t *testing.T) {
	core, _ := observer.New(zap.DebugLevel)
	log := zap.New(core).Sugar()
	out := ioutil.NewWriter(&bytes.Buffer{})

	seg, err := ring.Create("ClientStressRetry")
	require.NoError(t, err)
	defer func() {
		seg.Close()
		seg.Unlink()
	}()

	// Fill the ring (Capacity-1 live slots), then free exactly one slot
	// concurrently so a retried enqueue has somewhere to land.
	for i := 0; i < ring.Capacity-1; i++ {
		require.NoError(t, seg.Enqueue(ring.NewRequest(ring.OpGet, "filler", "")))
	}
	go func() {
		_, _, _ = seg.Dequeue()
	}()

	in := strings.NewReader("INSERT late 1\nexit\n")
	RunStressTest(seg, in, out, log, 2*time.Second)

	drained := false
	for {
		req, _, err := seg.Dequeue()
		if err != nil {
			break
		}
		if req.KeyString() == "late" {
			drained = true
		}
	}
	require.True(t, drained, "expected the retried INSERT to eventually land in the ring")
}

func allLogMessages(logs *observer.ObservedLogs) string {
	var sb strings.Builder
	for _, entry := range logs.All() {
		sb.WriteString(entry.Message)
		for _, f := range entry.Context {
			sb.WriteString(f.String)
		}
	}
	return sb.String()
}
