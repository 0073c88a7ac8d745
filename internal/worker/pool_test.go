package worker

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kvshm/kvshm/pkg/ring"
)

func TestPoolDispatchesEveryRequestExactlyOnce(t *testing.T) {
	var count int64

	p := New(4, func(req ring.Request) {
		atomic.AddInt64(&count, 1)
	})

	const n = 50
	for i := 0; i < n; i++ {
		p.Submit(ring.NewRequest(ring.OpGet, fmt.Sprintf("key-%d", i), ""))
	}
	p.Close()

	require.EqualValues(t, n, count)
}

func TestPoolCloseWaitsForInFlightWork(t *testing.T) {
	var done int32
	p := New(2, func(req ring.Request) {
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&done, 1)
	})

	p.Submit(ring.NewRequest(ring.OpGet, "k", ""))
	p.Close()

	require.EqualValues(t, 1, atomic.LoadInt32(&done))
}
