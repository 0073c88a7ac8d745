package server

import (
	"github.com/kvshm/kvshm/internal/ioutil"
	"github.com/kvshm/kvshm/pkg/kvstore"
	"github.com/kvshm/kvshm/pkg/ring"
)

// Process executes one dequeued request against table and writes the
// protocol-significant result lines spec.md §6 requires. It is the
// worker.Handler bound into the pool by New.
func Process(req ring.Request, table *kvstore.Table, out *ioutil.Writer) {
	key := req.KeyString()

	switch req.Operation {
	case ring.OpInsert:
		value := req.ValueString()
		out.Printf("Inserting key: %s", key)
		table.Insert(key, value)

	case ring.OpGet:
		out.Printf("Getting key: %s", key)
		if value, ok := table.Get(key); ok {
			out.Printf("Value: %s", value)
		} else {
			out.Printf("Key not found: %s", key)
		}

	case ring.OpDelete:
		out.Printf("Deleting key: %s", key)
		if table.Delete(key) {
			out.Println("Key deleted successfully")
		} else {
			out.Printf("Key not found: %s", key)
		}
	}
}
