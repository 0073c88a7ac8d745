package client

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/kvshm/kvshm/internal/ioutil"
	"github.com/kvshm/kvshm/pkg/ring"
)

// RunInteractive drives the numbered-menu REPL from
// original_source/src/client.rs (1=INSERT, 2=GET, 3=DELETE, 4=Exit),
// grounded on cmd/sloty's liner-backed prompt loop for the line editing
// itself.
func RunInteractive(seg *ring.Segment, out *ioutil.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		out.Println()
		out.Println("Available operations:")
		out.Println("1. INSERT")
		out.Println("2. GET")
		out.Println("3. DELETE")
		out.Println("4. Exit")

		choice, err := line.Prompt("Enter operation number: ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return
			}
			out.Printf("%v", err)
			continue
		}

		switch strings.TrimSpace(choice) {
		case "1":
			handleInsert(seg, line, out)
		case "2":
			handleRead(seg, line, out, ring.OpGet)
		case "3":
			handleRead(seg, line, out, ring.OpDelete)
		case "4":
			return
		default:
			out.Println("Invalid operation! Please try again.")
		}
	}
}

func handleInsert(seg *ring.Segment, line *liner.State, out *ioutil.Writer) {
	key, err := line.Prompt("Enter key: ")
	if err != nil {
		return
	}
	value, err := line.Prompt("Enter value: ")
	if err != nil {
		return
	}
	submit(seg, out, ring.NewRequest(ring.OpInsert, strings.TrimSpace(key), strings.TrimSpace(value)))
}

func handleRead(seg *ring.Segment, line *liner.State, out *ioutil.Writer, op ring.Operation) {
	key, err := line.Prompt("Enter key: ")
	if err != nil {
		return
	}
	submit(seg, out, ring.NewRequest(op, strings.TrimSpace(key), ""))
}

func submit(seg *ring.Segment, out *ioutil.Writer, req ring.Request) {
	if err := Enqueue(seg, req); err != nil {
		if errors.Is(err, ring.ErrFull) {
			out.Println("Queue is full")
			return
		}
		out.Printf("Failed to add request: %v", err)
		return
	}
	out.Println("Request added successfully!")
}
