// Implements the RequestQueue, which holds all admitted requests waiting to be dispatched.
// Requests are enqueued on admission

package sim

import (
	"fmt"
	"strings"
)

// RequestQueue represents a FIFO queue of requests waiting for an idle server.
// Insertion order is arrival order after admission; dispatch never reorders,
// so requests always leave strictly in the order they arrived.
type RequestQueue struct {
	queue []Request // FIFO queue of requests
}

// Enqueue adds a request to the back of the queue.
func (rq *RequestQueue) Enqueue(r Request) {
	rq.queue = append(rq.queue, r)
}

func (rq *RequestQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range rq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of requests in the queue.
func (rq *RequestQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the request at the front of the queue without removing it.
// The second return value is false if the queue is empty.
func (rq *RequestQueue) Peek() (Request, bool) {
	if len(rq.queue) == 0 {
		return Request{}, false
	}
	return rq.queue[0], true
}

// Dequeue removes and returns the request at the front of the queue.
// The second return value is false if the queue is empty.
func (rq *RequestQueue) Dequeue() (Request, bool) {
	if len(rq.queue) == 0 {
		return Request{}, false
	}
	front := rq.queue[0]
	rq.queue = rq.queue[1:]
	return front, true
}
