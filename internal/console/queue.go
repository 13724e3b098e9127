package console

// queueSize bounds the bytes that can arrive while a call is in progress.
const queueSize = 16

// queue is a fixed ring of pending scancodes. One side only pushes and the
// other only pops, so a push from a nested interrupt never races a pop
// on a single core.
type queue struct {
	buf  [queueSize]byte
	head uint32
	tail uint32
}

func (q *queue) push(b byte) bool {
	if q.tail-q.head >= queueSize {
		return false
	}
	q.buf[q.tail%queueSize] = b
	q.tail++
	return true
}

func (q *queue) pop() (byte, bool) {
	if q.head == q.tail {
		return 0, false
	}
	b := q.buf[q.head%queueSize]
	q.head++
	return b, true
}

func (q *queue) empty() bool {
	return q.head == q.tail
}
