package trace

// queue is a FIFO of pixel indices backed by a growable ring buffer.
type queue struct {
	buf  []int
	head int
	size int
}

func (q *queue) push(v int) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = v
	q.size++
}

func (q *queue) pop() int {
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v
}

func (q *queue) len() int { return q.size }

func (q *queue) reset() {
	q.head = 0
	q.size = 0
}

func (q *queue) grow() {
	n := max(2*len(q.buf), 64)
	buf := make([]int, n)
	for i := 0; i < q.size; i++ {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
