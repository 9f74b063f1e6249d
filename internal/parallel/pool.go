package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when work is submitted to a closed pool.
var ErrPoolClosed = errors.New("parallel: worker pool closed")

// job is one unit of a fork-join batch.
type job struct {
	fn   func()
	done *sync.WaitGroup
}

func (j job) run() {
	defer j.done.Done()
	j.fn()
}

// WorkerPool runs batches of independent functions on a fixed set of
// goroutines.
//
// Each worker owns a queue. A batch is dealt round-robin across the queues,
// and an idle worker steals from the others before blocking, so one slow
// strip does not leave the rest of the pool waiting behind it.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan job
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// mu serializes Close against in-flight submissions.
	mu sync.RWMutex
}

// NewWorkerPool starts a pool of the given size. If workers is 0 or
// negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	depth := workers * 4
	if depth < 8 {
		depth = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan job, workers),
		done:    make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan job, depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case j := <-own:
			j.run()
			continue
		default:
		}

		if j, ok := p.steal(id); ok {
			j.run()
			continue
		}

		select {
		case j := <-own:
			j.run()
		case <-p.done:
			p.drain(own)
			return
		}
	}
}

// steal takes one job from another worker's queue, if any is waiting.
func (p *WorkerPool) steal(id int) (job, bool) {
	for k := 1; k < p.workers; k++ {
		select {
		case j := <-p.queues[(id+k)%p.workers]:
			return j, true
		default:
		}
	}
	return job{}, false
}

func (p *WorkerPool) drain(q chan job) {
	for {
		select {
		case j := <-q:
			j.run()
		default:
			return
		}
	}
}

// ExecuteAll runs every function in work and returns once all of them
// have returned. The functions must not share mutable state unless they
// synchronize it themselves.
func (p *WorkerPool) ExecuteAll(work []func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running.Load() {
		return ErrPoolClosed
	}
	if len(work) == 0 {
		return nil
	}

	var done sync.WaitGroup
	done.Add(len(work))
	for i, fn := range work {
		p.queues[i%p.workers] <- job{fn: fn, done: &done}
	}
	done.Wait()
	return nil
}

// Close stops the workers after the queued work has run. It is safe to
// call more than once.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
