// Package parallel runs independent jobs on a fixed number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Pool runs jobs handed to Do. With a single worker jobs run inline on the
// caller's goroutine.
type Pool struct {
	wg    sync.WaitGroup
	work  chan func()
	close func()
	size  int
}

// Start launches numWorkers goroutines, GOMAXPROCS when numWorkers < 1.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		close: func() {},
		size:  numWorkers,
	}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

// Size is the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Do queues f, blocking while every worker is busy and the queue is full.
// Do must not be called after Wait.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting jobs and returns once every queued job finished.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
