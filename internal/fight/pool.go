package fight

import "sync"

// pool is a fixed set of goroutines that run one job per generation. run
// hands every worker its index and returns once all of them have finished,
// which is the barrier between a step's writes and the buffer swap.
type pool struct {
	mu   sync.Mutex
	cond *sync.Cond

	size       int
	generation int
	pending    int
	job        func(worker int)
	closed     bool

	done sync.WaitGroup
}

func newPool(size int) *pool {
	if size < 1 {
		size = 1
	}
	p := &pool{size: size}
	p.cond = sync.NewCond(&p.mu)
	p.done.Add(size)
	for i := 0; i < size; i++ {
		go p.loop(i)
	}
	return p
}

func (p *pool) loop(index int) {
	defer p.done.Done()
	last := 0
	p.mu.Lock()
	for {
		for p.generation == last && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		last = p.generation
		job := p.job
		p.mu.Unlock()

		job(index)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

// run executes job on every worker and blocks until all have returned.
func (p *pool) run(job func(worker int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.job = job
	p.pending = p.size
	p.generation++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.job = nil
}

// close stops the workers and waits for them to exit.
func (p *pool) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.done.Wait()
}
