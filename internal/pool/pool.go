package pool

import "sync"

// Pool is a fixed-size worker pool. Jobs queue on a buffered
// channel and run on whichever worker frees up first.
type Pool struct {
	workers int
	jobCh   chan func()
}

func New(workerCount int, jobChanSize int) *Pool {
	return &Pool{
		workers: workerCount,
		jobCh:   make(chan func(), jobChanSize),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		go func() {
			for job := range p.jobCh {
				job()
			}
		}()
	}
}

func (p *Pool) Add(f func()) {
	p.jobCh <- f
}

// RunAll queues every job and blocks until all of them have
// completed. Used for wait-for-all-settled batch groups.
func (p *Pool) RunAll(jobs []func()) {
	var wg sync.WaitGroup
	wg.Add(len(jobs))

	for _, job := range jobs {
		job := job
		p.jobCh <- func() {
			defer wg.Done()
			job()
		}
	}

	wg.Wait()
}
