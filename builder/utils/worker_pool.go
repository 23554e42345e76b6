package utils

import (
	"context"
	"runtime"
	"sync"
)

const (
	MaxWorkers       = 32
	WorkerBufferSize = 4
)

// WorkerPool runs handler over submitted tasks on a bounded set of goroutines.
type WorkerPool[T any] struct {
	workers   int
	ctx       context.Context
	wg        sync.WaitGroup
	taskQueue chan T
	handler   func(T)
}

func NewWorkerPool[T any](ctx context.Context, workers int, handler func(T)) *WorkerPool[T] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	return &WorkerPool[T]{
		workers:   workers,
		ctx:       ctx,
		taskQueue: make(chan T, workers*WorkerBufferSize),
		handler:   handler,
	}
}

// Workers reports the number of goroutines the pool runs.
func (p *WorkerPool[T]) Workers() int {
	return p.workers
}

func (p *WorkerPool[T]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *WorkerPool[T]) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.taskQueue:
			if !ok {
				return
			}
			p.handler(task)
		}
	}
}

// Submit blocks until the task is queued or the pool's context is done.
// It reports whether the task was queued.
func (p *WorkerPool[T]) Submit(task T) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.taskQueue <- task:
		return true
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (p *WorkerPool[T]) Stop() {
	close(p.taskQueue)
	p.wg.Wait()
}

// ForEach runs fn over every element of items on a pool of the given size
// and returns once all of them have been handled or ctx is done.
func ForEach[T any](ctx context.Context, workers int, items []T, fn func(int, T)) error {
	type job struct {
		i    int
		item T
	}

	pool := NewWorkerPool(ctx, workers, func(j job) {
		fn(j.i, j.item)
	})
	pool.Start()
	for i, item := range items {
		if !pool.Submit(job{i: i, item: item}) {
			break
		}
	}
	pool.Stop()
	return ctx.Err()
}
