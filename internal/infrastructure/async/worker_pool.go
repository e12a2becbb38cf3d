package async

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Tasks are best-effort side work (event logging, fan-out); nothing on the
// request path waits for one.
type Task func(ctx context.Context)

const taskTimeout = 2 * time.Second

type WorkerPool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func NewWorkerPool(parent context.Context, size int, log *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}

	ctx, cancel := context.WithCancel(parent)
	p := &WorkerPool{
		// Buffered so a burst of events does not stall the submitter.
		tasks:  make(chan Task, size*16),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.runTask(id, task)
		}
	}
}

func (p *WorkerPool) runTask(id int, task Task) {
	ctx, cancel := context.WithTimeout(p.ctx, taskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked",
				zap.Int("worker", id),
				zap.Any("panic", r),
			)
		}
	}()

	task(ctx)
}

func (p *WorkerPool) Submit(task Task) {
	select {
	case <-p.ctx.Done():
		return
	case p.tasks <- task:
	}
}

func (p *WorkerPool) Shutdown() {
	p.cancel()
	close(p.tasks)
	p.wg.Wait()
}
