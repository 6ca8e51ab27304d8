package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var ErrWorkerStopped = errors.New("analysis worker stopped")

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// Submit queues an analysis and waits for its outcome or for ctx.
	Submit(ctx context.Context, filePath string) (*AnalysisOutcome, error)
}

type job struct {
	ctx      context.Context
	filePath string
	reply    chan jobResult
}

type jobResult struct {
	outcome *AnalysisOutcome
	err     error
}

type worker struct {
	analyzer    ResumeAnalyzer
	jobQueue    chan job
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewWorker(analyzer ResumeAnalyzer, concurrency int) Worker {
	if concurrency < 1 {
		concurrency = 1
	}

	return &worker{
		analyzer:    analyzer,
		jobQueue:    make(chan job, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(i + 1)
	}

	go func() {
		select {
		case <-ctx.Done():
			w.Stop()
		case <-w.stopChan:
		}
	}()

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Worker stopped")
	})
}

// Submit implements Worker.
func (w *worker) Submit(ctx context.Context, filePath string) (*AnalysisOutcome, error) {
	j := job{ctx: ctx, filePath: filePath, reply: make(chan jobResult, 1)}

	select {
	case w.jobQueue <- j:
	case <-w.stopChan:
		return nil, ErrWorkerStopped
	case <-ctx.Done():
		return nil, fmt.Errorf("analysis not queued: %w", ctx.Err())
	}

	select {
	case res := <-j.reply:
		return res.outcome, res.err
	case <-w.stopChan:
		return nil, ErrWorkerStopped
	case <-ctx.Done():
		return nil, fmt.Errorf("analysis abandoned: %w", ctx.Err())
	}
}

func (w *worker) processJobs(workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case j := <-w.jobQueue:
			j.reply <- w.run(j, workerID)
		}
	}
}

func (w *worker) run(j job, workerID int) (res jobResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Worker #%d panicked on %s: %v\n", workerID, j.filePath, r)
			res = jobResult{err: fmt.Errorf("analysis panicked: %v", r)}
		}
	}()

	if err := j.ctx.Err(); err != nil {
		return jobResult{err: err}
	}

	outcome, err := w.analyzer.Analyze(j.ctx, j.filePath)
	if err != nil {
		log.Printf("❌ Worker #%d failed to analyze %s: %v\n", workerID, j.filePath, err)
	}
	return jobResult{outcome: outcome, err: err}
}
