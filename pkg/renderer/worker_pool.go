package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/sphere-pathtracer/pkg/framebuffer"
)

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Band   *Band
	TaskID int // For deterministic ordering
}

// BandResult contains the result from rendering a band
type BandResult struct {
	TaskID int
	Stats  BandStats
	Error  error
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual band rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	buffer      *framebuffer.Buffer // Shared output; bands never overlap
	taskQueue   chan BandTask
	resultQueue chan BandResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 selects runtime.NumCPU(). The queues hold numTasks entries so
// submitting never blocks.
func NewWorkerPool(raytracer *Raytracer, buffer *framebuffer.Buffer, numTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, numTasks),
		resultQueue: make(chan BandResult, numTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			buffer:      buffer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop closes the task queue and waits for every worker to drain it
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each band writes only its own rows, so sharing the buffer is safe
		stats, err := w.raytracer.renderBand(ctx, task.Band, w.buffer)
		w.resultQueue <- BandResult{
			TaskID: task.TaskID,
			Stats:  stats,
			Error:  err,
		}
	}
}
