package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/qopt-team/qaoa-engine/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const meterName = "qaoa-engine/executor"

type statusHistory map[string][]core.Status

// QueueExecutor drains a FIFO of task records with a bounded worker
// pool. A task whose key already has a stored result is skipped, so
// re-submitting a batch recomputes nothing.
type QueueExecutor struct {
	queue         *TaskQueue
	statusHistory statusHistory
	historyMu     sync.Mutex

	executedCounter metric.Int64Counter
	skippedCounter  metric.Int64Counter
	failedCounter   metric.Int64Counter
}

func (e *QueueExecutor) Setup(conf *core.Conf) error {
	e.queue = &TaskQueue{}
	if err := e.queue.Setup(conf); err != nil {
		return err
	}
	e.statusHistory = make(statusHistory)

	meter := otel.Meter(meterName)
	var err error
	e.executedCounter, err = meter.Int64Counter("tasks.executed",
		metric.WithDescription("tasks executed to completion"))
	if err != nil {
		return err
	}
	e.skippedCounter, err = meter.Int64Counter("tasks.skipped",
		metric.WithDescription("tasks skipped because a result already existed"))
	if err != nil {
		return err
	}
	e.failedCounter, err = meter.Int64Counter("tasks.failed",
		metric.WithDescription("tasks that returned an error"))
	if err != nil {
		return err
	}
	return nil
}

// batchState ties every queued task back to its ExecuteInQueue call.
// Batches share the queue, so a worker of one call may drain a task
// submitted by another; the batch pointer makes it run the submitting
// call's fn and report the failure to the submitting caller.
type batchState struct {
	fn core.TaskFunc
	wg sync.WaitGroup

	mu   sync.Mutex
	errs error
}

func (b *batchState) addErr(err error) {
	b.mu.Lock()
	b.errs = multierr.Append(b.errs, err)
	b.mu.Unlock()
}

func (b *batchState) err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errs
}

// ExecuteInQueue runs fn over every task with numWorkers workers and
// blocks until all submitted tasks resolve. Per-task failures are
// aggregated; a failed task never aborts the rest of the batch.
func (e *QueueExecutor) ExecuteInQueue(fn core.TaskFunc, tasks []core.Task, numWorkers int) error {
	if numWorkers < 1 {
		numWorkers = 1
	}
	var store core.ResultStore
	err := core.GetSystemComponents().Invoke(
		func(r core.ResultStore) error {
			store = r
			return nil
		})
	if err != nil {
		return err
	}

	b := &batchState{fn: fn}
	submitted := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		key := t.Key()
		if _, ok := submitted[key]; ok {
			zap.L().Debug(fmt.Sprintf("task(%s) already submitted in this batch", key))
			e.appendHistory(key, core.SKIPPED)
			continue
		}
		submitted[key] = struct{}{}
		e.appendHistory(key, core.PENDING)
		b.wg.Add(1)
		if err := e.queue.Enqueue(&taskInExecutor{task: t, batch: b}); err != nil {
			b.wg.Done()
			e.flushBatch(b)
			return err
		}
	}

	for w := 0; w < numWorkers; w++ {
		go func() {
			for {
				te, err := e.queue.Dequeue(false)
				if err != nil { // queue drained
					return
				}
				if perr := e.processTask(te.batch.fn, store, te.task); perr != nil {
					te.batch.addErr(perr)
				}
				te.batch.wg.Done()
			}
		}()
	}
	b.wg.Wait()
	return b.err()
}

// flushBatch removes a failed batch's queued tasks so they cannot wedge
// the queue or be run by a later batch. Other batches' tasks pass
// through untouched; re-enqueueing them always has room because each
// was just dequeued.
func (e *QueueExecutor) flushBatch(b *batchState) {
	n := e.queue.GetCurrentSize()
	for i := 0; i < n; i++ {
		te, err := e.queue.Dequeue(false)
		if err != nil {
			return
		}
		if te.batch != b {
			if err := e.queue.Enqueue(te); err != nil {
				zap.L().Error(fmt.Sprintf("failed to requeue %s while flushing. Reason:%s",
					te.task.Key(), err.Error()))
				te.batch.addErr(fmt.Errorf("task %s: lost while flushing an aborted batch", te.task.Key()))
				te.batch.wg.Done()
			}
			continue
		}
		zap.L().Debug(fmt.Sprintf("flushing unrun task(%s) of an aborted batch", te.task.Key()))
		e.appendHistory(te.task.Key(), core.FAILED)
		te.batch.wg.Done()
	}
}

func (e *QueueExecutor) processTask(fn core.TaskFunc, store core.ResultStore, t core.Task) error {
	key := t.Key()
	if store.Exists(key) {
		zap.L().Info(fmt.Sprintf("task(%s) already has a result. Skipping.", key))
		e.appendHistory(key, core.SKIPPED)
		e.skippedCounter.Add(context.Background(), 1)
		return nil
	}
	e.appendHistory(key, core.RUNNING)
	zap.L().Debug(fmt.Sprintf("processing task:%s", key))

	tr := core.NewTaskResult(t)
	start := time.Now()
	result, err := fn(t)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to process task(%s). Reason:%s", key, err.Error()))
		e.appendHistory(key, core.FAILED)
		e.failedCounter.Add(context.Background(), 1)
		return fmt.Errorf("task %s: %w", key, err)
	}
	tr.Status = core.SUCCEEDED
	tr.Result = result
	tr.Result.ExecutionTime = time.Since(start)
	tr.Ended = strfmt.DateTime(time.Now())
	if err := store.Save(tr); err != nil {
		zap.L().Error(fmt.Sprintf("failed to save result of task(%s). Reason:%s", key, err.Error()))
		e.appendHistory(key, core.FAILED)
		return fmt.Errorf("task %s: %w", key, err)
	}
	e.appendHistory(key, core.SUCCEEDED)
	e.executedCounter.Add(context.Background(), 1)
	zap.L().Debug(fmt.Sprintf("finished to process task(%s)", key))
	return nil
}

func (e *QueueExecutor) appendHistory(key string, st core.Status) {
	e.historyMu.Lock()
	defer e.historyMu.Unlock()
	e.statusHistory[key] = append(e.statusHistory[key], st)
}

// History returns the observed status transitions of one task key.
func (e *QueueExecutor) History(key string) []core.Status {
	e.historyMu.Lock()
	defer e.historyMu.Unlock()
	return e.statusHistory[key]
}

func (e *QueueExecutor) GetCurrentQueueSize() int {
	return e.queue.GetCurrentSize()
}

func (e *QueueExecutor) IsOverRefillThreshold() bool {
	return e.queue.IsOverRefillThreshold()
}

func (e *QueueExecutor) TearDown() {
	e.historyMu.Lock()
	defer e.historyMu.Unlock()
	e.statusHistory = make(statusHistory)
}
