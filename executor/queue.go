package executor

import (
	"fmt"

	conq "github.com/enriquebris/goconcurrentqueue"
	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

type taskInExecutor struct {
	task  core.Task
	batch *batchState
}

type fifo interface {
	Enqueue(*taskInExecutor) error
	Dequeue() (*taskInExecutor, error)
	DequeueOrWaitForNextElement() (*taskInExecutor, error)
	GetLen() int
}

type conqFIFO struct {
	conq.FIFO
}

func newConqFIFO() *conqFIFO {
	return &conqFIFO{
		FIFO: *conq.NewFIFO(),
	}
}

func (c *conqFIFO) Enqueue(te *taskInExecutor) error {
	return c.FIFO.Enqueue(te)
}

func (c *conqFIFO) Dequeue() (*taskInExecutor, error) {
	tmp, err := c.FIFO.Dequeue()
	if err != nil {
		return nil, err
	}
	return tmp.(*taskInExecutor), nil
}

func (c *conqFIFO) DequeueOrWaitForNextElement() (*taskInExecutor, error) {
	tmp, err := c.FIFO.DequeueOrWaitForNextElement()
	if err != nil {
		return nil, err
	}
	return tmp.(*taskInExecutor), nil
}

func (c *conqFIFO) GetLen() int {
	return c.FIFO.GetLen()
}

type TaskQueue struct {
	fifo            fifo
	maxSize         int
	refillThreshold int
}

func (q *TaskQueue) Setup(conf *core.Conf) error {
	q.refillThreshold = conf.QueueRefillThreshold
	q.maxSize = conf.QueueMaxSize
	q.fifo = newConqFIFO()
	return nil
}

// Enqueue errors instead of dropping when the queue is full. A dropped
// task would silently break the exactly-once contract of a batch.
func (q *TaskQueue) Enqueue(te *taskInExecutor) error {
	key := te.task.Key()
	if q.maxSize <= q.fifo.GetLen() {
		return fmt.Errorf("failed to put %s. task queue is full", key)
	}
	zap.L().Debug(fmt.Sprintf("Putting %s to task queue", key))
	if err := q.fifo.Enqueue(te); err != nil {
		zap.L().Error(fmt.Sprintf("Failed to put %s to task queue. Reason:%s", key, err))
		return err
	}
	return nil
}

// wait until the next element gets enqueued
func (q *TaskQueue) Dequeue(wait bool) (te *taskInExecutor, err error) {
	te = nil
	err = nil
	if wait {
		te, err = q.fifo.DequeueOrWaitForNextElement()
	} else {
		te, err = q.fifo.Dequeue()
	}
	if err != nil {
		zap.L().Debug("no task in TaskQueue.", zap.Error(err))
		return
	}
	zap.L().Debug(fmt.Sprintf("Dequeued task:%s", te.task.Key()))
	return
}

func (q *TaskQueue) IsOverRefillThreshold() bool {
	return q.refillThreshold <= q.fifo.GetLen()
}

func (q *TaskQueue) GetCurrentSize() int {
	return q.fifo.GetLen()
}
