package core

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"
)

var systemComponents *SystemComponents

type ResultChan chan *TaskResult

type Channels struct {
	ResultChan
	// when more channel is needed, add here
}

func NewChannels() *Channels {
	return &Channels{
		ResultChan: make(ResultChan),
	}
}

func (c *Channels) Close() {
	close(c.ResultChan)
}

func (c *Channels) Check() error {
	if c.ResultChan == nil {
		return fmt.Errorf("ResultChan is nil")
	}
	return nil
}

// ProblemGenerator generates one problem instance per generation task and
// records it in the result store. The graph content is the generator's
// business; the set of tasks requested is fully determined upstream.
type ProblemGenerator interface {
	Setup(*Conf) error
	Generate(GenerationTask) (*Result, error)
}

// AnglePrecomputer classically optimizes the 2p angle parameters of one
// (generation, p) pair.
type AnglePrecomputer interface {
	Setup(*Conf) error
	Precompute(PrecomputationTask) (*Result, error)
}

// DataCollector executes one data collection task on a device or
// simulator backend.
type DataCollector interface {
	Setup(*Conf) error
	Collect(DataCollectionTask) (*Result, error)
	TearDown()
}

// ResultStore persists results keyed by structural task identity.
// Exists() is the dedup contract: the executor never recomputes a key
// that already has a stored result.
type ResultStore interface {
	Setup(ResultChan, *Conf) error
	Exists(key string) bool
	Save(*TaskResult) error
	Get(key string) (*TaskResult, error)
	Delete(key string) error
	Keys() []string
}

type Executor interface {
	Setup(*Conf) error
	ExecuteInQueue(fn TaskFunc, tasks []Task, numWorkers int) error
	GetCurrentQueueSize() int
	IsOverRefillThreshold() bool
	TearDown()
}

// TaskFunc runs one task and returns its result.
type TaskFunc func(Task) (*Result, error)

type SystemComponents struct {
	*dig.Container
	*Channels
}

func NewSystemComponents(con *dig.Container) *SystemComponents {
	return &SystemComponents{
		con,
		NewChannels(),
	}
}

func GetSystemComponents() *SystemComponents {
	return systemComponents
}

func (s *SystemComponents) Setup(conf *Conf) error {
	// components resolve each other through the global accessor, so
	// publish before any component Setup runs
	systemComponents = s
	resultChan := s.ResultChan

	zap.L().Debug("Setting up result store")
	var err error
	err = s.Invoke(
		func(r ResultStore) error {
			return r.Setup(resultChan, conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up problem generator")
	err = s.Invoke(
		func(g ProblemGenerator) error {
			return g.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up angle precomputer")
	err = s.Invoke(
		func(p AnglePrecomputer) error {
			return p.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up data collector")
	err = s.Invoke(
		func(c DataCollector) error {
			return c.Setup(conf)
		})
	if err != nil {
		return err
	}

	zap.L().Debug("Setting up executor")
	err = s.Invoke(
		func(e Executor) error {
			return e.Setup(conf)
		})
	if err != nil {
		return err
	}
	return nil
}

func (s *SystemComponents) TearDown() {
	_ = s.Invoke(
		func(c DataCollector) {
			c.TearDown()
		})
	_ = s.Invoke(
		func(e Executor) {
			e.TearDown()
		})
	s.Channels.Close()
}

func (s *SystemComponents) GetCurrentQueueSize() int {
	size := 0
	_ = s.Invoke(
		func(e Executor) {
			size = e.GetCurrentQueueSize()
		})
	return size
}
