package core

import (
	"go.uber.org/dig"
)

const MockMaxQubits int = 10
const MockMaxShots int = 10000

type UnimplementedProblemGenerator struct{}

func (u *UnimplementedProblemGenerator) Setup(*Conf) error {
	return nil
}

func (u *UnimplementedProblemGenerator) Generate(GenerationTask) (*Result, error) {
	return NewResult(), nil
}

type UnimplementedAnglePrecomputer struct{}

func (u *UnimplementedAnglePrecomputer) Setup(*Conf) error {
	return nil
}

func (u *UnimplementedAnglePrecomputer) Precompute(t PrecomputationTask) (*Result, error) {
	r := NewResult()
	r.Angles = make([]float64, 2*t.P)
	return r, nil
}

type UnimplementedDataCollector struct{}

func (u *UnimplementedDataCollector) Setup(*Conf) error {
	return nil
}

func (u *UnimplementedDataCollector) Collect(DataCollectionTask) (*Result, error) {
	return NewResult(), nil
}

func (u *UnimplementedDataCollector) TearDown() {}

type UnimplementedExecutor struct{}

func (u *UnimplementedExecutor) Setup(*Conf) error { return nil }

func (u *UnimplementedExecutor) ExecuteInQueue(fn TaskFunc, tasks []Task, numWorkers int) error {
	for _, t := range tasks {
		if _, err := fn(t); err != nil {
			return err
		}
	}
	return nil
}

func (u *UnimplementedExecutor) GetCurrentQueueSize() int    { return 0 }
func (u *UnimplementedExecutor) IsOverRefillThreshold() bool { return false }
func (u *UnimplementedExecutor) TearDown()                   {}

func SCWithUnimplementedContainer() *SystemComponents {
	c := dig.New()
	c.Provide(func() ProblemGenerator { return &UnimplementedProblemGenerator{} })
	c.Provide(func() AnglePrecomputer { return &UnimplementedAnglePrecomputer{} })
	c.Provide(func() DataCollector { return &UnimplementedDataCollector{} })
	c.Provide(func() ResultStore { return &MemoryStore{} })
	c.Provide(func() Executor { return &UnimplementedExecutor{} })
	return NewSystemComponents(c)
}
