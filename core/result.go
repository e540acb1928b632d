package core

import (
	"time"

	"github.com/go-openapi/strfmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"go.uber.org/zap"
)

type Counts map[string]uint32

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

func (c Counts) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal core.Counts")
		return ""
	}
	return string(st)
}

// Result is what a collaborator produced for one task. Which fields are
// populated depends on the task kind: generation fills Edges, angle
// precomputation fills Angles, data collection fills Counts and
// Expectation.
type Result struct {
	Counts      Counts    `json:"counts"`
	Expectation float64   `json:"expectation"`
	Angles      []float64 `json:"angles"`
	Edges       [][2]int  `json:"edges"`
	Message     string    `json:"message"`

	ExecutionTime time.Duration `json:"execution_time"`
}

func NewResult() *Result {
	return &Result{
		Counts: make(Counts),
		Angles: []float64{},
		Edges:  [][2]int{},
	}
}

func (r *Result) String() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.Result")
		return ""
	}
	return string(st)
}

// TaskResult is the persisted record of one executed task, keyed by the
// task's structural identity.
type TaskResult struct {
	TaskKey  string          `json:"task_key"`
	TaskKind string          `json:"task_kind"`
	Status   Status          `json:"-"`
	Result   *Result         `json:"result"`
	Created  strfmt.DateTime `json:"created"`
	Ended    strfmt.DateTime `json:"ended"`
}

func NewTaskResult(t Task) *TaskResult {
	return &TaskResult{
		TaskKey:  t.Key(),
		TaskKind: t.Kind(),
		Status:   PENDING,
		Result:   NewResult(),
		Created:  strfmt.DateTime(time.Now()),
	}
}

func (tr *TaskResult) Clone() *TaskResult {
	c := deepcopy.Copy(tr).(*TaskResult)
	c.Created = *tr.Created.DeepCopy()
	c.Ended = *tr.Ended.DeepCopy()
	return c
}

func (tr *TaskResult) String() string {
	st, err := jsonIter.Marshal(tr)
	if err != nil {
		zap.L().Error("Failed to marshal core.TaskResult")
		return ""
	}
	return string(st)
}
