package generator

import (
	"fmt"

	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

// IntRange enumerates start, start+step, ... below stop.
func IntRange(start, stop, step int) []int {
	if step <= 0 {
		return nil
	}
	var out []int
	for i := start; i < stop; i += step {
		out = append(out, i)
	}
	return out
}

// HardwareGridProblemTasks enumerates the full cross product of instance
// indices and qubit counts for problems derived from a device topology.
func HardwareGridProblemTasks(datasetID, deviceName string, instances, qubitCounts []int) []core.GenerationTask {
	tasks := make([]core.GenerationTask, 0, len(instances)*len(qubitCounts))
	for _, i := range instances {
		for _, nq := range qubitCounts {
			tasks = append(tasks, core.HardwareGridProblemTask{
				DatasetID:  datasetID,
				DeviceName: deviceName,
				InstanceI:  i,
				NQubits:    nq,
			})
		}
	}
	return tasks
}

// SKProblemTasks enumerates fully-connected problem instances.
func SKProblemTasks(datasetID string, instances, qubitCounts []int) []core.GenerationTask {
	tasks := make([]core.GenerationTask, 0, len(instances)*len(qubitCounts))
	for _, i := range instances {
		for _, nq := range qubitCounts {
			tasks = append(tasks, core.SKProblemTask{
				DatasetID: datasetID,
				InstanceI: i,
				NQubits:   nq,
			})
		}
	}
	return tasks
}

// ThreeRegularProblemTasks enumerates 3-regular problem instances,
// silently skipping any qubit count where a 3-regular graph cannot exist
// (odd degree sum).
func ThreeRegularProblemTasks(datasetID string, instances, qubitCounts []int) []core.GenerationTask {
	var tasks []core.GenerationTask
	for _, i := range instances {
		for _, nq := range qubitCounts {
			t := core.ThreeRegularProblemTask{
				DatasetID: datasetID,
				InstanceI: i,
				NQubits:   nq,
			}
			if !t.Feasible() {
				zap.L().Debug(fmt.Sprintf("skipping infeasible 3-regular task/nq:%d", nq))
				continue
			}
			tasks = append(tasks, t)
		}
	}
	return tasks
}
