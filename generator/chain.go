package generator

import (
	"github.com/qopt-team/qaoa-engine/core"
)

// PrecomputationTasks fans a set of generation tasks out over the given
// QAOA depths. Generation order is preserved; depths cycle fastest so a
// partial batch still covers every depth for the leading problems.
func PrecomputationTasks(gens []core.GenerationTask, ps []int) []core.PrecomputationTask {
	tasks := make([]core.PrecomputationTask, 0, len(gens)*len(ps))
	for _, g := range gens {
		for _, p := range ps {
			tasks = append(tasks, core.PrecomputationTask{
				Generation: g,
				P:          p,
			})
		}
	}
	return tasks
}

// DataCollectionTasks builds one collection task per precomputation
// task with the given execution parameters.
func DataCollectionTasks(pres []core.PrecomputationTask, datasetID, deviceName string, nShots int, lp core.LinePlacement) []core.DataCollectionTask {
	tasks := make([]core.DataCollectionTask, 0, len(pres))
	for _, p := range pres {
		tasks = append(tasks, core.DataCollectionTask{
			DatasetID:     datasetID,
			Source:        p,
			DeviceName:    deviceName,
			NShots:        nShots,
			LinePlacement: lp,
		})
	}
	return tasks
}

// AsTasks widens typed task slices for submission to the executor.
func AsTasks[T core.Task](in []T) []core.Task {
	out := make([]core.Task, len(in))
	for i, t := range in {
		out[i] = t
	}
	return out
}
