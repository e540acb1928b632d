package core

import (
	"fmt"
)

const (
	HARDWARE_GRID_PROBLEM = "hardware-grid-problem"
	SK_PROBLEM            = "sk-problem"
	THREE_REGULAR_PROBLEM = "3-regular-problem"
	ANGLE_PRECOMPUTATION  = "angle-precomputation"
	DATA_COLLECTION       = "data-collection"
)

// Task is one immutable unit of work in the experiment pipeline.
// Identity is structural: two tasks with the same field values are the
// same logical unit of work, and Key() renders that identity into the
// partition key under which the executor stores and deduplicates results.
type Task interface {
	Kind() string
	Key() string
}

// GenerationTask describes one problem instance to generate.
type GenerationTask interface {
	Task
	Dataset() string
	Instance() int
	Qubits() int
}

type HardwareGridProblemTask struct {
	DatasetID  string
	DeviceName string
	InstanceI  int
	NQubits    int
}

func (t HardwareGridProblemTask) Kind() string  { return HARDWARE_GRID_PROBLEM }
func (t HardwareGridProblemTask) Dataset() string { return t.DatasetID }
func (t HardwareGridProblemTask) Instance() int { return t.InstanceI }
func (t HardwareGridProblemTask) Qubits() int   { return t.NQubits }

func (t HardwareGridProblemTask) Key() string {
	return fmt.Sprintf("%s/%s/%s/i-%d/nq-%d",
		t.DatasetID, HARDWARE_GRID_PROBLEM, t.DeviceName, t.InstanceI, t.NQubits)
}

type SKProblemTask struct {
	DatasetID string
	InstanceI int
	NQubits   int
}

func (t SKProblemTask) Kind() string    { return SK_PROBLEM }
func (t SKProblemTask) Dataset() string { return t.DatasetID }
func (t SKProblemTask) Instance() int   { return t.InstanceI }
func (t SKProblemTask) Qubits() int     { return t.NQubits }

func (t SKProblemTask) Key() string {
	return fmt.Sprintf("%s/%s/i-%d/nq-%d",
		t.DatasetID, SK_PROBLEM, t.InstanceI, t.NQubits)
}

type ThreeRegularProblemTask struct {
	DatasetID string
	InstanceI int
	NQubits   int
}

func (t ThreeRegularProblemTask) Kind() string    { return THREE_REGULAR_PROBLEM }
func (t ThreeRegularProblemTask) Dataset() string { return t.DatasetID }
func (t ThreeRegularProblemTask) Instance() int   { return t.InstanceI }
func (t ThreeRegularProblemTask) Qubits() int     { return t.NQubits }

func (t ThreeRegularProblemTask) Key() string {
	return fmt.Sprintf("%s/%s/i-%d/nq-%d",
		t.DatasetID, THREE_REGULAR_PROBLEM, t.InstanceI, t.NQubits)
}

// Feasible reports whether a 3-regular graph on NQubits nodes can exist.
// The node-degree sum 3*n must be even.
func (t ThreeRegularProblemTask) Feasible() bool {
	return (3*t.NQubits)%2 == 0
}

// PrecomputationTask references a generation task by value and a QAOA
// depth p. The optimized angles (2p reals) are computed exactly once per
// unique (generation, p) pair.
type PrecomputationTask struct {
	Generation GenerationTask
	P          int
}

func (t PrecomputationTask) Kind() string { return ANGLE_PRECOMPUTATION }

func (t PrecomputationTask) Key() string {
	return fmt.Sprintf("%s/%s/p-%d", t.Generation.Key(), ANGLE_PRECOMPUTATION, t.P)
}

// AnglePoint is one explicit (gamma, beta) coordinate of the parameter
// landscape.
type AnglePoint struct {
	Gamma float64
	Beta  float64
}

type LinePlacement int

const (
	LINE_PLACEMENT_NONE LinePlacement = iota
	LINE_PLACEMENT_MIXED
	LINE_PLACEMENT_LARGEST_AREA
)

func (l LinePlacement) String() string {
	switch l {
	case LINE_PLACEMENT_NONE:
		return "none"
	case LINE_PLACEMENT_MIXED:
		return "mixed"
	case LINE_PLACEMENT_LARGEST_AREA:
		return "largest_area"
	default:
		return "unknown"
	}
}

func ToLinePlacement(s string) (LinePlacement, error) {
	switch s {
	case "none", "":
		return LINE_PLACEMENT_NONE, nil
	case "mixed":
		return LINE_PLACEMENT_MIXED, nil
	case "largest_area":
		return LINE_PLACEMENT_LARGEST_AREA, nil
	default:
		return 0, fmt.Errorf("unknown line placement: %s", s)
	}
}

// DataCollectionTask describes one device execution. Source is either a
// PrecomputationTask (collection at precomputed angles) or a
// GenerationTask directly (landscape sweeps at an explicit angle point).
type DataCollectionTask struct {
	DatasetID  string
	Source     Task
	DeviceName string
	NShots     int

	// Set for landscape grid points only.
	ExplicitAngles bool
	Angles         AnglePoint

	LinePlacement LinePlacement
	Epoch         string

	Structured bool
	Echoed     bool
}

func (t DataCollectionTask) Kind() string { return DATA_COLLECTION }

func (t DataCollectionTask) Key() string {
	k := fmt.Sprintf("%s/%s/%s/%s/shots-%s",
		t.DatasetID, DATA_COLLECTION, t.DeviceName, t.Source.Key(), abbrevShots(t.NShots))
	if t.Epoch != "" {
		k = fmt.Sprintf("%s/epoch-%s", k, t.Epoch)
	}
	if t.ExplicitAngles {
		k = fmt.Sprintf("%s/g-%.6f_b-%.6f", k, t.Angles.Gamma, t.Angles.Beta)
	}
	return k
}

// shorter shots component of a key, e.g. 50_000 -> "50k"
func abbrevShots(nShots int) string {
	if nShots != 0 && nShots%1000 == 0 {
		return fmt.Sprintf("%dk", nShots/1000)
	}
	return fmt.Sprintf("%d", nShots)
}
