//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationTaskStructuralIdentity(t *testing.T) {
	a := HardwareGridProblemTask{DatasetID: "2020-03-19", DeviceName: "rainbow-23", InstanceI: 0, NQubits: 8}
	b := HardwareGridProblemTask{DatasetID: "2020-03-19", DeviceName: "rainbow-23", InstanceI: 0, NQubits: 8}
	assert.Equal(t, a, b)
	assert.True(t, a == b)

	c := b
	c.NQubits = 10
	assert.NotEqual(t, a, c)

	d := b
	d.DeviceName = "weber-simulator"
	assert.NotEqual(t, a, d)

	e := b
	e.InstanceI = 1
	assert.NotEqual(t, a, e)

	f := b
	f.DatasetID = "2020-03-20"
	assert.NotEqual(t, a, f)
}

func TestTaskKindsAreDistinguishedInIdentity(t *testing.T) {
	sk := SKProblemTask{DatasetID: "ds", InstanceI: 0, NQubits: 4}
	tr := ThreeRegularProblemTask{DatasetID: "ds", InstanceI: 0, NQubits: 4}
	assert.NotEqual(t, sk.Key(), tr.Key())

	var a, b Task = sk, tr
	assert.False(t, a == b)
}

func TestPrecomputationTaskIdentity(t *testing.T) {
	gen := SKProblemTask{DatasetID: "ds", InstanceI: 2, NQubits: 6}
	a := PrecomputationTask{Generation: gen, P: 3}
	b := PrecomputationTask{Generation: gen, P: 3}
	assert.True(t, a == b)
	assert.Equal(t, a.Key(), b.Key())

	c := PrecomputationTask{Generation: gen, P: 4}
	assert.False(t, a == c)
}

func TestDataCollectionTaskIdentity(t *testing.T) {
	gen := SKProblemTask{DatasetID: "ds", InstanceI: 0, NQubits: 4}
	pre := PrecomputationTask{Generation: gen, P: 3}
	a := DataCollectionTask{DatasetID: "ds-c", Source: pre, DeviceName: "rainbow-23", NShots: 50_000}
	b := DataCollectionTask{DatasetID: "ds-c", Source: pre, DeviceName: "rainbow-23", NShots: 50_000}
	assert.True(t, a == b)

	c := b
	c.NShots = 10_000
	assert.False(t, a == c)
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestTaskKeys(t *testing.T) {
	hg := HardwareGridProblemTask{DatasetID: "2020-03-19", DeviceName: "rainbow-23", InstanceI: 2, NQubits: 8}
	assert.Equal(t, "2020-03-19/hardware-grid-problem/rainbow-23/i-2/nq-8", hg.Key())

	sk := SKProblemTask{DatasetID: "2020-03-19", InstanceI: 0, NQubits: 4}
	assert.Equal(t, "2020-03-19/sk-problem/i-0/nq-4", sk.Key())

	pre := PrecomputationTask{Generation: sk, P: 5}
	assert.Equal(t, "2020-03-19/sk-problem/i-0/nq-4/angle-precomputation/p-5", pre.Key())

	dc := DataCollectionTask{
		DatasetID:  "2020-03-23",
		Source:     pre,
		DeviceName: "rainbow-23",
		NShots:     50_000,
	}
	assert.Equal(t,
		"2020-03-23/data-collection/rainbow-23/2020-03-19/sk-problem/i-0/nq-4/angle-precomputation/p-5/shots-50k",
		dc.Key())
}

func TestDataCollectionKeyWithGridPoint(t *testing.T) {
	gen := SKProblemTask{DatasetID: "ds", InstanceI: 0, NQubits: 4}
	dc := DataCollectionTask{
		DatasetID:      "ds-scan",
		Source:         gen,
		DeviceName:     "weber-simulator",
		NShots:         1234,
		ExplicitAngles: true,
		Angles:         AnglePoint{Gamma: 0.5, Beta: 1.25},
		Epoch:          "2",
	}
	assert.Equal(t,
		"ds-scan/data-collection/weber-simulator/ds/sk-problem/i-0/nq-4/shots-1234/epoch-2/g-0.500000_b-1.250000",
		dc.Key())
}

func TestAbbrevShots(t *testing.T) {
	assert.Equal(t, "50k", abbrevShots(50_000))
	assert.Equal(t, "1k", abbrevShots(1000))
	assert.Equal(t, "999", abbrevShots(999))
	assert.Equal(t, "0", abbrevShots(0))
}

func TestThreeRegularFeasibility(t *testing.T) {
	for _, n := range []int{3, 5, 7, 9} {
		task := ThreeRegularProblemTask{DatasetID: "ds", NQubits: n}
		assert.False(t, task.Feasible())
	}
	for _, n := range []int{4, 6, 8, 10} {
		task := ThreeRegularProblemTask{DatasetID: "ds", NQubits: n}
		assert.True(t, task.Feasible())
	}
}

func TestToStatus(t *testing.T) {
	for _, st := range []Status{PENDING, RUNNING, SUCCEEDED, FAILED, SKIPPED} {
		got, err := ToStatus(st.String())
		assert.Nil(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ToStatus("hogehoge")
	assert.Error(t, err)
}

func TestToLinePlacement(t *testing.T) {
	for _, lp := range []LinePlacement{LINE_PLACEMENT_NONE, LINE_PLACEMENT_MIXED, LINE_PLACEMENT_LARGEST_AREA} {
		got, err := ToLinePlacement(lp.String())
		assert.Nil(t, err)
		assert.Equal(t, lp, got)
	}
	_, err := ToLinePlacement("diagonal")
	assert.Error(t, err)
}
