//go:build unit
// +build unit

package pipeline

import (
	"testing"

	"github.com/qopt-team/qaoa-engine/core"
	"github.com/qopt-team/qaoa-engine/device"
	"github.com/qopt-team/qaoa-engine/executor"
	"github.com/qopt-team/qaoa-engine/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
)

func setupComponents(t *testing.T) *core.SystemComponents {
	t.Helper()
	c := dig.New()
	c.Provide(func() core.ProblemGenerator { return &runner.DummyProblemGenerator{} })
	c.Provide(func() core.AnglePrecomputer { return &runner.DummyAnglePrecomputer{} })
	c.Provide(func() core.DataCollector { return &runner.DummyDataCollector{} })
	c.Provide(func() core.ResultStore { return &core.MemoryStore{} })
	c.Provide(func() core.Executor { return &executor.QueueExecutor{} })
	s := core.NewSystemComponents(c)
	require.NoError(t, s.Setup(&core.Conf{
		QueueMaxSize:         1000,
		QueueRefillThreshold: 10,
		NumWorkers:           2,
	}))
	t.Cleanup(s.TearDown)
	return s
}

func testRegistry(t *testing.T) *device.Registry {
	t.Helper()
	ds, err := device.LoadDeviceSettings("")
	require.NoError(t, err)
	reg, err := device.NewRegistry(ds)
	require.NoError(t, err)
	return reg
}

func smallParams() Params {
	return Params{
		DatasetID:          "test-run",
		DeviceName:         "rainbow-23",
		Instances:          []int{0, 1},
		HardwareGridQubits: []int{2, 4},
		SKQubits:           []int{3, 4},
		ThreeRegularQubits: []int{3, 4},
		Depths:             []int{1, 2},
		NShots:             1000,
		NumWorkers:         2,
	}
}

func TestGenerationTasksInterleavesFamilies(t *testing.T) {
	reg := testRegistry(t)
	gens := GenerationTasks(smallParams(), reg)
	// 4 hardware-grid + 4 sk + 2 feasible 3-regular
	assert.Equal(t, 10, len(gens))
	assert.Equal(t, core.HARDWARE_GRID_PROBLEM, gens[0].Kind())
	assert.Equal(t, core.SK_PROBLEM, gens[1].Kind())
	assert.Equal(t, core.THREE_REGULAR_PROBLEM, gens[2].Kind())
}

func TestRunFullDataset(t *testing.T) {
	s := setupComponents(t)
	reg := testRegistry(t)
	p := smallParams()

	require.NoError(t, Run(p, reg))

	var store core.ResultStore
	require.NoError(t, s.Invoke(func(r core.ResultStore) { store = r }))
	// 10 generations + 20 precomputations + 20 collections
	assert.Equal(t, 50, len(store.Keys()))

	// re-running the same dataset computes nothing new
	require.NoError(t, Run(p, reg))
	assert.Equal(t, 50, len(store.Keys()))
}

func TestRunLandscapeSweepsAllEpochs(t *testing.T) {
	s := setupComponents(t)

	gen := core.SKProblemTask{DatasetID: "test-run", InstanceI: 0, NQubits: 4}
	lp := LandscapeParams{
		DatasetID:  "test-scan",
		DeviceName: "weber-simulator",
		GammaRes:   3,
		BetaRes:    3,
		Epochs:     []string{"1", "2"},
		NShots:     100,
		NumWorkers: 2,
	}
	require.NoError(t, RunLandscape(gen, lp))

	var store core.ResultStore
	require.NoError(t, s.Invoke(func(r core.ResultStore) { store = r }))
	assert.Equal(t, 18, len(store.Keys()))
}

func TestNewDatasetID(t *testing.T) {
	a := NewDatasetID()
	b := NewDatasetID()
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "-")
}
