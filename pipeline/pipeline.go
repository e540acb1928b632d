package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qopt-team/qaoa-engine/core"
	"github.com/qopt-team/qaoa-engine/device"
	"github.com/qopt-team/qaoa-engine/generator"
	"github.com/qopt-team/qaoa-engine/landscape"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Params describes one full dataset run: which problem families to
// enumerate, at which depths to precompute angles, and how to collect.
type Params struct {
	DatasetID  string
	DeviceName string

	Instances          []int
	HardwareGridQubits []int
	SKQubits           []int
	ThreeRegularQubits []int

	Depths []int
	NShots int

	NumWorkers int
}

func DefaultParams(datasetID string) Params {
	return Params{
		DatasetID:          datasetID,
		DeviceName:         "rainbow-23",
		Instances:          generator.IntRange(0, 10, 1),
		HardwareGridQubits: generator.IntRange(2, 9, 2),
		SKQubits:           generator.IntRange(3, 18, 1),
		ThreeRegularQubits: generator.IntRange(3, 23, 1),
		Depths:             generator.IntRange(1, 6, 1),
		NShots:             50_000,
		NumWorkers:         2,
	}
}

// NewDatasetID makes a fresh dataset partition key: the current time at
// minute precision, with a uuid suffix against collisions.
func NewDatasetID() string {
	return fmt.Sprintf("%s-%s",
		time.Now().Format("2006-01-02T15:04"),
		uuid.NewString()[:8])
}

// generationFamilies enumerates the three problem families, dropping
// hardware-grid sizes the device cannot host.
func generationFamilies(p Params, reg *device.Registry) [][]core.GenerationTask {
	hg := generator.HardwareGridProblemTasks(p.DatasetID, p.DeviceName, p.Instances, p.HardwareGridQubits)
	supported := hg[:0]
	for _, t := range hg {
		if reg.SupportsQubits(p.DeviceName, t.Qubits()) {
			supported = append(supported, t)
		} else {
			zap.L().Debug(fmt.Sprintf("device %s cannot host %d qubits. Skipping %s",
				p.DeviceName, t.Qubits(), t.Key()))
		}
	}
	sk := generator.SKProblemTasks(p.DatasetID, p.Instances, p.SKQubits)
	tr := generator.ThreeRegularProblemTasks(p.DatasetID, p.Instances, p.ThreeRegularQubits)
	return [][]core.GenerationTask{supported, sk, tr}
}

// GenerationTasks is the interleaved submission order of all families:
// round-robin, so a batch draws evenly from each family.
func GenerationTasks(p Params, reg *device.Registry) []core.GenerationTask {
	return generator.Interleave(generationFamilies(p, reg)...)
}

func generateFunc(g core.ProblemGenerator) core.TaskFunc {
	return func(t core.Task) (*core.Result, error) {
		gt, ok := t.(core.GenerationTask)
		if !ok {
			return nil, fmt.Errorf("not a generation task: %s", t.Key())
		}
		return g.Generate(gt)
	}
}

func precomputeFunc(p core.AnglePrecomputer) core.TaskFunc {
	return func(t core.Task) (*core.Result, error) {
		pt, ok := t.(core.PrecomputationTask)
		if !ok {
			return nil, fmt.Errorf("not a precomputation task: %s", t.Key())
		}
		return p.Precompute(pt)
	}
}

func collectFunc(c core.DataCollector) core.TaskFunc {
	return func(t core.Task) (*core.Result, error) {
		dt, ok := t.(core.DataCollectionTask)
		if !ok {
			return nil, fmt.Errorf("not a data collection task: %s", t.Key())
		}
		return c.Collect(dt)
	}
}

type components struct {
	ex  core.Executor
	gen core.ProblemGenerator
	pre core.AnglePrecomputer
	col core.DataCollector
}

func resolve() (*components, error) {
	sc := core.GetSystemComponents()
	if sc == nil {
		return nil, fmt.Errorf("system components is not initialized")
	}
	cs := &components{}
	err := sc.Invoke(func(e core.Executor, g core.ProblemGenerator, a core.AnglePrecomputer, c core.DataCollector) {
		cs.ex, cs.gen, cs.pre, cs.col = e, g, a, c
	})
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// RunGeneration enumerates every problem family and generates the
// problem instances, the three families running concurrently.
func RunGeneration(p Params, reg *device.Registry) error {
	cs, err := resolve()
	if err != nil {
		return err
	}
	families := generationFamilies(p, reg)
	var eg errgroup.Group
	for _, family := range families {
		tasks := generator.AsTasks(family)
		eg.Go(func() error {
			return cs.ex.ExecuteInQueue(generateFunc(cs.gen), tasks, p.NumWorkers)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	zap.L().Info("finished problem generation stage")
	return nil
}

// RunPrecomputation precomputes optimal angles for every generated
// instance at every requested depth.
func RunPrecomputation(p Params, reg *device.Registry) error {
	cs, err := resolve()
	if err != nil {
		return err
	}
	pres := generator.PrecomputationTasks(GenerationTasks(p, reg), p.Depths)
	if err := cs.ex.ExecuteInQueue(precomputeFunc(cs.pre), generator.AsTasks(pres), p.NumWorkers); err != nil {
		return err
	}
	zap.L().Info("finished angle precomputation stage")
	return nil
}

// RunCollection collects device data at the precomputed angles.
func RunCollection(p Params, reg *device.Registry) error {
	cs, err := resolve()
	if err != nil {
		return err
	}
	pres := generator.PrecomputationTasks(GenerationTasks(p, reg), p.Depths)
	lp := reg.DefaultLinePlacement(p.DeviceName)
	dcs := generator.DataCollectionTasks(pres, p.DatasetID, p.DeviceName, p.NShots, lp)
	if err := cs.ex.ExecuteInQueue(collectFunc(cs.col), generator.AsTasks(dcs), p.NumWorkers); err != nil {
		return err
	}
	zap.L().Info("finished data collection stage")
	return nil
}

// Run drives one dataset end to end: generation, angle precomputation
// at every depth, then data collection. Each stage completes before the
// next starts.
func Run(p Params, reg *device.Registry) error {
	zap.L().Info(fmt.Sprintf("starting dataset run/dataset:%s", p.DatasetID))
	if err := RunGeneration(p, reg); err != nil {
		return err
	}
	if err := RunPrecomputation(p, reg); err != nil {
		return err
	}
	if err := RunCollection(p, reg); err != nil {
		return err
	}
	zap.L().Info(fmt.Sprintf("finished dataset run/dataset:%s", p.DatasetID))
	return nil
}

// LandscapeParams describes a (gamma, beta) grid sweep over one
// generation task, repeated per epoch.
type LandscapeParams struct {
	DatasetID  string
	DeviceName string
	GammaRes   int
	BetaRes    int
	Epochs     []string
	NShots     int
	NumWorkers int
}

// RunLandscape sweeps the full angle grid for one problem instance,
// one epoch after another.
func RunLandscape(gen core.GenerationTask, p LandscapeParams) error {
	sc := core.GetSystemComponents()
	if sc == nil {
		return fmt.Errorf("system components is not initialized")
	}
	var ex core.Executor
	var col core.DataCollector
	if err := sc.Invoke(func(e core.Executor, c core.DataCollector) {
		ex, col = e, c
	}); err != nil {
		return err
	}

	spec := landscape.NewGridSpec(p.GammaRes, p.BetaRes)
	epochs := p.Epochs
	if len(epochs) == 0 {
		epochs = []string{"1"}
	}
	for _, epoch := range epochs {
		tasks := landscape.CollectionTasksOnGrid(gen, p.DatasetID, spec, p.DeviceName, epoch, p.NShots)
		zap.L().Info(fmt.Sprintf("collecting landscape grid/dataset:%s/epoch:%s/points:%d",
			p.DatasetID, epoch, len(tasks)))
		if err := ex.ExecuteInQueue(collectFunc(col), generator.AsTasks(tasks), p.NumWorkers); err != nil {
			return err
		}
	}
	return nil
}
