package landscape

import (
	"math"

	"github.com/qopt-team/qaoa-engine/core"
)

// Default parameter ranges of the p=1 landscape, [0, 2π) on both axes.
const (
	DefaultGammaMin = 0.0
	DefaultGammaMax = 2 * math.Pi
	DefaultBetaMin  = 0.0
	DefaultBetaMax  = 2 * math.Pi
)

type GridSpec struct {
	GammaRes int
	BetaRes  int

	GammaMin float64
	GammaMax float64
	BetaMin  float64
	BetaMax  float64
}

func NewGridSpec(gammaRes, betaRes int) GridSpec {
	return GridSpec{
		GammaRes: gammaRes,
		BetaRes:  betaRes,
		GammaMin: DefaultGammaMin,
		GammaMax: DefaultGammaMax,
		BetaMin:  DefaultBetaMin,
		BetaMax:  DefaultBetaMax,
	}
}

// Points enumerates the grid deterministically, gamma-major. Both axes
// sample res evenly-spaced points over the half-open range, so the same
// spec always yields the identical coordinate set.
func (g GridSpec) Points() []core.AnglePoint {
	points := make([]core.AnglePoint, 0, g.GammaRes*g.BetaRes)
	gammaStep := (g.GammaMax - g.GammaMin) / float64(g.GammaRes)
	betaStep := (g.BetaMax - g.BetaMin) / float64(g.BetaRes)
	for gi := 0; gi < g.GammaRes; gi++ {
		for bi := 0; bi < g.BetaRes; bi++ {
			points = append(points, core.AnglePoint{
				Gamma: g.GammaMin + float64(gi)*gammaStep,
				Beta:  g.BetaMin + float64(bi)*betaStep,
			})
		}
	}
	return points
}

// CollectionTasksOnGrid builds one data collection task per grid point
// for a single generation task: GammaRes × BetaRes tasks total.
func CollectionTasksOnGrid(gen core.GenerationTask, datasetID string, spec GridSpec, deviceName, epoch string, nShots int) []core.DataCollectionTask {
	points := spec.Points()
	tasks := make([]core.DataCollectionTask, 0, len(points))
	for _, pt := range points {
		tasks = append(tasks, core.DataCollectionTask{
			DatasetID:      datasetID,
			Source:         gen,
			DeviceName:     deviceName,
			NShots:         nShots,
			ExplicitAngles: true,
			Angles:         pt,
			Epoch:          epoch,
		})
	}
	return tasks
}
