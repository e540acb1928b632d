package runner

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

// DummyAnglePrecomputer stands in for the classical angle optimizer.
// It returns 2p angles in [0, 2π), deterministic per task key.
type DummyAnglePrecomputer struct{}

func (d *DummyAnglePrecomputer) Setup(conf *core.Conf) error {
	zap.L().Debug("setting up dummy angle precomputer")
	return nil
}

func (d *DummyAnglePrecomputer) Precompute(t core.PrecomputationTask) (*core.Result, error) {
	if t.P < 1 {
		return nil, fmt.Errorf("depth p must be positive, got %d", t.P)
	}
	zap.L().Debug(fmt.Sprintf("[Dummy] precomputing angles/key:%s", t.Key()))

	rng := rand.New(rand.NewSource(taskSeed(t.Key())))
	angles := make([]float64, 2*t.P)
	for i := range angles {
		angles[i] = rng.Float64() * 2 * math.Pi
	}
	r := core.NewResult()
	r.Angles = angles
	r.Message = "dummy precomputation result"
	return r, nil
}
