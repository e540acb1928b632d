package runner

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

// taskSeed derives a deterministic seed from a task key so that
// re-generating the same task always produces the same content.
func taskSeed(key string) int64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return int64(h.Sum64())
}

// DummyProblemGenerator produces deterministic pseudo problem instances.
// It stands in for the real graph generation backend; the edge content
// is a placeholder, but each task key always maps to the same content.
type DummyProblemGenerator struct{}

func (d *DummyProblemGenerator) Setup(conf *core.Conf) error {
	zap.L().Debug("setting up dummy problem generator")
	return nil
}

func (d *DummyProblemGenerator) Generate(t core.GenerationTask) (*core.Result, error) {
	n := t.Qubits()
	if n < 2 {
		return nil, fmt.Errorf("cannot generate a problem on %d qubits", n)
	}
	zap.L().Debug(fmt.Sprintf("[Dummy] generating %s instance/key:%s", t.Kind(), t.Key()))

	r := core.NewResult()
	r.Edges = problemEdges(t)
	r.Message = "dummy generation result"
	return r, nil
}

func problemEdges(t core.GenerationTask) [][2]int {
	n := t.Qubits()
	rng := rand.New(rand.NewSource(taskSeed(t.Key())))
	var edges [][2]int
	switch t.Kind() {
	case core.SK_PROBLEM:
		// fully connected
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				edges = append(edges, [2]int{i, j})
			}
		}
	case core.THREE_REGULAR_PROBLEM:
		// a ring plus deterministic chords approximates degree 3
		for i := 0; i < n; i++ {
			edges = append(edges, [2]int{i, (i + 1) % n})
		}
		for i := 0; i < n/2; i++ {
			edges = append(edges, [2]int{i, i + n/2})
		}
	default:
		// sparse grid-like connectivity
		for i := 0; i < n-1; i++ {
			if rng.Intn(4) > 0 {
				edges = append(edges, [2]int{i, i + 1})
			}
		}
	}
	return edges
}
