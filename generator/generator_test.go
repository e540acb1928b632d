//go:build unit
// +build unit

package generator

import (
	"testing"

	"github.com/qopt-team/qaoa-engine/core"
	"github.com/stretchr/testify/assert"
)

func TestIntRange(t *testing.T) {
	assert.Equal(t, []int{2, 4, 6, 8}, IntRange(2, 9, 2))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, IntRange(0, 5, 1))
	assert.Nil(t, IntRange(0, 5, 0))
	assert.Nil(t, IntRange(5, 5, 1))
}

func TestHardwareGridProblemTasksCrossProduct(t *testing.T) {
	tasks := HardwareGridProblemTasks("2020-03-19", "rainbow-23", IntRange(0, 5, 1), IntRange(2, 9, 2))
	assert.Equal(t, 20, len(tasks))

	seen := make(map[string]struct{})
	for _, task := range tasks {
		seen[task.Key()] = struct{}{}
	}
	assert.Equal(t, 20, len(seen))
}

func TestThreeRegularProblemTasksSkipInfeasible(t *testing.T) {
	tasks := ThreeRegularProblemTasks("2020-03-19", IntRange(0, 3, 1), IntRange(3, 9, 1))
	// 3*n odd for n in {3,5,7}; only n in {4,6,8} survive.
	assert.Equal(t, 9, len(tasks))
	for _, task := range tasks {
		assert.Equal(t, 0, (3*task.Qubits())%2)
	}
}

func TestSKProblemTasksPure(t *testing.T) {
	a := SKProblemTasks("2020-03-19", IntRange(0, 2, 1), IntRange(3, 6, 1))
	b := SKProblemTasks("2020-03-19", IntRange(0, 2, 1), IntRange(3, 6, 1))
	assert.Equal(t, a, b)
}

func TestInterleave(t *testing.T) {
	one := []string{"a0", "a1", "a2", "a3", "a4"}
	two := []string{"b0", "b1", "b2"}
	three := []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6"}

	got := Interleave(one, two, three)
	assert.Equal(t, 15, len(got))
	assert.Equal(t,
		[]string{
			"a0", "b0", "c0",
			"a1", "b1", "c1",
			"a2", "b2", "c2",
			"a3", "c3",
			"a4", "c4",
			"c5",
			"c6",
		},
		got)
}

func TestInterleaveSkipsExhaustedSources(t *testing.T) {
	got := Interleave([]int{1, 2}, []int{}, []int{10, 20, 30})
	assert.Equal(t, []int{1, 10, 2, 20, 30}, got)
}

func TestInterleaveEmpty(t *testing.T) {
	assert.Equal(t, 0, len(Interleave[int]()))
	assert.Equal(t, 0, len(Interleave([]int{}, []int{})))
}

func TestPrecomputationTasksFanOut(t *testing.T) {
	gens := Interleave(
		SKProblemTasks("2020-03-19", IntRange(0, 2, 1), []int{4}),
		ThreeRegularProblemTasks("2020-03-19", IntRange(0, 2, 1), []int{4}),
	)
	ps := []int{1, 2, 3, 4, 5}
	pres := PrecomputationTasks(gens, ps)
	assert.Equal(t, 20, len(pres))
	assert.Equal(t, 1, pres[0].P)
	assert.Equal(t, 5, pres[4].P)
	assert.Equal(t, pres[0].Generation, pres[4].Generation)
}

func TestDataCollectionTasksFromPrecomputations(t *testing.T) {
	gens := SKProblemTasks("2020-03-19", IntRange(0, 2, 1), []int{4})
	pres := PrecomputationTasks(gens, []int{1, 2})
	dcs := DataCollectionTasks(pres, "2020-03-23", "rainbow-23", 50_000, core.LINE_PLACEMENT_MIXED)
	assert.Equal(t, 4, len(dcs))
	for i, dc := range dcs {
		assert.Equal(t, pres[i], dc.Source)
		assert.Equal(t, 50_000, dc.NShots)
		assert.False(t, dc.ExplicitAngles)
	}
}
