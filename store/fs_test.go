//go:build unit
// +build unit

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qopt-team/qaoa-engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFSStore(t *testing.T) (*FSStore, core.ResultChan) {
	t.Helper()
	f := &FSStore{}
	rc := make(core.ResultChan)
	conf := &core.Conf{ResultsDir: t.TempDir()}
	require.NoError(t, f.Setup(rc, conf))
	t.Cleanup(func() { close(rc) })
	return f, rc
}

func TestFSStoreSaveAndGet(t *testing.T) {
	f, _ := setupFSStore(t)

	task := core.SKProblemTask{DatasetID: "2020-03-19", InstanceI: 0, NQubits: 4}
	tr := core.NewTaskResult(task)
	tr.Status = core.SUCCEEDED
	tr.Result.Expectation = -2.5
	tr.Result.Angles = []float64{0.1, 0.2}

	assert.False(t, f.Exists(task.Key()))
	assert.Nil(t, f.Save(tr))
	assert.True(t, f.Exists(task.Key()))

	got, err := f.Get(task.Key())
	assert.Nil(t, err)
	assert.Equal(t, tr.TaskKey, got.TaskKey)
	assert.Equal(t, core.SK_PROBLEM, got.TaskKind)
	assert.Equal(t, -2.5, got.Result.Expectation)
	assert.Equal(t, []float64{0.1, 0.2}, got.Result.Angles)
}

func TestFSStorePrettyOutput(t *testing.T) {
	f, _ := setupFSStore(t)

	task := core.SKProblemTask{DatasetID: "ds", InstanceI: 1, NQubits: 3}
	tr := &core.TaskResult{
		TaskKey:  task.Key(),
		TaskKind: task.Kind(),
		Result: &core.Result{
			Counts: core.Counts{"010": 7},
			Angles: []float64{},
			Edges:  [][2]int{},
		},
	}
	require.NoError(t, f.Save(tr))

	blob, err := os.ReadFile(filepath.Join(f.baseDir, "ds", "sk-problem", "i-1", "nq-3", "result.json"))
	require.NoError(t, err)
	// multi-line output with the key fields present
	assert.Contains(t, string(blob), "\n")
	assert.Contains(t, string(blob), `"task_key": "ds/sk-problem/i-1/nq-3"`)
	assert.Contains(t, string(blob), `"task_kind": "sk-problem"`)

	got := &core.TaskResult{}
	require.NoError(t, jsonIter.Unmarshal(blob, got))
	assert.Equal(t, core.Counts{"010": 7}, got.Result.Counts)
}

func TestFSStoreDelete(t *testing.T) {
	f, _ := setupFSStore(t)

	task := core.SKProblemTask{DatasetID: "ds", InstanceI: 0, NQubits: 4}
	tr := core.NewTaskResult(task)
	require.NoError(t, f.Save(tr))
	assert.Nil(t, f.Delete(task.Key()))
	assert.False(t, f.Exists(task.Key()))
	assert.Error(t, f.Delete(task.Key()))
}

func TestFSStoreKeys(t *testing.T) {
	f, _ := setupFSStore(t)

	a := core.SKProblemTask{DatasetID: "ds-a", InstanceI: 0, NQubits: 4}
	b := core.SKProblemTask{DatasetID: "ds-b", InstanceI: 0, NQubits: 4}
	require.NoError(t, f.Save(core.NewTaskResult(a)))
	require.NoError(t, f.Save(core.NewTaskResult(b)))

	assert.Equal(t, []string{a.Key(), b.Key()}, f.Keys())
	assert.Equal(t, []string{a.Key()}, f.KeysWithPrefix("ds-a/"))
}

func TestFSStoreConsumesResultChan(t *testing.T) {
	f, rc := setupFSStore(t)

	task := core.SKProblemTask{DatasetID: "ds", InstanceI: 9, NQubits: 8}
	tr := core.NewTaskResult(task)
	rc <- tr

	assert.Eventually(t, func() bool {
		return f.Exists(task.Key())
	}, time.Second, 10*time.Millisecond)
}
