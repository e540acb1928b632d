package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/qopt-team/qaoa-engine/common"
	"github.com/qopt-team/qaoa-engine/core"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

const resultFileName = "result.json"

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// FSStore persists one JSON document per task key under a base dir.
// The key is the relative directory path, so results partition on disk
// by dataset id exactly as they partition logically.
type FSStore struct {
	baseDir    string
	resultChan core.ResultChan
	mu         sync.RWMutex
}

func (f *FSStore) Setup(rc core.ResultChan, c *core.Conf) error {
	zap.L().Debug("Setting up FS store")
	f.baseDir = c.ResultsDir
	if err := os.MkdirAll(f.baseDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create results dir")
	}
	if err := common.IsDirWritable(f.baseDir); err != nil {
		return errors.Wrap(err, "results dir is not writable")
	}
	f.resultChan = rc
	go func() {
		for {
			tr := <-f.resultChan
			if tr == nil { //when resultChan is closed
				return
			}
			zap.L().Debug(fmt.Sprintf("[FSStore] Received %s", tr.TaskKey))
			if err := f.Save(tr); err != nil {
				zap.L().Error(fmt.Sprintf("failed to save a result(%s). Reason:%s",
					tr.TaskKey, err.Error()))
			}
		}
	}()
	return nil
}

func (f *FSStore) resultPath(key string) string {
	return filepath.Join(f.baseDir, common.KeyToFilePath(key), resultFileName)
}

func (f *FSStore) Exists(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, err := os.Stat(f.resultPath(key))
	return err == nil
}

func (f *FSStore) Save(tr *core.TaskResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.resultPath(tr.TaskKey)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create result dir")
	}
	blob, err := jsonIter.Marshal(tr)
	if err != nil {
		return errors.Wrap(err, "failed to marshal result")
	}
	blob = pretty.Pretty(blob)

	// write-then-rename so a crashed write never looks like a result
	tmp, err := os.CreateTemp(filepath.Dir(path), "result-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp result file")
	}
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to write result file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to close result file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "failed to place result file")
	}
	return nil
}

func (f *FSStore) Get(key string) (*core.TaskResult, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	blob, err := os.ReadFile(f.resultPath(key))
	if err != nil {
		return &core.TaskResult{}, errors.Wrap(err, fmt.Sprintf("not found %s", key))
	}
	tr := &core.TaskResult{}
	if err := jsonIter.Unmarshal(blob, tr); err != nil {
		return &core.TaskResult{}, errors.Wrap(err, fmt.Sprintf("broken result %s", key))
	}
	tr.Status = core.SUCCEEDED // only finished results are persisted
	return tr, nil
}

func (f *FSStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.resultPath(key)
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to find %s", key))
	}
	if err := os.Remove(path); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to delete %s", key))
	}
	zap.L().Info(fmt.Sprintf("[FSStore] deleted %s", key))
	return nil
}

func (f *FSStore) Keys() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var keys []string
	_ = filepath.Walk(f.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || info.Name() != resultFileName {
			return nil
		}
		rel, err := filepath.Rel(f.baseDir, filepath.Dir(path))
		if err != nil {
			return nil
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(keys)
	return keys
}

// KeysWithPrefix lists stored keys under one dataset partition.
func (f *FSStore) KeysWithPrefix(prefix string) []string {
	var keys []string
	for _, k := range f.Keys() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}
