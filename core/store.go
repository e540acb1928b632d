package core

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

type MemoryStore struct {
	storeMap   map[string]*TaskResult
	resultChan <-chan *TaskResult
	mu         sync.RWMutex
}

func (m *MemoryStore) Setup(rc ResultChan, c *Conf) error {
	m.storeMap = make(map[string]*TaskResult)
	m.resultChan = rc
	go func() {
		for {
			tr := <-m.resultChan
			if tr == nil { //when resultChan is closed
				return
			}
			zap.L().Debug(fmt.Sprintf("[MemoryStore] Received %s", tr.TaskKey))
			if err := m.Save(tr); err != nil {
				zap.L().Error(fmt.Sprintf("failed to save a result(%s). Reason:%s",
					tr.TaskKey, err.Error()))
			}
		}
	}()
	return nil
}

func (m *MemoryStore) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.storeMap[key]
	return ok
}

func (m *MemoryStore) Save(tr *TaskResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeMap[tr.TaskKey] = tr
	return nil
}

func (m *MemoryStore) Get(key string) (*TaskResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if val, ok := m.storeMap[key]; ok {
		return val, nil
	}
	err := fmt.Errorf("not found %s", key)
	zap.L().Info("[MemoryStore]", zap.Field(zap.Error(err)))
	return &TaskResult{}, err
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.storeMap[key]; ok {
		delete(m.storeMap, key)
		zap.L().Info(fmt.Sprintf("[MemoryStore] deleted %s", key))
		return nil
	}
	err := fmt.Errorf("failed to find %s", key)
	zap.L().Info("[MemoryStore]", zap.Field(zap.Error(err)))
	return err
}

func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.storeMap))
	for k := range m.storeMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
