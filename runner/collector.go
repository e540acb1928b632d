package runner

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

const DUMMY_COLLECTOR_SETTING_KEY = "dummy_collector"

type DummyCollectorSetting struct {
	EnableDummyDeviceTimeInsertion bool `toml:"enable_dummy_device_time_insertion"`
	DummyDeviceTime                int  `toml:"dummy_device_time"`
}

func NewDummyCollectorSetting() DummyCollectorSetting {
	return DummyCollectorSetting{
		EnableDummyDeviceTimeInsertion: false,
		DummyDeviceTime:                10,
	}
}

// DummyDataCollector fakes device execution: counts are sampled from a
// deterministic distribution per task key.
type DummyDataCollector struct {
	EnableDummyDeviceTimeInsertion bool
	DummyDeviceTime                int
}

func (d *DummyDataCollector) Setup(conf *core.Conf) error {
	zap.L().Debug("setting up dummy data collector")
	s, ok := core.GetComponentSetting(DUMMY_COLLECTOR_SETTING_KEY)
	if !ok {
		return nil
	}
	zap.L().Debug(fmt.Sprintf("dummy collector setting:%v", s))
	mapped, ok := s.(map[string]interface{})
	if !ok {
		def := NewDummyCollectorSetting()
		d.EnableDummyDeviceTimeInsertion = def.EnableDummyDeviceTimeInsertion
		d.DummyDeviceTime = def.DummyDeviceTime
		return nil
	}
	if v, ok := mapped["enable_dummy_device_time_insertion"].(bool); ok {
		d.EnableDummyDeviceTimeInsertion = v
	}
	if v, ok := mapped["dummy_device_time"].(int64); ok {
		d.DummyDeviceTime = int(v)
	}
	return nil
}

func (d *DummyDataCollector) Collect(t core.DataCollectionTask) (*core.Result, error) {
	if t.NShots < 1 {
		return nil, fmt.Errorf("shot count must be positive, got %d", t.NShots)
	}
	zap.L().Info("[Dummy] starting device execution")
	if d.EnableDummyDeviceTimeInsertion {
		zap.L().Debug(fmt.Sprintf("[Dummy] waiting %d seconds for device execution", d.DummyDeviceTime))
		<-time.After(time.Duration(d.DummyDeviceTime) * time.Second)
	}
	zap.L().Info("[Dummy] finished device execution")

	rng := rand.New(rand.NewSource(taskSeed(t.Key())))
	r := core.NewResult()
	r.Counts = sampleCounts(rng, t.NShots)
	r.Expectation = rng.Float64()*2 - 1
	r.Message = "dummy collection result"
	return r, nil
}

func (d *DummyDataCollector) TearDown() {}

// SimulatorDataCollector evaluates a closed-form toy landscape instead
// of sampling a device. Useful for exercising grid sweeps end to end.
type SimulatorDataCollector struct {
	calChan core.ResultChan

	mu        sync.Mutex
	published map[string]struct{}
}

func (s *SimulatorDataCollector) Setup(conf *core.Conf) error {
	zap.L().Debug("setting up simulator data collector")
	sc := core.GetSystemComponents()
	if sc == nil {
		return fmt.Errorf("system components is not initialized")
	}
	s.calChan = sc.ResultChan
	return nil
}

func (s *SimulatorDataCollector) Collect(t core.DataCollectionTask) (*core.Result, error) {
	if t.NShots < 1 {
		return nil, fmt.Errorf("shot count must be positive, got %d", t.NShots)
	}
	if t.Epoch != "" {
		s.publishCalibration(t)
	}

	gamma, beta := 0.0, 0.0
	if t.ExplicitAngles {
		gamma, beta = t.Angles.Gamma, t.Angles.Beta
	}
	r := core.NewResult()
	// p=1 ring-model expectation surface
	r.Expectation = -math.Sin(2*beta) * math.Sin(gamma)
	rng := rand.New(rand.NewSource(taskSeed(t.Key())))
	r.Counts = sampleCounts(rng, t.NShots)
	r.Message = "simulated collection result"
	return r, nil
}

// a per-epoch calibration snapshot is stored alongside the landscape
// data, under its own key, the first time an epoch is touched
func (s *SimulatorDataCollector) publishCalibration(t core.DataCollectionTask) {
	epoch := fmt.Sprintf("%s/%s/%s", t.DatasetID, t.DeviceName, t.Epoch)
	s.mu.Lock()
	if s.published == nil {
		s.published = make(map[string]struct{})
	}
	if _, ok := s.published[epoch]; ok {
		s.mu.Unlock()
		return
	}
	s.published[epoch] = struct{}{}
	s.mu.Unlock()

	cal := &core.TaskResult{
		TaskKey:  fmt.Sprintf("%s/%s/epoch-%s/calibration", t.DatasetID, t.DeviceName, t.Epoch),
		TaskKind: "calibration",
		Status:   core.SUCCEEDED,
		Result:   core.NewResult(),
		Created:  strfmt.DateTime(time.Now()),
	}
	cal.Result.Message = "simulated calibration snapshot"
	select {
	case s.calChan <- cal:
	default:
		// retry on the next grid point of this epoch
		zap.L().Debug(fmt.Sprintf("calibration snapshot not consumed/key:%s", cal.TaskKey))
		s.mu.Lock()
		delete(s.published, epoch)
		s.mu.Unlock()
	}
}

func (s *SimulatorDataCollector) TearDown() {}

func sampleCounts(rng *rand.Rand, nShots int) core.Counts {
	counts := make(core.Counts)
	// two dominant bitstrings stand in for a concentrated distribution
	a := strconv.FormatInt(int64(rng.Intn(16)), 2)
	b := strconv.FormatInt(int64(rng.Intn(16)), 2)
	na := rng.Intn(nShots + 1)
	counts[a] += uint32(na)
	counts[b] += uint32(nShots - na)
	return counts
}
