package device

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/qopt-team/qaoa-engine/common"
	"github.com/qopt-team/qaoa-engine/core"
	"go.uber.org/zap"
)

const BUILTIN_DEVICE_ASSET = "devices.toml"

type DeviceSetting struct {
	DeviceName    string `toml:"device_name"`
	DeviceType    string `toml:"device_type"`
	Rows          int    `toml:"rows"`
	Cols          int    `toml:"cols"`
	MaxQubits     int    `toml:"max_qubits"`
	MaxShots      int    `toml:"max_shots"`
	LinePlacement string `toml:"line_placement"`
}

type DeviceSettings struct {
	Devices []*DeviceSetting `toml:"devices"`
}

func NewDeviceSetting() *DeviceSetting {
	return &DeviceSetting{
		DeviceType:    "grid",
		Rows:          5,
		Cols:          5,
		MaxShots:      100000,
		LinePlacement: "mixed",
	}
}

// LoadDeviceSettings reads a device setting file. An empty path falls
// back to the built-in asset.
func LoadDeviceSettings(path string) (*DeviceSettings, error) {
	var blob string
	var err error
	if path == "" {
		blob, err = common.GetAsset(BUILTIN_DEVICE_ASSET)
	} else {
		blob, err = common.ReadFile(path)
	}
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to read device settings:%s Reason:%s", path, err))
		return &DeviceSettings{}, err
	}
	ds := &DeviceSettings{}
	if _, err := toml.Decode(blob, ds); err != nil {
		zap.L().Error(fmt.Sprintf("failed to decode blob:%s", blob))
		return &DeviceSettings{}, err
	}
	return ds, nil
}

// Registry resolves device names to their settings.
type Registry struct {
	devices map[string]*DeviceSetting
}

func NewRegistry(ds *DeviceSettings) (*Registry, error) {
	r := &Registry{devices: make(map[string]*DeviceSetting)}
	for _, d := range ds.Devices {
		if d.DeviceName == "" {
			return nil, fmt.Errorf("device setting without a device name")
		}
		if _, ok := r.devices[d.DeviceName]; ok {
			return nil, fmt.Errorf("duplicate device name: %s", d.DeviceName)
		}
		if _, err := core.ToLinePlacement(d.LinePlacement); err != nil {
			return nil, err
		}
		r.devices[d.DeviceName] = d
	}
	return r, nil
}

func (r *Registry) Get(deviceName string) (*DeviceSetting, error) {
	d, ok := r.devices[deviceName]
	if !ok {
		return nil, fmt.Errorf("unknown device: %s", deviceName)
	}
	return d, nil
}

func (r *Registry) Size() int {
	return len(r.devices)
}

// SupportsQubits reports whether the named device can host a problem of
// nQubits qubits.
func (r *Registry) SupportsQubits(deviceName string, nQubits int) bool {
	d, ok := r.devices[deviceName]
	if !ok {
		return false
	}
	if d.MaxQubits > 0 && nQubits > d.MaxQubits {
		return false
	}
	return nQubits <= d.Rows*d.Cols
}

// DefaultLinePlacement returns the device's configured line placement
// strategy for non-grid problem embeddings.
func (r *Registry) DefaultLinePlacement(deviceName string) core.LinePlacement {
	d, ok := r.devices[deviceName]
	if !ok {
		return core.LINE_PLACEMENT_NONE
	}
	lp, err := core.ToLinePlacement(d.LinePlacement)
	if err != nil {
		zap.L().Error(fmt.Sprintf("invalid line placement for %s:%s", deviceName, d.LinePlacement))
		return core.LINE_PLACEMENT_NONE
	}
	return lp
}
