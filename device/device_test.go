//go:build unit
// +build unit

package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/qopt-team/qaoa-engine/core"
	"github.com/stretchr/testify/assert"
)

func TestLoadBuiltinDeviceSettings(t *testing.T) {
	ds, err := LoadDeviceSettings("")
	assert.Nil(t, err)
	assert.Equal(t, 2, len(ds.Devices))

	r, err := NewRegistry(ds)
	assert.Nil(t, err)
	d, err := r.Get("rainbow-23")
	assert.Nil(t, err)
	assert.Equal(t, "grid", d.DeviceType)
	assert.Equal(t, 23, d.MaxQubits)
}

func TestLoadDeviceSettingsFromFile(t *testing.T) {
	blob := heredoc.Doc(`
		[[devices]]
		device_name = "test-device"
		device_type = "grid"
		rows = 2
		cols = 3
		max_shots = 1000
		line_placement = "largest_area"
	`)
	path := filepath.Join(t.TempDir(), "devices.toml")
	assert.Nil(t, os.WriteFile(path, []byte(blob), 0644))

	ds, err := LoadDeviceSettings(path)
	assert.Nil(t, err)
	r, err := NewRegistry(ds)
	assert.Nil(t, err)
	assert.Equal(t, 1, r.Size())
	assert.Equal(t, core.LINE_PLACEMENT_LARGEST_AREA, r.DefaultLinePlacement("test-device"))
}

func TestSupportsQubits(t *testing.T) {
	ds := &DeviceSettings{
		Devices: []*DeviceSetting{
			{DeviceName: "tiny", DeviceType: "grid", Rows: 2, Cols: 2},
		},
	}
	r, err := NewRegistry(ds)
	assert.Nil(t, err)

	assert.True(t, r.SupportsQubits("tiny", 4))
	assert.False(t, r.SupportsQubits("tiny", 5))
	assert.False(t, r.SupportsQubits("no-such-device", 1))
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	ds := &DeviceSettings{
		Devices: []*DeviceSetting{
			{DeviceName: "dup"},
			{DeviceName: "dup"},
		},
	}
	_, err := NewRegistry(ds)
	assert.Error(t, err)
}
