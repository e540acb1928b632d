//go:build unit
// +build unit

package common

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAsset(t *testing.T) {
	devices, err := GetAsset("devices.toml")
	assert.Nil(t, err)
	assert.Contains(t, devices, "device_name")
}

func TestKeyToFilePath(t *testing.T) {
	key := "2020-03-23/sk-problem/i-0/nq-4"
	want := filepath.Join("2020-03-23", "sk-problem", "i-0", "nq-4")
	assert.Equal(t, want, KeyToFilePath(key))
}

func TestIsDirWritable(t *testing.T) {
	assert.Nil(t, IsDirWritable(t.TempDir()))
	assert.Error(t, IsDirWritable(filepath.Join(t.TempDir(), "no-such-dir")))
}
