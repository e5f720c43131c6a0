/*
Copyright (c) the pico-marine/telemetry authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetRootFlags(t *testing.T) {
	t.Helper()
	prevHost, prevConfig, prevDebug := rootHostFlag, rootConfigFlag, rootDebugFlag
	rootHostFlag, rootConfigFlag, rootDebugFlag = "", "", false
	t.Cleanup(func() {
		rootHostFlag, rootConfigFlag, rootDebugFlag = prevHost, prevConfig, prevDebug
	})
}

func TestLoadConfigDefaultsWithNoFlags(t *testing.T) {
	resetRootFlags(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Host)
	assert.True(t, cfg.AutoDiscover)
}

func TestLoadConfigHostFlagDisablesAutoDiscover(t *testing.T) {
	resetRootFlags(t)
	rootHostFlag = "192.168.1.50"

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.50", cfg.Host)
	assert.False(t, cfg.AutoDiscover)
}

func TestLoadConfigFileThenHostFlagOverride(t *testing.T) {
	resetRootFlags(t)

	path := filepath.Join(t.TempDir(), "picoctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: 10.0.0.1\n"), 0o600))

	rootConfigFlag = path
	rootHostFlag = "10.0.0.2"

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2", cfg.Host)
	assert.False(t, cfg.AutoDiscover)
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	resetRootFlags(t)
	rootConfigFlag = filepath.Join(t.TempDir(), "does-not-exist.yaml")

	_, err := LoadConfig()
	assert.Error(t, err)
}
