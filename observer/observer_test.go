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

package observer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	attrs map[string]any
}

func (f fakeObject) Attrs() map[string]any { return f.attrs }

func TestSampleNoDiffOnFirstPoll(t *testing.T) {
	o := New(func() (Object, error) {
		return fakeObject{attrs: map[string]any{"id": int32(1), "volts": 12.0}}, nil
	}, time.Second)

	_, diff, err := o.Sample()
	require.NoError(t, err)
	assert.Nil(t, diff)
}

func TestSampleReportsChangedKey(t *testing.T) {
	calls := 0
	o := New(func() (Object, error) {
		calls++
		volts := 12.0
		if calls == 2 {
			volts = 12.5
		}
		return fakeObject{attrs: map[string]any{"id": int32(1), "volts": volts}}, nil
	}, time.Second)

	_, _, err := o.Sample()
	require.NoError(t, err)
	_, diff, err := o.Sample()
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Equal(t, [2]any{12.0, 12.5}, diff.Changes["volts"])
	assert.NotContains(t, diff.Changes, "id")
}

func TestFieldFilterLimitsChanges(t *testing.T) {
	calls := 0
	o := New(func() (Object, error) {
		calls++
		n := int32(calls)
		return fakeObject{attrs: map[string]any{"ohms": n, "volts": n}}, nil
	}, time.Second)
	o.FieldFilter = []string{"ohms"}

	_, _, err := o.Sample()
	require.NoError(t, err)
	_, diff, err := o.Sample()
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Contains(t, diff.Changes, "ohms")
	assert.NotContains(t, diff.Changes, "volts")
}

func TestIncludeUnchanged(t *testing.T) {
	calls := 0
	o := New(func() (Object, error) {
		calls++
		volts := 12.0
		if calls == 2 {
			volts = 13.0
		}
		return fakeObject{attrs: map[string]any{"id": int32(1), "volts": volts}}, nil
	}, time.Second)
	o.IncludeUnchanged = true

	_, _, err := o.Sample()
	require.NoError(t, err)
	_, diff, err := o.Sample()
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Equal(t, int32(1), diff.Unchanged["id"])
}

func TestHintsClassifyDeltaMagnitude(t *testing.T) {
	calls := 0
	values := []int32{100, 102, 20000}
	o := New(func() (Object, error) {
		v := values[calls]
		calls++
		return fakeObject{attrs: map[string]any{"counter": v}}, nil
	}, time.Second)
	o.ReHints = true

	_, _, err := o.Sample()
	require.NoError(t, err)
	_, diff, err := o.Sample()
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Equal(t, "small incremental change", diff.Hints["counter"])

	_, diff, err = o.Sample()
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Equal(t, "large jump, maybe counter or timestamp", diff.Hints["counter"])
}

func TestNormalizeTimeSeries(t *testing.T) {
	got := normalize([]uint16{1, 2, 3})
	assert.Equal(t, []any{uint16(1), uint16(2), uint16(3)}, got)
}
