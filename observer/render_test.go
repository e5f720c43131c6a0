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
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTextIncludesChangedKey(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 0)

	diff := Diff{
		Changes:   map[string][2]any{"volts": {12.0, 12.5}},
		Timestamp: time.Now(),
	}
	r.RenderText(diff, fakeObject{attrs: map[string]any{"id": int32(1), "type": "voltage"}})

	out := buf.String()
	assert.Contains(t, out, "volts")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "fakeObject")
}

func TestRenderJSONIsOneLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 0)

	diff := Diff{
		Changes:   map[string][2]any{"volts": {12.0, 12.5}},
		Timestamp: time.Now(),
	}
	require.NoError(t, r.RenderJSON(diff, fakeObject{attrs: map[string]any{"id": int32(1)}}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &decoded))
	assert.Contains(t, decoded, "changed")
}
