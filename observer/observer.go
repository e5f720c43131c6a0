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

// Package observer polls a device or sensor, normalizes its attributes
// to a flat primitive map, diffs successive snapshots, and renders the
// result either as a colorized terminal log or one-line JSON.
package observer

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/eclesh/welford"
)

// smallDeltaFloor is the fallback "small incremental change" threshold
// used until a key has accumulated enough samples for an adaptive
// estimate from its own variance.
const smallDeltaFloor = 5.0

// largeJumpThreshold marks a delta big enough to be a counter rollover
// or timestamp field rather than an analog reading settling.
const largeJumpThreshold = 10000.0

// minSamplesForAdaptive is how many observations of a key's delta are
// required before its own running stddev replaces smallDeltaFloor.
const minSamplesForAdaptive = 10

// Object is anything an Observer can poll: device.Device and
// device.Sensor both satisfy it via their Attrs method.
type Object interface {
	Attrs() map[string]any
}

// Diff is one sampling round's result: the full before/after snapshots,
// the subset of keys that changed, and (if requested) the subset that
// didn't and a set of heuristic hints about each change.
type Diff struct {
	Before    map[string]any
	After     map[string]any
	Changes   map[string][2]any
	Unchanged map[string]any
	Timestamp time.Time
	Hints     map[string]string
}

// Observer polls an Object on an interval, normalizes it, and reports
// what changed since the previous poll. It is not safe for concurrent
// use; Run owns it for the duration of the loop.
type Observer struct {
	Getter           func() (Object, error)
	Interval         time.Duration
	FieldFilter      []string
	IncludeUnchanged bool
	ReHints          bool
	OnChange         func(Diff, Object)

	previous map[string]any
	deltaVar map[string]*welford.Stats
}

// New returns an Observer ready to Run or Sample.
func New(getter func() (Object, error), interval time.Duration) *Observer {
	return &Observer{
		Getter:   getter,
		Interval: interval,
		deltaVar: make(map[string]*welford.Stats),
	}
}

// normalize reduces a single attribute value to something that diffs
// and prints cleanly: time.Time becomes an RFC 3339 string, other
// Stringers (enum types) become their string form, []uint16 time-series
// samples become a comparable []any, everything else passes through.
func normalize(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case []uint16:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case fmt.Stringer:
		return x.String()
	default:
		return v
	}
}

func normalizeAttrs(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = normalize(v)
	}
	return out
}

func matchesFieldFilter(key string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	keyLower := strings.ToLower(key)
	for _, rule := range filter {
		ruleLower := strings.ToLower(strings.TrimSpace(rule))
		if ruleLower == "" {
			continue
		}
		if ruleLower == keyLower || strings.HasPrefix(keyLower, ruleLower) || strings.Contains(keyLower, ruleLower) {
			return true
		}
	}
	return false
}

// toFloat reports whether v is a numeric type usable for delta hints,
// and its value as a float64.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	default:
		return 0, false
	}
}

// smallDeltaThreshold returns the adaptive "small incremental change"
// bound for key, widened or narrowed by that key's own running stddev
// once enough samples have accumulated. Before that it falls back to
// smallDeltaFloor, the distilled heuristic's fixed literal.
func (o *Observer) smallDeltaThreshold(key string) float64 {
	s, ok := o.deltaVar[key]
	if !ok || s.Count() < minSamplesForAdaptive {
		return smallDeltaFloor
	}
	if stddev := s.Stddev(); stddev > 0 {
		return stddev
	}
	return smallDeltaFloor
}

func (o *Observer) recordDelta(key string, delta float64) {
	s, ok := o.deltaVar[key]
	if !ok {
		s = welford.New()
		o.deltaVar[key] = s
	}
	s.Add(delta)
}

func (o *Observer) generateHints(changes map[string][2]any) map[string]string {
	hints := make(map[string]string, len(changes))
	for key, pair := range changes {
		oldF, oldOK := toFloat(pair[0])
		newF, newOK := toFloat(pair[1])
		if !oldOK || !newOK {
			hints[key] = "value changed type/flag"
			continue
		}
		delta := newF - oldF
		o.recordDelta(key, delta)
		abs := delta
		if abs < 0 {
			abs = -abs
		}
		switch {
		case delta == 0:
			hints[key] = "no change"
		case abs < o.smallDeltaThreshold(key):
			hints[key] = "small incremental change"
		case abs > largeJumpThreshold:
			hints[key] = "large jump, maybe counter or timestamp"
		default:
			hints[key] = "likely analog measurement"
		}
	}
	return hints
}

func (o *Observer) diff(before, after map[string]any) *Diff {
	changes := make(map[string][2]any)
	unchanged := make(map[string]any)

	keys := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	for key := range keys {
		if !matchesFieldFilter(key, o.FieldFilter) {
			continue
		}
		oldV, after2 := before[key], after[key]
		if reflect.DeepEqual(oldV, after2) {
			if o.IncludeUnchanged {
				unchanged[key] = after2
			}
			continue
		}
		changes[key] = [2]any{oldV, after2}
	}

	if len(changes) == 0 && !(o.IncludeUnchanged && len(unchanged) > 0) {
		return nil
	}

	var hints map[string]string
	if o.ReHints {
		hints = o.generateHints(changes)
	}

	return &Diff{
		Before:    before,
		After:     after,
		Changes:   changes,
		Unchanged: unchanged,
		Timestamp: time.Now(),
		Hints:     hints,
	}
}

// Sample polls the Getter once, diffs the result against the previous
// sample, and invokes OnChange if anything (of interest) changed. A nil
// Object from the Getter is treated as "nothing to report" rather than
// an error, mirroring a momentarily unavailable reading.
func (o *Observer) Sample() (Object, *Diff, error) {
	obj, err := o.Getter()
	if err != nil {
		return nil, nil, err
	}
	if obj == nil {
		return nil, nil, nil
	}

	current := normalizeAttrs(obj.Attrs())

	var diff *Diff
	if o.previous != nil {
		diff = o.diff(o.previous, current)
		if diff != nil && o.OnChange != nil {
			o.OnChange(*diff, obj)
		}
	}
	o.previous = current
	return obj, diff, nil
}
