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

// Package device renders raw field sets into the typed Device and
// Sensor object model: per-variant attribute tables consulted at
// access time, in place of the source's attribute descriptors.
package device

import "github.com/pico-marine/telemetry/proto"

// Attr selects which derived value of a field a Descriptor reads.
type Attr int

// Known attribute kinds.
const (
	// AttrValue reads the field's polymorphic Value32().
	AttrValue Attr = iota
	// AttrTimestamp reads the field's leading timestamp.
	AttrTimestamp
)

// Descriptor is a language-neutral rendering of the source's attribute
// descriptor: which field id to read, which derived attribute of that
// field, an optional scale multiplier, and an optional decoder.
// Evaluating one against a field set is a pure, repeatable read - there
// is nothing to invalidate between calls short of the field set itself
// changing.
type Descriptor struct {
	Name      string
	ID        uint8
	Attr      Attr
	Default   any
	Scale     float64
	Transform func(any) any
}

// Read evaluates d against fs, returning Default when the field is
// absent or the variant mismatches the requested attribute.
func (d Descriptor) Read(fs *proto.Fields) any {
	f, ok, err := fs.Get(d.ID)
	if err != nil || !ok {
		return d.Default
	}
	return d.apply(f)
}

// ReadField evaluates d against a single already-resolved field, the
// rendering of the source's state descriptor: a sensor's mutable
// state_field is already the field to read, not a set to index into.
func (d Descriptor) ReadField(f *proto.Field) any {
	if f == nil {
		return d.Default
	}
	return d.apply(*f)
}

func (d Descriptor) apply(f proto.Field) any {
	var value any
	switch d.Attr {
	case AttrTimestamp:
		if !f.HasTimestamp() {
			return d.Default
		}
		value = f.Timestamp()
	default:
		value = f.Value32()
	}
	if d.Scale != 0 {
		switch v := value.(type) {
		case int32:
			value = float64(v) * d.Scale
		case uint32:
			value = float64(v) * d.Scale
		}
	}
	if value == nil {
		return d.Default
	}
	if d.Transform != nil {
		return d.Transform(value)
	}
	return value
}

// int32Transform adapts a typed int32 enum constructor for use as a
// Descriptor.Transform, which operates on the untyped value produced by
// apply.
func int32Transform[T ~int32](ctor func(int32) T) func(any) any {
	return func(v any) any {
		switch n := v.(type) {
		case int32:
			return ctor(n)
		case uint32:
			return ctor(int32(n))
		default:
			return v
		}
	}
}
