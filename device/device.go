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

package device

import (
	"fmt"
	"time"

	"github.com/pico-marine/telemetry/proto"
)

// Common descriptors shared by every device variant.
var (
	deviceIDDescriptor      = Descriptor{Name: "id", ID: 0}
	deviceTypeIDDescriptor  = Descriptor{Name: "type_id", ID: 1}
	deviceCreatedDescriptor = Descriptor{Name: "created", ID: 1, Attr: AttrTimestamp}
	deviceNameDescriptor    = Descriptor{Name: "name", ID: 3}
)

// deviceVariants maps a Kind to the extra attribute descriptors its
// subclass declares, registered by each variant file's init(). A Kind
// absent from this map behaves as the base Device: the four common
// attributes only.
var deviceVariants = map[Kind][]Descriptor{}

func registerDeviceVariant(k Kind, attrs []Descriptor) {
	deviceVariants[k] = attrs
}

// Device is a logical unit belonging to the controller, constructed
// from a DEVICE_INFO response's field set. Devices are refreshed by
// re-querying; there is no mutable state on a Device.
type Device struct {
	Kind   Kind
	Fields *proto.Fields
	extra  []Descriptor
}

// NewDevice builds a Device from a DEVICE_INFO response's fields,
// looking up the declared type-id (field 1) in the variant registry.
// An unrecognized type-id falls back to the base Device with no extra
// attributes, never an error.
func NewDevice(fields *proto.Fields) (*Device, error) {
	typeID, _, err := fields.Get(1)
	if err != nil {
		return nil, err
	}
	k := Kind(typeID.Int32())
	return &Device{Kind: k, Fields: fields, extra: deviceVariants[k]}, nil
}

// ID is the device's own id, stable across reconnects.
func (d *Device) ID() int32 {
	v, _ := deviceIDDescriptor.Read(d.Fields).(int32)
	return v
}

// TypeID is the raw type-id backing Kind.
func (d *Device) TypeID() int32 {
	v, _ := deviceTypeIDDescriptor.Read(d.Fields).(int32)
	return v
}

// Created is the device's registration time, when reported.
func (d *Device) Created() (time.Time, bool) {
	ts, ok := deviceCreatedDescriptor.Read(d.Fields).(uint32)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(ts), 0), true
}

// Name is the user-assigned label, when the controller reports one.
// Field 3 is usually TIMESTAMPED_TEXT, but some device variants overload
// it as a plain integer (e.g. InclinometerDevice's axis); the integer
// form is rendered as a decimal string rather than dropped.
func (d *Device) Name() (string, bool) {
	switch v := deviceNameDescriptor.Read(d.Fields).(type) {
	case string:
		return v, true
	case int32:
		return fmt.Sprintf("%d", v), true
	default:
		return "", false
	}
}

// Attrs returns every variant-specific attribute this device declares,
// keyed by name, plus type_id and created. It is the normalized view
// the observer diffs between polls.
func (d *Device) Attrs() map[string]any {
	out := map[string]any{
		"id":      d.ID(),
		"type":    d.Kind.String(),
		"type_id": d.TypeID(),
	}
	if created, ok := d.Created(); ok {
		out["created"] = created
	}
	if name, ok := d.Name(); ok {
		out["name"] = name
	}
	for _, attr := range d.extra {
		if v := attr.Read(d.Fields); v != nil {
			out[attr.Name] = v
		}
	}
	return out
}
