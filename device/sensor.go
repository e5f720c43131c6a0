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

import "github.com/pico-marine/telemetry/proto"

// Common descriptors shared by every sensor variant.
var (
	sensorIDDescriptor       = Descriptor{Name: "id", ID: 1}
	sensorTypeIDDescriptor   = Descriptor{Name: "type_id", ID: 2}
	sensorDeviceIDDescriptor = Descriptor{Name: "device_id", ID: 3}
	sensorDeviceSensorIDDescriptor = Descriptor{Name: "device_sensor_id", ID: 4}
)

// stateDescriptor is the Go rendering of the source's SimarineState: it
// always reads field id 0 of whatever single field is currently the
// sensor's state, never the sensor's own SENSOR_INFO field set.
var stateDescriptor = Descriptor{Name: "value"}

// sensorVariants maps a SensorKind to the extra state/info attribute
// descriptors its subclass declares, registered by each variant file's
// init(). stateAttrs are read against state_field whatever their ID;
// infoAttrs are read against the sensor's own info fields (e.g. the
// timestamp variant's state_type).
type sensorVariant struct {
	unit        string
	stateAttrs  []Descriptor
	infoAttrs   []Descriptor
}

var sensorVariants = map[SensorKind]sensorVariant{}

func registerSensorVariant(k SensorKind, v sensorVariant) {
	sensorVariants[k] = v
}

// Sensor is a reading channel hosted by a Device, constructed from a
// SENSOR_INFO response's field set. A Sensor additionally carries a
// mutable StateField attached by a SENSORS_STATE response; StateField
// is the only mutable reference on a long-lived Sensor and is written
// from exactly one goroutine by contract, so no locking guards it here.
type Sensor struct {
	Kind       SensorKind
	Fields     *proto.Fields
	StateField *proto.Field
	variant    sensorVariant
}

// NewSensor builds a Sensor from a SENSOR_INFO response's fields,
// looking up the declared type-id (field 2) in the variant registry.
func NewSensor(fields *proto.Fields) (*Sensor, error) {
	typeID, _, err := fields.Get(2)
	if err != nil {
		return nil, err
	}
	k := SensorKind(typeID.Int32())
	return &Sensor{Kind: k, Fields: fields, variant: sensorVariants[k]}, nil
}

// ID is the sensor's own id, used to key SENSORS_STATE responses.
func (s *Sensor) ID() int32 {
	v, _ := sensorIDDescriptor.Read(s.Fields).(int32)
	return v
}

// TypeID is the raw type-id backing Kind.
func (s *Sensor) TypeID() int32 {
	v, _ := sensorTypeIDDescriptor.Read(s.Fields).(int32)
	return v
}

// DeviceID is the owning device's id.
func (s *Sensor) DeviceID() int32 {
	v, _ := sensorDeviceIDDescriptor.Read(s.Fields).(int32)
	return v
}

// DeviceSensorID is this sensor's index within its owning device.
func (s *Sensor) DeviceSensorID() int32 {
	v, _ := sensorDeviceSensorIDDescriptor.Read(s.Fields).(int32)
	return v
}

// Unit is the physical unit of this sensor's state, when the variant
// declares one.
func (s *Sensor) Unit() string {
	if s.variant.unit != "" {
		return s.variant.unit
	}
	return s.Kind.Unit()
}

// Attrs returns every variant-specific attribute this sensor declares,
// keyed by name, the normalized view the observer diffs between polls.
func (s *Sensor) Attrs() map[string]any {
	out := map[string]any{
		"id":                s.ID(),
		"type":              s.Kind.String(),
		"type_id":           s.TypeID(),
		"device_id":         s.DeviceID(),
		"device_sensor_id":  s.DeviceSensorID(),
	}
	for _, attr := range s.variant.infoAttrs {
		if v := attr.Read(s.Fields); v != nil {
			out[attr.Name] = v
		}
	}
	for _, attr := range s.variant.stateAttrs {
		if v := attr.ReadField(s.StateField); v != nil {
			out[attr.Name] = v
		}
	}
	return out
}
