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

import "fmt"

// Kind identifies a Device variant by the DEVICE_INFO response's field 1
// value.
type Kind int32

// Known device kinds.
const (
	KindNull         Kind = 0
	KindVoltmeter    Kind = 1
	KindAmmeter      Kind = 2
	KindThermometer  Kind = 3
	KindBarometer    Kind = 5
	KindOhmmeter     Kind = 6
	KindClock        Kind = 7
	KindTank         Kind = 8
	KindBattery      Kind = 9
	KindSystem       Kind = 10
	KindInclinometer Kind = 13
)

var kindNames = map[Kind]string{
	KindNull:         "null",
	KindVoltmeter:    "voltmeter",
	KindAmmeter:      "ammeter",
	KindThermometer:  "thermometer",
	KindBarometer:    "barometer",
	KindOhmmeter:     "ohmmeter",
	KindClock:        "clock",
	KindTank:         "tank",
	KindBattery:      "battery",
	KindSystem:       "system",
	KindInclinometer: "inclinometer",
}

// String returns the variant's lowercase name, or "unknown" for a
// type-id with no registered variant.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SensorKind identifies a Sensor variant by the SENSOR_INFO response's
// field 2 value.
type SensorKind int32

// Known sensor kinds.
const (
	SensorNone            SensorKind = 0
	SensorVoltage         SensorKind = 1
	SensorCurrent         SensorKind = 2
	SensorCoulombCounter  SensorKind = 3
	SensorTemperature     SensorKind = 4
	SensorAtmosphere      SensorKind = 5
	SensorAtmosphereTrend SensorKind = 6
	SensorResistance      SensorKind = 7
	SensorTimestamp       SensorKind = 10
	SensorAngle           SensorKind = 16
	SensorUser            SensorKind = 22
)

var sensorKindNames = map[SensorKind]string{
	SensorNone:            "none",
	SensorVoltage:         "voltage",
	SensorCurrent:         "current",
	SensorCoulombCounter:  "coulomb_counter",
	SensorTemperature:     "temperature",
	SensorAtmosphere:      "atmosphere",
	SensorAtmosphereTrend: "atmosphere_trend",
	SensorResistance:      "resistance",
	SensorTimestamp:       "timestamp",
	SensorAngle:           "angle",
	SensorUser:            "user",
}

// String returns the variant's lowercase name, or "unknown" for a
// type-id with no registered variant.
func (k SensorKind) String() string {
	if name, ok := sensorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Unit reports the physical unit a sensor variant's state represents,
// the Go rendering of each *Sensor subclass's `unit` class attribute.
// It returns "" for variants with no single natural unit (None, User).
func (k SensorKind) Unit() string {
	switch k {
	case SensorVoltage:
		return "volts"
	case SensorCurrent:
		return "amps"
	case SensorCoulombCounter:
		return "amp_hours"
	case SensorTemperature:
		return "celsius"
	case SensorAtmosphere:
		return "millibars"
	case SensorAtmosphereTrend:
		return "millibars_per_hour"
	case SensorResistance:
		return "ohms"
	case SensorTimestamp:
		return "unix_timestamp"
	case SensorAngle:
		return "degrees"
	default:
		return ""
	}
}

func (k Kind) GoString() string      { return fmt.Sprintf("Kind(%d)", int32(k)) }
func (k SensorKind) GoString() string { return fmt.Sprintf("SensorKind(%d)", int32(k)) }
