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

// unknownEnum renders a numeric value that fell outside a known variant
// set as "UNKNOWN_<n>" rather than failing the decode.
func unknownEnum(_ string, n int32) string {
	return fmt.Sprintf("UNKNOWN_%d", n)
}

// BatteryType is the chemistry reported by a BatteryDevice.
type BatteryType int32

// Known battery chemistries.
const (
	BatteryWetLowMaintenance  BatteryType = 1
	BatteryWetMaintenanceFree BatteryType = 2
	BatteryAGM                BatteryType = 3
	BatteryDeepCycle          BatteryType = 4
	BatteryGel                BatteryType = 5
	BatteryLiFePO4            BatteryType = 6
)

var batteryTypeNames = map[BatteryType]string{
	BatteryWetLowMaintenance:  "WET_LOW_MAINTENANCE",
	BatteryWetMaintenanceFree: "WET_MAINTENANCE_FREE",
	BatteryAGM:                "AGM",
	BatteryDeepCycle:          "DEEP_CYCLE",
	BatteryGel:                "GEL",
	BatteryLiFePO4:            "LIFEPO4",
}

func (t BatteryType) String() string {
	if name, ok := batteryTypeNames[t]; ok {
		return name
	}
	return unknownEnum("BATTERY_TYPE", int32(t))
}

// InclinometerAxis is the physical axis an InclinometerDevice measures.
type InclinometerAxis int32

// Known axes.
const (
	InclinometerPitch InclinometerAxis = 1
	InclinometerRoll  InclinometerAxis = 2
)

func (a InclinometerAxis) String() string {
	switch a {
	case InclinometerPitch:
		return "PITCH"
	case InclinometerRoll:
		return "ROLL"
	default:
		return unknownEnum("INCLINOMETER_AXIS", int32(a))
	}
}

// InclinometerDisplayType is the dashboard widget style configured for
// an InclinometerDevice.
type InclinometerDisplayType int32

// Known display styles.
const (
	InclinometerDisplayLine    InclinometerDisplayType = 1
	InclinometerDisplayCaravan InclinometerDisplayType = 2
)

func (t InclinometerDisplayType) String() string {
	switch t {
	case InclinometerDisplayLine:
		return "LINE"
	case InclinometerDisplayCaravan:
		return "CARAVAN"
	default:
		return unknownEnum("INCLINOMETER_DISPLAY_TYPE", int32(t))
	}
}

// TankFluidType is the contents a tank device is configured to measure.
type TankFluidType int32

// Known fluids.
const (
	TankWater      TankFluidType = 1
	TankFuel       TankFluidType = 2
	TankWasteWater TankFluidType = 3
)

func (t TankFluidType) String() string {
	switch t {
	case TankWater:
		return "WATER"
	case TankFuel:
		return "FUEL"
	case TankWasteWater:
		return "WASTE_WATER"
	default:
		return unknownEnum("TANK_FLUID_TYPE", int32(t))
	}
}

// ThermometerProbeType is the NTC/VDO probe wired to a ThermometerDevice.
type ThermometerProbeType int32

// Known probe types.
const (
	ThermometerNTC10K ThermometerProbeType = 1
	ThermometerNTC5K  ThermometerProbeType = 2
	ThermometerNTC1K  ThermometerProbeType = 3
	ThermometerVDO    ThermometerProbeType = 4
)

func (t ThermometerProbeType) String() string {
	switch t {
	case ThermometerNTC10K:
		return "NTC_10K"
	case ThermometerNTC5K:
		return "NTC_5K"
	case ThermometerNTC1K:
		return "NTC_1K"
	case ThermometerVDO:
		return "VDO"
	default:
		return unknownEnum("THERMOMETER_PROBE_TYPE", int32(t))
	}
}

// OnOff is a binary configuration toggle reported by several device
// variants (inclinometer nonlinearity, reversal, and display enable).
type OnOff int32

// Known states.
const (
	On  OnOff = 1
	Off OnOff = 2
)

func (v OnOff) String() string {
	switch v {
	case On:
		return "ON"
	case Off:
		return "OFF"
	default:
		return unknownEnum("ON_OFF", int32(v))
	}
}

// TimestampStateType distinguishes the three clocks a TimestampSensor
// can report.
type TimestampStateType int32

// Known clocks. BootTime's firmware-documented quirk (it reports
// reverse-adjusted UTC on some firmware revisions) is not corrected
// here; callers needing wall-clock UTC should prefer LocalTime.
const (
	TimestampLocalTime TimestampStateType = 0
	TimestampUTC       TimestampStateType = 1
	TimestampBootTime  TimestampStateType = 2
)

func (t TimestampStateType) String() string {
	switch t {
	case TimestampLocalTime:
		return "LOCALTIME"
	case TimestampUTC:
		return "UTC"
	case TimestampBootTime:
		return "BOOT_TIME"
	default:
		return unknownEnum("TIMESTAMP_STATE_TYPE", int32(t))
	}
}
