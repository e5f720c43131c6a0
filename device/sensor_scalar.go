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

// Sensor variants whose state is a single scaled scalar: a name, a
// unit, and a multiplier applied to the raw state_field value.
func init() {
	registerScalarSensor(SensorVoltage, "volts", 0.001)
	registerScalarSensor(SensorCurrent, "amps", 0.01)
	registerScalarSensor(SensorCoulombCounter, "amp_hours", 0.001)
	registerScalarSensor(SensorTemperature, "celsius", 0.1)
	registerScalarSensor(SensorAtmosphere, "millibars", 0.01)
	registerScalarSensor(SensorAtmosphereTrend, "millibars_per_hour", 0.1)
	registerScalarSensor(SensorResistance, "ohms", 0)
	registerScalarSensor(SensorAngle, "degrees", 0.1)
}

func registerScalarSensor(k SensorKind, unit string, scale float64) {
	registerSensorVariant(k, sensorVariant{
		unit:       unit,
		stateAttrs: []Descriptor{{Name: unit, Scale: scale}},
	})
}
