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

import "time"

func init() {
	registerSensorVariant(SensorTimestamp, sensorVariant{
		unit: "unix_timestamp",
		infoAttrs: []Descriptor{
			{Name: "state_type", ID: 4, Transform: int32Transform(func(n int32) TimestampStateType { return TimestampStateType(n) })},
		},
		stateAttrs: []Descriptor{
			{Name: "unix_timestamp"},
			{Name: "datetime", Transform: func(v any) any {
				switch n := v.(type) {
				case int32:
					return time.Unix(int64(n), 0)
				case uint32:
					return time.Unix(int64(n), 0)
				default:
					return v
				}
			}},
		},
	})
}
