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

func init() {
	registerDeviceVariant(KindBattery, []Descriptor{
		{Name: "voltmeter_device_id", ID: 4},
		{Name: "capacity_c20", ID: 5, Scale: 0.01},
		{Name: "capacity_c20_updated", ID: 5, Attr: AttrTimestamp},
		{Name: "capacity_c10", ID: 6, Scale: 0.01},
		{Name: "capacity_c10_updated", ID: 6, Attr: AttrTimestamp},
		{Name: "capacity_c5", ID: 7, Scale: 0.01},
		{Name: "capacity_c5_updated", ID: 7, Attr: AttrTimestamp},
		{Name: "battery_type", ID: 8, Transform: int32Transform(func(n int32) BatteryType { return BatteryType(n) })},
		{Name: "battery_type_updated", ID: 8, Attr: AttrTimestamp},
		{Name: "temperature_device_id", ID: 10},
		{Name: "temperature_device_id_updated", ID: 10, Attr: AttrTimestamp},
	})
}
