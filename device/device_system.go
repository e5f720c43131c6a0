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
	// field 9's timestamp keeps advancing on every request while its
	// value does not change, a firmware quirk carried over rather than
	// papered over.
	registerDeviceVariant(KindSystem, []Descriptor{
		{Name: "serial_number", ID: 3},
		{Name: "system_datetime", ID: 9, Attr: AttrTimestamp},
		{Name: "wifi_ssid", ID: 10},
		{Name: "tcp_port", ID: 12},
		{Name: "udp_port", ID: 14},
		{Name: "wifi_pass", ID: 15},
	})
}
