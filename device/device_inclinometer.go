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
	registerDeviceVariant(KindInclinometer, []Descriptor{
		{Name: "axis", ID: 3, Transform: int32Transform(func(n int32) InclinometerAxis { return InclinometerAxis(n) })},
		{Name: "axis_updated", ID: 3, Attr: AttrTimestamp},
		{Name: "nonlinear", ID: 6, Transform: int32Transform(func(n int32) OnOff { return OnOff(n) })},
		{Name: "nonlinear_updated", ID: 6, Attr: AttrTimestamp},
		{Name: "display_type", ID: 7, Transform: int32Transform(func(n int32) InclinometerDisplayType { return InclinometerDisplayType(n) })},
		{Name: "display_type_updated", ID: 7, Attr: AttrTimestamp},
		{Name: "reverse", ID: 9, Transform: int32Transform(func(n int32) OnOff { return OnOff(n) })},
		{Name: "reverse_updated", ID: 9, Attr: AttrTimestamp},
		{Name: "display", ID: 10, Transform: int32Transform(func(n int32) OnOff { return OnOff(n) })},
		{Name: "display_updated", ID: 10, Attr: AttrTimestamp},
	})
}
