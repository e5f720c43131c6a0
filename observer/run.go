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

package observer

import (
	"context"
	"time"
)

// Run samples on Interval until ctx is canceled, replacing the source
// implementation's stop_event.Event with context cancellation.
func (o *Observer) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.Interval)
	defer ticker.Stop()

	if _, _, err := o.Sample(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, _, err := o.Sample(); err != nil {
				return err
			}
		}
	}
}
