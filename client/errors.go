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

// Package client provides the high-level facade over transport, proto,
// and device: get_system_info/get_counts/get_device/get_sensor style
// operations, sensor state refresh, and a managed UDP listener.
package client

import "fmt"

// ErrorKind enumerates the ways a Client operation can fail outside of
// the underlying transport or protocol error.
type ErrorKind int

// Known error kinds.
const (
	UDPListenerAlreadyRunning ErrorKind = iota
	UDPListenerNotRunning
)

var errorKindNames = [...]string{
	"UDPListenerAlreadyRunning",
	"UDPListenerNotRunning",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "ErrorKind(unknown)"
}

// ClientError is returned for facade-level misuse: starting a UDP
// listener twice, or stopping one that was never started.
type ClientError struct {
	Kind ErrorKind
	Msg  string
}

func (e *ClientError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ClientError) Is(target error) bool {
	other, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func clientErr(kind ErrorKind, format string, args ...any) *ClientError {
	return &ClientError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
