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

// Package transport implements the three ways this module talks to a
// Simarine Pico controller: a TCP request/response socket, a UDP
// broadcast listener, and an MQTT bridge for installations that only
// expose the cloud-relayed topics.
package transport

import "fmt"

// ErrorKind enumerates the ways a transport can fail outside of the
// underlying network error itself.
type ErrorKind int

// Known error kinds.
const (
	OpenError ErrorKind = iota
	AlreadyOpen
)

var errorKindNames = [...]string{
	"OpenError",
	"AlreadyOpen",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "ErrorKind(unknown)"
}

// TransportError is returned for transport-level failures that are not
// simply a wrapped net.Error - a double open, or a connect that never
// got far enough to produce one.
type TransportError struct {
	Kind ErrorKind
	Msg  string
}

func (e *TransportError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *TransportError) Is(target error) bool {
	other, ok := target.(*TransportError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func transportErr(kind ErrorKind, format string, args ...any) *TransportError {
	return &TransportError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
