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

package proto

import "fmt"

// ErrorKind enumerates the ways a frame or field can fail to parse.
// Protocol errors are never retried by callers - they indicate wire
// corruption or a version drift, not a transient condition.
type ErrorKind int

// Known error kinds, matching the taxonomy in the design document.
const (
	InvalidHeaderLength ErrorKind = iota
	InvalidHeaderPreamble
	InvalidHeaderMarker
	MessageTypeMismatch
	InvalidMessageLength
	InvalidChecksumMarker
	CRCMismatch
	MalformedField
)

var errorKindNames = [...]string{
	"InvalidHeaderLength",
	"InvalidHeaderPreamble",
	"InvalidHeaderMarker",
	"MessageTypeMismatch",
	"InvalidMessageLength",
	"InvalidChecksumMarker",
	"CRCMismatch",
	"MalformedField",
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "ErrorKind(unknown)"
}

// ProtocolError is returned for any frame or field that fails to parse.
type ProtocolError struct {
	Kind ErrorKind
	Msg  string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is allows errors.Is(err, &ProtocolError{Kind: CRCMismatch}) style checks
// against the kind alone, ignoring Msg.
func (e *ProtocolError) Is(target error) bool {
	other, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func protoErr(kind ErrorKind, format string, args ...any) *ProtocolError {
	return &ProtocolError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
