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

import (
	"encoding/binary"
	"fmt"
)

// FieldType is the wire tag that selects a field's layout.
type FieldType uint8

// Known field types.
const (
	FieldInt             FieldType = 0x01
	FieldTimestampedInt  FieldType = 0x03
	FieldTimestampedText FieldType = 0x04
	FieldTimeseries      FieldType = 0x0B
)

func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "INT"
	case FieldTimestampedInt:
		return "TIMESTAMPED_INT"
	case FieldTimestampedText:
		return "TIMESTAMPED_TEXT"
	case FieldTimeseries:
		return "TIMESERIES"
	default:
		return fmt.Sprintf("FieldType(0x%02X)", uint8(t))
	}
}

// Field is a single decoded TLV entry: a read-only view over the bytes
// that produced it. Every accessor is a pure function of Value; none of
// them copy Value itself.
type Field struct {
	ID    uint8
	Type  FieldType
	Value []byte
}

// Int32 reads Value as a big-endian signed 32-bit integer. It is the
// accessor backing every INT and TIMESTAMPED_INT field, and the default
// branch of Value32.
func (f Field) Int32() int32 {
	return int32(binary.BigEndian.Uint32(f.intBytes()))
}

// Uint32 reads Value as a big-endian unsigned 32-bit integer.
func (f Field) Uint32() uint32 {
	return binary.BigEndian.Uint32(f.intBytes())
}

// Int16Hi reads the high 16 bits of the 32-bit value as signed.
func (f Field) Int16Hi() int16 {
	return int16(binary.BigEndian.Uint16(f.intBytes()[0:2]))
}

// Int16Lo reads the low 16 bits of the 32-bit value as signed.
func (f Field) Int16Lo() int16 {
	return int16(binary.BigEndian.Uint16(f.intBytes()[2:4]))
}

// Uint16Hi reads the high 16 bits of the 32-bit value as unsigned.
func (f Field) Uint16Hi() uint16 {
	return binary.BigEndian.Uint16(f.intBytes()[0:2])
}

// Uint16Lo reads the low 16 bits of the 32-bit value as unsigned.
func (f Field) Uint16Lo() uint16 {
	return binary.BigEndian.Uint16(f.intBytes()[2:4])
}

// intBytes returns the 4-byte integer payload regardless of whether the
// field carries a leading timestamp.
func (f Field) intBytes() []byte {
	if f.Type == FieldTimestampedInt {
		return f.Value[5:9]
	}
	return f.Value[0:4]
}

// HasTimestamp reports whether the variant carries a leading timestamp.
func (f Field) HasTimestamp() bool {
	switch f.Type {
	case FieldTimestampedInt, FieldTimestampedText, FieldTimeseries:
		return true
	default:
		return false
	}
}

// Timestamp reads the leading 4-byte unsigned timestamp, if present.
func (f Field) Timestamp() uint32 {
	return binary.BigEndian.Uint32(f.Value[0:4])
}

// Text returns the decoded string for a TIMESTAMPED_TEXT field. It is the
// empty string for any other variant.
func (f Field) Text() string {
	if f.Type != FieldTimestampedText {
		return ""
	}
	// Value is [timestamp(4) marker text... 0x00]; trim the terminator.
	return string(f.Value[5 : len(f.Value)-1])
}

// Timeseries returns the decoded uint16 samples for a TIMESERIES field,
// in emission order (newest first, per the atmospheric-pressure
// broadcast this variant carries). It is nil for any other variant.
func (f Field) Timeseries() []uint16 {
	if f.Type != FieldTimeseries {
		return nil
	}
	// Value is [ts1(4) marker ts2(4) marker count(1) (marker hi lo)*count].
	count := int(f.Value[10])
	samples := make([]uint16, 0, count*2)
	off := 11
	for i := 0; i < count; i++ {
		off++ // marker
		samples = append(samples, binary.BigEndian.Uint16(f.Value[off:off+2]))
		samples = append(samples, binary.BigEndian.Uint16(f.Value[off+2:off+4]))
		off += 4
	}
	return samples
}

// Value32 returns the field's polymorphic value: the decoded text for
// TIMESTAMPED_TEXT, the decoded sample sequence for TIMESERIES, and the
// signed 32-bit integer for everything else.
func (f Field) Value32() any {
	switch f.Type {
	case FieldTimestampedText:
		return f.Text()
	case FieldTimeseries:
		return f.Timeseries()
	default:
		return f.Int32()
	}
}

// Fields is a lazy cursor over a message payload. It indexes on first
// keyed access and is safe to share read-only; it never copies payload
// bytes except for the decoded text and time-series values extracted
// through a Field's accessors.
type Fields struct {
	payload []byte
	byID    map[uint8]Field
	order   []Field
}

// NewFields wraps payload in a Fields cursor without scanning it.
func NewFields(payload []byte) *Fields {
	return &Fields{payload: payload}
}

// index performs the one-shot linear scan, populating both the ordered
// list and the id→field map (last writer for a duplicate id wins).
func (fs *Fields) index() error {
	if fs.byID != nil {
		return nil
	}
	byID := make(map[uint8]Field)
	var order []Field
	pos := 0
	for pos < len(fs.payload) {
		f, next, err := parseOneField(fs.payload, pos)
		if err != nil {
			return err
		}
		order = append(order, f)
		byID[f.ID] = f
		pos = next
	}
	fs.byID = byID
	fs.order = order
	return nil
}

// parseOneField decodes the field starting at payload[pos], returning it
// and the offset of the next field.
func parseOneField(payload []byte, pos int) (Field, int, error) {
	if pos >= len(payload) || payload[pos] != frameMarker {
		return Field{}, 0, protoErr(MalformedField, "expected marker at offset %d", pos)
	}
	if pos+3 > len(payload) {
		return Field{}, 0, protoErr(MalformedField, "truncated field header at offset %d", pos)
	}
	id := payload[pos+1]
	typ := FieldType(payload[pos+2])
	valueStart := pos + 3

	var valueLen int
	switch typ {
	case FieldInt:
		valueLen = 4
	case FieldTimestampedInt:
		valueLen = 9
	case FieldTimestampedText:
		term := -1
		// The terminator is searched for past the 4-byte timestamp and its
		// marker, so a zero byte inside the timestamp does not end the text.
		for i := valueStart + 5; i < len(payload); i++ {
			if payload[i] == 0x00 {
				term = i
				break
			}
		}
		if term == -1 {
			return Field{}, 0, protoErr(MalformedField, "unterminated TIMESTAMPED_TEXT field at offset %d", pos)
		}
		valueLen = term - valueStart + 1
	case FieldTimeseries:
		if valueStart+11 > len(payload) {
			return Field{}, 0, protoErr(MalformedField, "truncated TIMESERIES field at offset %d", pos)
		}
		count := int(payload[valueStart+10])
		valueLen = 11 + 5*count
	default:
		return Field{}, 0, protoErr(MalformedField, "unknown field type 0x%02X at offset %d", typ, pos)
	}

	end := valueStart + valueLen
	if end > len(payload) {
		return Field{}, 0, protoErr(MalformedField, "field at offset %d overruns payload", pos)
	}
	return Field{ID: id, Type: typ, Value: payload[valueStart:end]}, end, nil
}

// Items returns every field in emission order. It triggers indexing on
// first call.
func (fs *Fields) Items() ([]Field, error) {
	if err := fs.index(); err != nil {
		return nil, err
	}
	return fs.order, nil
}

// Get looks up a field by id. It triggers indexing on first call. The
// second return value is false when no field with that id was present.
func (fs *Fields) Get(id uint8) (Field, bool, error) {
	if err := fs.index(); err != nil {
		return Field{}, false, err
	}
	f, ok := fs.byID[id]
	return f, ok, nil
}

// AsMap returns the id→field index built by Get/Items. It triggers
// indexing on first call.
func (fs *Fields) AsMap() (map[uint8]Field, error) {
	if err := fs.index(); err != nil {
		return nil, err
	}
	return fs.byID, nil
}
