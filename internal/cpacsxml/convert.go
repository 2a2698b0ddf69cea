// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cpacsxml

import (
	"strconv"
	"time"
)

// The Parse*/Format* pairs below are the scalar conversion layer
// between the facade's string-only Get*/Save* methods and the Go
// scalar types generated fields use. Document itself never sees a
// typed value -- it reads and writes XML text -- so every generated
// accessor that isn't a plain string routes through one of these.

func ParseString(s string) (string, error) { return s, nil }
func FormatString(v string) string          { return v }

func ParseBool(s string) (bool, error) { return strconv.ParseBool(s) }
func FormatBool(v bool) string         { return strconv.FormatBool(v) }

func ParseInt8(s string) (int8, error) {
	v, err := strconv.ParseInt(s, 10, 8)
	return int8(v), err
}
func FormatInt8(v int8) string { return strconv.FormatInt(int64(v), 10) }

func ParseInt16(s string) (int16, error) {
	v, err := strconv.ParseInt(s, 10, 16)
	return int16(v), err
}
func FormatInt16(v int16) string { return strconv.FormatInt(int64(v), 10) }

func ParseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}
func FormatInt32(v int32) string { return strconv.FormatInt(int64(v), 10) }

func ParseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }
func FormatInt64(v int64) string         { return strconv.FormatInt(v, 10) }

func ParseInt(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	return int(v), err
}
func FormatInt(v int) string { return strconv.FormatInt(int64(v), 10) }

func ParseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	return uint8(v), err
}
func FormatUint8(v uint8) string { return strconv.FormatUint(uint64(v), 10) }

func ParseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err
}
func FormatUint16(v uint16) string { return strconv.FormatUint(uint64(v), 10) }

func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
func FormatUint32(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

func ParseUint64(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }
func FormatUint64(v uint64) string         { return strconv.FormatUint(v, 10) }

func ParseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}
func FormatFloat32(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }

func ParseFloat64(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
func FormatFloat64(v float64) string         { return strconv.FormatFloat(v, 'g', -1, 64) }

// TimeLayout is the wire format for xsd:date/xsd:dateTime/xsd:time
// fields; CPACS documents carry RFC 3339 timestamps in practice.
const TimeLayout = time.RFC3339

func ParseTime(s string) (time.Time, error) { return time.Parse(TimeLayout, s) }
func FormatTime(v time.Time) string         { return v.Format(TimeLayout) }
